// Package style names the semantic roles that highlighters and the frame
// renderer attach to text. Themes map each role to concrete colors.
package style

import "strings"

// ID is a semantic style role.
type ID uint8

const (
	Default ID = iota
	Keyword
	String
	Comment
	Number
	Type
	Function
	Operator
	Heading
	Link
	Emphasis
	Code

	// UI roles.
	Selection
	Match
	Gutter
	Status
	StatusDirty
	Message
	Prompt
	Whitespace
	Placeholder

	count
)

var names = [...]string{
	Default:     "default",
	Keyword:     "keyword",
	String:      "string",
	Comment:     "comment",
	Number:      "number",
	Type:        "type",
	Function:    "function",
	Operator:    "operator",
	Heading:     "heading",
	Link:        "link",
	Emphasis:    "emphasis",
	Code:        "code",
	Selection:   "selection",
	Match:       "match",
	Gutter:      "gutter",
	Status:      "status",
	StatusDirty: "status_dirty",
	Message:     "message",
	Prompt:      "prompt",
	Whitespace:  "whitespace",
	Placeholder: "placeholder",
}

func (id ID) String() string {
	if id < count {
		return names[id]
	}
	return "unknown"
}

// All returns every role in declaration order.
func All() []ID {
	out := make([]ID, 0, count)
	for id := ID(0); id < count; id++ {
		out = append(out, id)
	}
	return out
}

// Parse returns the role with the given name.
func Parse(name string) (ID, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, n := range names {
		if n == name {
			return ID(id), true
		}
	}
	return Default, false
}
