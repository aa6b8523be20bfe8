package history

// KillRing stores recently cut or copied text, newest first.
type KillRing struct {
	entries []string
	pos     int
}

const killRingMax = 10

// Push adds text to the front of the ring. Repeating the newest entry is a
// no-op apart from resetting the rotation.
func (k *KillRing) Push(s string) {
	if s == "" {
		return
	}
	k.pos = 0
	if len(k.entries) > 0 && k.entries[0] == s {
		return
	}
	if len(k.entries) < killRingMax {
		k.entries = append(k.entries, "")
	}
	copy(k.entries[1:], k.entries[:len(k.entries)-1])
	k.entries[0] = s
}

// Rotate moves to the next older entry, wrapping around.
func (k *KillRing) Rotate() bool {
	if len(k.entries) <= 1 {
		return false
	}
	k.pos = (k.pos + 1) % len(k.entries)
	return true
}

// Current returns the selected entry.
func (k *KillRing) Current() string {
	if len(k.entries) == 0 {
		return ""
	}
	return k.entries[k.pos]
}

// Len returns the number of entries in the ring.
func (k *KillRing) Len() int { return len(k.entries) }
