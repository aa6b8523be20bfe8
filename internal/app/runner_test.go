package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"example.com/wrapedit/pkg/buffer"
	"example.com/wrapedit/pkg/config"
	"example.com/wrapedit/pkg/editor"
	"example.com/wrapedit/pkg/style"
	"github.com/gdamore/tcell/v2"
)

// newTestRunner opens path (which may not exist) on a w x h simulation
// screen.
func newTestRunner(t *testing.T, w, h int, path string) (*Runner, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("initializing simulation screen failed: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)

	ed := editor.New(editor.Options{Width: w, Height: h - 1, TabWidth: 4, Margin: -1})
	if path != "" {
		if _, err := ed.Open(path); err != nil {
			t.Fatalf("open: %v", err)
		}
	}
	r := New(ed, config.Default(), nil)
	r.Screen = s
	r.resize()
	return r, s
}

func writeFile(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func press(r *Runner, k tcell.Key, ch rune, mod tcell.ModMask) bool {
	quit := r.handleKeyEvent(tcell.NewEventKey(k, ch, mod))
	r.draw()
	return quit
}

func ctrl(r *Runner, ch rune) bool { return press(r, tcell.KeyRune, ch, tcell.ModCtrl) }

func typeText(r *Runner, s string) {
	for _, ch := range s {
		if ch == '\n' {
			press(r, tcell.KeyEnter, 0, tcell.ModNone)
			continue
		}
		press(r, tcell.KeyRune, ch, tcell.ModNone)
	}
}

func screenLine(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return strings.TrimRight(b.String(), " ")
}

func pos(line, col int) buffer.Position { return buffer.Position{Line: line, Col: col} }

// TestRun_TypingSaveQuit_Simulation types text, saves with Ctrl+S and quits with Ctrl+Q.
func TestRun_TypingSaveQuit_Simulation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	r, s := newTestRunner(t, 40, 10, path)

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()
	time.Sleep(10 * time.Millisecond)

	s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'a', 0))
	s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'b', 0))
	s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModCtrl))
	s.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModCtrl))

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("runner returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for runner to quit")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "ab" {
		t.Fatalf("expected saved content 'ab', got %q", string(data))
	}
	if r.Editor.Current().Dirty() {
		t.Fatalf("expected clean buffer after save")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	r, _ := newTestRunner(t, 40, 10, "")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop")
	}
}

func TestDrawShowsTextAndStatus(t *testing.T) {
	r, s := newTestRunner(t, 30, 6, writeFile(t, "hello\nworld"))
	r.draw()
	if got := screenLine(s, 0); got != "hello" {
		t.Fatalf("unexpected row 0 %q", got)
	}
	if got := screenLine(s, 2); got != "~" {
		t.Fatalf("expected filler row, got %q", got)
	}
	status := screenLine(s, 5)
	if !strings.Contains(status, "f.txt") || !strings.HasSuffix(status, "1:1") {
		t.Fatalf("unexpected status %q", status)
	}
	typeText(r, "x")
	if status := screenLine(s, 5); !strings.Contains(status, "[+]") || !strings.HasSuffix(status, "1:2") {
		t.Fatalf("expected dirty status, got %q", status)
	}
	if x, y, ok := s.GetCursor(); !ok || x != 1 || y != 0 {
		t.Fatalf("unexpected cursor %d,%d %v", x, y, ok)
	}
}

func TestLineNumbersShiftCursor(t *testing.T) {
	r, s := newTestRunner(t, 30, 6, writeFile(t, "ab\ncd"))
	r.LineNumbers = true
	press(r, tcell.KeyDown, 0, tcell.ModNone)
	if got := screenLine(s, 1); got != "2 cd" {
		t.Fatalf("unexpected row %q", got)
	}
	if x, y, _ := s.GetCursor(); x != 2 || y != 1 {
		t.Fatalf("expected cursor after gutter, got %d,%d", x, y)
	}
}

func TestUndoRedoKeys(t *testing.T) {
	r, _ := newTestRunner(t, 40, 10, "")
	typeText(r, "ab\ncd")
	ctrl(r, 'z')
	doc := r.Editor.Current().Doc()
	if got := doc.Text(); got != "ab" {
		t.Fatalf("expected undo to restore %q, got %q", "ab", got)
	}
	ctrl(r, 'y')
	if got := doc.Text(); got != "ab\ncd" {
		t.Fatalf("expected redo, got %q", got)
	}
	if got := r.Editor.Current().Cursor().Pos; got != pos(1, 2) {
		t.Fatalf("unexpected cursor %v", got)
	}
}

func TestMultiKeySaveAs(t *testing.T) {
	r, s := newTestRunner(t, 60, 8, "")
	typeText(r, "hi")
	ctrl(r, 'k')
	if r.state() != statePending {
		t.Fatalf("expected pending state, got %v", r.state())
	}
	if status := screenLine(s, 7); !strings.Contains(status, "Ctrl+K-") {
		t.Fatalf("expected pending keys in status, got %q", status)
	}
	ctrl(r, 's')
	if r.state() != statePrompt || r.prompt.kind != "save-as" {
		t.Fatalf("expected save-as prompt, got %v", r.state())
	}
	path := filepath.Join(t.TempDir(), "out.txt")
	typeText(r, path)
	if got := screenLine(s, 6); got != "Save as: "+path {
		t.Fatalf("unexpected prompt row %q", got)
	}
	press(r, tcell.KeyEnter, 0, tcell.ModNone)
	if r.prompt != nil {
		t.Fatalf("expected prompt to close")
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "hi" {
		t.Fatalf("expected saved file, got %q %v", data, err)
	}
	if !strings.HasPrefix(r.notice.text, "Wrote out.txt") {
		t.Fatalf("unexpected notice %q", r.notice.text)
	}
}

func TestSaveWithoutNameOpensPrompt(t *testing.T) {
	r, _ := newTestRunner(t, 40, 8, "")
	ctrl(r, 's')
	if r.prompt == nil || r.prompt.kind != "save-as" {
		t.Fatalf("expected save-as prompt")
	}
	press(r, tcell.KeyEnter, 0, tcell.ModNone)
	if r.prompt == nil || !r.notice.isErr {
		t.Fatalf("expected prompt to stay open with an error")
	}
	press(r, tcell.KeyEsc, 0, tcell.ModNone)
	if r.prompt != nil {
		t.Fatalf("expected Esc to close the prompt")
	}
}

func TestUndefinedSequenceIsReported(t *testing.T) {
	r, _ := newTestRunner(t, 40, 8, "")
	ctrl(r, 'k')
	press(r, tcell.KeyRune, 'q', tcell.ModNone)
	if r.state() != stateNormal {
		t.Fatalf("expected normal state, got %v", r.state())
	}
	if got := r.Editor.Current().Doc().Text(); got != "" {
		t.Fatalf("expected nothing inserted, got %q", got)
	}
	if r.notice.text != "Ctrl+K q is undefined" {
		t.Fatalf("unexpected notice %q", r.notice.text)
	}
}

func TestQuitConfirmation(t *testing.T) {
	path := writeFile(t, "a")
	r, _ := newTestRunner(t, 60, 8, path)
	typeText(r, "b")
	if ctrl(r, 'q') {
		t.Fatalf("expected quit to be blocked")
	}
	if press(r, tcell.KeyRune, 'n', tcell.ModNone) || r.prompt != nil {
		t.Fatalf("expected n to cancel quit")
	}
	ctrl(r, 'q')
	if !press(r, tcell.KeyRune, 's', tcell.ModNone) {
		t.Fatalf("expected s to save and quit")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "ba" {
		t.Fatalf("expected saved file, got %q", data)
	}
}

func TestQuitWithoutSaving(t *testing.T) {
	r, _ := newTestRunner(t, 60, 8, "")
	typeText(r, "x")
	ctrl(r, 'q')
	press(r, tcell.KeyRune, 'x', tcell.ModNone)
	if r.prompt == nil {
		t.Fatalf("unrelated keys keep the prompt open")
	}
	if !press(r, tcell.KeyRune, 'y', tcell.ModNone) {
		t.Fatalf("expected y to quit")
	}
}

func TestFindPrompt(t *testing.T) {
	r, s := newTestRunner(t, 40, 8, writeFile(t, "foo bar foo\nfood"))
	ctrl(r, 'f')
	typeText(r, "foo")
	sess := r.Editor.Current()
	if n := len(sess.Matches()); n != 3 {
		t.Fatalf("expected 3 matches while typing, got %d", n)
	}
	press(r, tcell.KeyEnter, 0, tcell.ModNone)
	if r.prompt != nil || r.notice.text != "3 matches" {
		t.Fatalf("expected prompt closed with count, got %q", r.notice.text)
	}
	press(r, tcell.KeyF3, 0, tcell.ModNone)
	if got := sess.Cursor().Pos; got != pos(0, 11) {
		t.Fatalf("expected second match, got %v", got)
	}
	if r.notice.text != "Match 2 of 3" {
		t.Fatalf("unexpected notice %q", r.notice.text)
	}
	press(r, tcell.KeyF3, 0, tcell.ModShift)
	if got := sess.Cursor().Pos; got != pos(0, 3) {
		t.Fatalf("expected first match, got %v", got)
	}
	_, _, st, _ := s.GetContent(0, 0)
	if st != r.Theme().Style(style.Selection) {
		t.Fatalf("expected selected match style, got %v", st)
	}
	press(r, tcell.KeyEsc, 0, tcell.ModNone)
	if len(sess.Matches()) != 0 {
		t.Fatalf("expected Esc to clear the search")
	}
}

func TestFindPromptCancelRestoresCursor(t *testing.T) {
	r, _ := newTestRunner(t, 40, 8, writeFile(t, "abc\nxyz"))
	press(r, tcell.KeyDown, 0, tcell.ModNone)
	ctrl(r, 'f')
	typeText(r, "b")
	if got := r.Editor.Current().Cursor().Pos; got != pos(0, 2) {
		t.Fatalf("expected jump to match, got %v", got)
	}
	press(r, tcell.KeyEsc, 0, tcell.ModNone)
	if got := r.Editor.Current().Cursor().Pos; got != pos(1, 0) {
		t.Fatalf("expected cursor restored, got %v", got)
	}
}

func TestGotoLinePrompt(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	r, _ := newTestRunner(t, 40, 10, writeFile(t, strings.Join(lines, "\n")))
	ctrl(r, 'g')
	typeText(r, "abc")
	press(r, tcell.KeyEnter, 0, tcell.ModNone)
	if r.prompt == nil || !r.notice.isErr {
		t.Fatalf("expected invalid input to keep the prompt open")
	}
	for i := 0; i < 3; i++ {
		press(r, tcell.KeyBackspace2, 0, tcell.ModNone)
	}
	typeText(r, "30")
	press(r, tcell.KeyEnter, 0, tcell.ModNone)
	if got := r.Editor.Current().Cursor().Pos; got != pos(29, 0) {
		t.Fatalf("expected line 30, got %v", got)
	}
	if r.Editor.Current().View().Top.Line == 0 {
		t.Fatalf("expected view to scroll")
	}
}

func TestOpenPromptAndBufferCycling(t *testing.T) {
	first := writeFile(t, "one")
	second := writeFile(t, "two")
	r, s := newTestRunner(t, 40, 8, first)
	ctrl(r, 'o')
	typeText(r, second)
	press(r, tcell.KeyEnter, 0, tcell.ModNone)
	if len(r.Editor.Buffers()) != 2 || r.Editor.Current().Path != second {
		t.Fatalf("expected second buffer focused")
	}
	if got := screenLine(s, 0); got != "two" {
		t.Fatalf("unexpected row %q", got)
	}
	if status := screenLine(s, 7); !strings.Contains(status, "2/2") {
		t.Fatalf("expected buffer count in status, got %q", status)
	}
	ctrl(r, 'k')
	ctrl(r, 'n')
	if r.Editor.Current().Path != first {
		t.Fatalf("expected next buffer to wrap to the first")
	}
	// reopening focuses the existing buffer
	ctrl(r, 'o')
	typeText(r, second)
	press(r, tcell.KeyEnter, 0, tcell.ModNone)
	if len(r.Editor.Buffers()) != 2 || r.Editor.Current().Path != second {
		t.Fatalf("expected existing buffer to be focused")
	}
}

func TestCloseDirtyBufferAsks(t *testing.T) {
	r, _ := newTestRunner(t, 60, 8, writeFile(t, "one"))
	typeText(r, "x")
	ctrl(r, 'k')
	ctrl(r, 'w')
	if r.prompt == nil || r.prompt.kind != "close" {
		t.Fatalf("expected close prompt")
	}
	press(r, tcell.KeyRune, 'y', tcell.ModNone)
	if len(r.Editor.Buffers()) != 1 || r.Editor.Current().Path != "" {
		t.Fatalf("expected a fresh empty buffer after closing the last one")
	}
}

func TestTogglesAndThemeCycle(t *testing.T) {
	r, s := newTestRunner(t, 40, 8, writeFile(t, "a b"))
	ctrl(r, 'k')
	press(r, tcell.KeyRune, 'w', tcell.ModNone)
	if !r.ShowWhitespace {
		t.Fatalf("expected whitespace on")
	}
	if got := screenLine(s, 0); got != "a·b" {
		t.Fatalf("unexpected row %q", got)
	}
	before := r.Theme().Name
	ctrl(r, 'k')
	press(r, tcell.KeyRune, 't', tcell.ModNone)
	if r.Theme().Name == before {
		t.Fatalf("expected theme to change from %s", before)
	}
	ctrl(r, 'k')
	press(r, tcell.KeyRune, 'T', tcell.ModShift)
	if r.Theme().Name != before {
		t.Fatalf("expected prev-theme to restore %s, got %s", before, r.Theme().Name)
	}
	ctrl(r, 'k')
	press(r, tcell.KeyRune, 'r', tcell.ModNone)
	if !r.Editor.Current().View().Layout.WordWrap {
		t.Fatalf("expected word wrap on")
	}
}

func TestNoticeExpires(t *testing.T) {
	r, s := newTestRunner(t, 40, 8, "")
	now := time.Unix(1000, 0)
	r.Now = func() time.Time { return now }
	r.notify("hello")
	r.draw()
	if got := screenLine(s, 6); got != "hello" {
		t.Fatalf("expected notice row, got %q", got)
	}
	if d, ok := r.notice.remaining(now); !ok || d != r.Config.NoticeTimeout {
		t.Fatalf("unexpected remaining %v %v", d, ok)
	}
	now = now.Add(r.Config.NoticeTimeout)
	r.expireNotice()
	r.draw()
	if r.notice.active() || screenLine(s, 6) != "~" {
		t.Fatalf("expected notice to expire")
	}
}

func TestLongNoticeWraps(t *testing.T) {
	r, s := newTestRunner(t, 20, 10, "")
	r.notify("the quick brown fox jumps over the lazy dog")
	r.draw()
	if got := screenLine(s, 8); got != "dog" {
		t.Fatalf("unexpected last notice row %q", got)
	}
	if got := screenLine(s, 6); got != "the quick brown fox" {
		t.Fatalf("unexpected first notice row %q", got)
	}
}

func TestResizeAppliesToBuffers(t *testing.T) {
	r, s := newTestRunner(t, 40, 8, "")
	s.SetSize(20, 5)
	r.resize()
	v := r.Editor.Current().View()
	if v.Layout.Width != 20 || v.Height != 4 {
		t.Fatalf("unexpected viewport %dx%d", v.Layout.Width, v.Height)
	}
}

func TestReadOnlyEditsNotify(t *testing.T) {
	r, _ := newTestRunner(t, 40, 8, writeFile(t, "a"))
	r.Editor.Current().ReadOnly = true
	typeText(r, "x")
	if !r.notice.isErr || !strings.Contains(r.notice.text, "read-only") {
		t.Fatalf("expected read-only notice, got %q", r.notice.text)
	}
}
