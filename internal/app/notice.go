package app

import (
	"fmt"
	"time"

	"example.com/wrapedit/pkg/style"
	"github.com/muesli/reflow/wordwrap"
)

// notice is a transient message shown above the status line.
type notice struct {
	text  string
	isErr bool
	until time.Time
}

func (n notice) active() bool { return n.text != "" }

// remaining reports how long the notice stays up.
func (n notice) remaining(now time.Time) (time.Duration, bool) {
	if !n.active() || n.until.IsZero() {
		return 0, false
	}
	return max(n.until.Sub(now), 0), true
}

// wrapped breaks the notice to fit width cells.
func (n notice) wrapped(width int) string {
	if width < 1 {
		return n.text
	}
	return wordwrap.String(n.text, width)
}

func (n notice) style() style.ID {
	if n.isErr {
		return style.StatusDirty
	}
	return style.Message
}

func (r *Runner) notify(format string, args ...any) {
	r.notice = notice{text: fmt.Sprintf(format, args...), until: r.noticeDeadline()}
}

func (r *Runner) notifyErr(err error) {
	r.notice = notice{text: err.Error(), isErr: true, until: r.noticeDeadline()}
}

func (r *Runner) noticeDeadline() time.Time {
	if r.Config.NoticeTimeout <= 0 {
		return time.Time{}
	}
	return r.Now().Add(r.Config.NoticeTimeout)
}

func (r *Runner) clearNotice() { r.notice = notice{} }

// expireNotice drops the notice once its deadline has passed.
func (r *Runner) expireNotice() {
	if d, ok := r.notice.remaining(r.Now()); ok && d == 0 {
		r.clearNotice()
	}
}
