package tmux

import (
	"context"
	"time"
)

// submitPause gives the receiving program time to register the typed
// text before the submit keystroke arrives. Interactive TUIs drop the
// trailing Enter without it.
const submitPause = time.Second

// Injector types text into a tmux session.
type Injector struct {
	run   runner
	pause time.Duration
	sleep func(time.Duration)
}

func NewInjector() *Injector {
	return &Injector{run: run, pause: submitPause, sleep: time.Sleep}
}

// Inject sends text as literal keys, waits, then submits with a
// separate Enter keystroke. The two send-keys calls are never merged.
func (i *Injector) Inject(ctx context.Context, session, text string) error {
	if _, err := i.run(ctx, "send-keys", "-t", session, "-l", "--", text); err != nil {
		return err
	}
	i.sleep(i.pause)
	if _, err := i.run(ctx, "send-keys", "-t", session, "C-m"); err != nil {
		return err
	}
	return nil
}
