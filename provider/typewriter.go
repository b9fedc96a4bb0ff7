package provider

import (
	"context"
	"strings"
	"time"

	"bizpilot/model"
)

// typewrite replays a finished text as a stream: one whitespace-separated word
// plus a trailing space per fragment, with delay between fragments. The
// backend answers in one piece, so this is what makes its roadmap appear
// progressively like the direct providers' output.
func typewrite(ctx context.Context, text string, delay time.Duration, callback model.StreamCallback) error {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for i, word := range strings.Fields(text) {
		if i > 0 && delay > 0 {
			if timer == nil {
				timer = time.NewTimer(delay)
			} else {
				timer.Reset(delay)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if err := callback(word + " "); err != nil {
			return err
		}
	}
	return nil
}
