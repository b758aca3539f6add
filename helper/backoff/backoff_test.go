package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/shoenig/test/must"
)

func TestDelay_Bounds(t *testing.T) {
	base := time.Second
	max := 60 * time.Second

	for attempt := 1; attempt <= 10; attempt++ {
		raw := base << (attempt - 1)
		if raw > max {
			raw = max
		}

		for i := 0; i < 50; i++ {
			d := Delay(base, max, attempt)
			must.GreaterEq(t, time.Duration(float64(raw)*0.5), d)
			must.LessEq(t, time.Duration(float64(raw)*1.5), d)
		}
	}
}

func TestDelay_AttemptFloor(t *testing.T) {
	// Attempt values below 1 behave like the first attempt.
	d := Delay(time.Second, time.Minute, -3)
	must.GreaterEq(t, 500*time.Millisecond, d)
	must.LessEq(t, 1500*time.Millisecond, d)
}

func TestWait_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Wait(ctx, time.Hour, time.Hour, 1)
	must.ErrorIs(t, err, context.Canceled)
}

func TestWait_Completes(t *testing.T) {
	err := Wait(context.Background(), time.Millisecond, time.Millisecond, 1)
	must.NoError(t, err)
}
