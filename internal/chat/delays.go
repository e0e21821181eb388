package chat

import (
	"context"
	"fmt"
	"time"
)

// Profile names a delay used by the delivery walk.
type Profile string

const (
	ProfileShort  Profile = "short"  // pause between assistant messages
	ProfileMedium Profile = "medium" // typing time before each assistant message
	ProfileLong   Profile = "long"   // simulated generation call
)

// Delays holds the pacing parameters of the delivery walk.
type Delays struct {
	Short  time.Duration
	Medium time.Duration

	// Jitter is the width of the random range added to Medium.
	Jitter time.Duration
	Long   time.Duration

	// Sentinels maps exact message contents to an extra typing wait taken
	// after that message is appended.
	Sentinels map[string]Profile
}

// GenerationSentinel is the assistant line that announces the simulated
// video generation call.
const GenerationSentinel = "Calling Firefly API..."

// DefaultDelays returns the pacing used by the interactive chat.
func DefaultDelays() Delays {
	return Delays{
		Short:  200 * time.Millisecond,
		Medium: 500 * time.Millisecond,
		Jitter: 400 * time.Millisecond,
		Long:   5 * time.Second,
		Sentinels: map[string]Profile{
			GenerationSentinel: ProfileLong,
		},
	}
}

// InstantDelays keeps the sentinel table but removes every wait.
func InstantDelays() Delays {
	d := DefaultDelays()
	d.Short, d.Medium, d.Jitter, d.Long = 0, 0, 0, 0
	return d
}

// Validate checks that no duration is negative and that every sentinel
// names a known profile.
func (d Delays) Validate() error {
	for name, v := range map[string]time.Duration{
		"short": d.Short, "medium": d.Medium, "jitter": d.Jitter, "long": d.Long,
	} {
		if v < 0 {
			return fmt.Errorf("delay %s must not be negative, got %s", name, v)
		}
	}
	for content, p := range d.Sentinels {
		switch p {
		case ProfileShort, ProfileMedium, ProfileLong:
		default:
			return fmt.Errorf("sentinel %q: unknown delay profile %q", content, p)
		}
	}
	return nil
}

// duration resolves a profile to a concrete wait. rnd returns a value in [0, 1).
func (d Delays) duration(p Profile, rnd func() float64) time.Duration {
	switch p {
	case ProfileShort:
		return d.Short
	case ProfileMedium:
		if d.Jitter <= 0 {
			return d.Medium
		}
		return d.Medium + time.Duration(rnd()*float64(d.Jitter))
	case ProfileLong:
		return d.Long
	default:
		return 0
	}
}

// sentinel reports the extra wait profile for content, if any.
func (d Delays) sentinel(content string) (Profile, bool) {
	p, ok := d.Sentinels[content]
	return p, ok
}

// Sleeper suspends the delivery walk.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper waits on a real timer and returns early with the context's
// error when ctx is done.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
