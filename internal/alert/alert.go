// Package alert abstracts the user-facing confirmation prompt so callers
// that must block on an acknowledgment (the emergency stop path) stay
// testable without a real UI.
package alert

import (
	"context"
	"log"
)

// Alerter presents a blocking prompt and returns the choice the user
// picked. Implementations must return one of the supplied choices or an
// error; they never invent a third outcome.
type Alerter interface {
	Show(ctx context.Context, title, message string, choices []string) (string, error)
}

// StaticAlerter resolves every prompt with its first choice and logs the
// interaction. It is the headless default when no UI channel is attached.
type StaticAlerter struct{}

// Show logs the prompt and acknowledges with the first choice.
func (StaticAlerter) Show(_ context.Context, title, message string, choices []string) (string, error) {
	log.Printf("[alert] %s: %s (choices: %v)", title, message, choices)
	if len(choices) == 0 {
		return "", nil
	}
	return choices[0], nil
}

// Func adapts a plain function to the Alerter interface.
type Func func(ctx context.Context, title, message string, choices []string) (string, error)

// Show calls f.
func (f Func) Show(ctx context.Context, title, message string, choices []string) (string, error) {
	return f(ctx, title, message, choices)
}
