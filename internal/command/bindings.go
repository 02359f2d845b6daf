package command

import (
	"context"
	"fmt"

	"github.com/trainloop/fitcoach/internal/alert"
)

// Emergency stop prompt copy. The exact text and both choice labels are a
// safety contract with the UI layer; do not reword them casually.
const (
	EmergencyStopTitle   = "Emergency Stop"
	EmergencyStopMessage = "Workout stopped immediately. Are you okay?"
	EmergencyStopOK      = "I'm OK"
	EmergencyStopCall    = "Call Emergency Contact"
)

// DefaultBindings provides the production trigger-phrase set.
func DefaultBindings() []Binding {
	return []Binding{
		{Phrase: "start workout", Action: "startWorkout"},
		{Phrase: "pause workout", Action: "pauseWorkout"},
		{Phrase: "resume workout", Action: "resumeWorkout"},
		{Phrase: "end workout", Action: "endWorkout"},
		{Phrase: "stop workout", Action: "endWorkout"},
		{Phrase: "next exercise", Action: "nextExercise"},
		{Phrase: "previous exercise", Action: "previousExercise"},
		{Phrase: "how am i doing", Action: "progressUpdate"},
		{Phrase: "emergency stop", Action: "emergencyStop"},
	}
}

// RegisterDefaultHandlers binds a handler for every default action. The
// emergency stop handler blocks on the alert capability until the user
// picks a choice and only then reports success.
func RegisterDefaultHandlers(d *Dispatcher, alerter alert.Alerter) {
	ack := func(message string) HandlerFunc {
		return func(context.Context) (Result, error) {
			return Result{Success: true, Message: message}, nil
		}
	}

	d.Handle("startWorkout", ack("Workout session started"))
	d.Handle("pauseWorkout", ack("Workout paused"))
	d.Handle("resumeWorkout", ack("Workout resumed"))
	d.Handle("endWorkout", ack("Workout session ended"))
	d.Handle("nextExercise", ack("Moving to next exercise"))
	d.Handle("previousExercise", ack("Returning to previous exercise"))
	d.Handle("progressUpdate", ack("You're doing great, keep it up"))
	d.Handle("emergencyStop", func(ctx context.Context) (Result, error) {
		choice, err := alerter.Show(ctx, EmergencyStopTitle, EmergencyStopMessage,
			[]string{EmergencyStopOK, EmergencyStopCall})
		if err != nil {
			return Result{}, fmt.Errorf("emergency stop prompt: %w", err)
		}
		return Result{Success: true, Message: "Emergency stop acknowledged: " + choice}, nil
	})
}
