package coach

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/trainloop/fitcoach/internal/model/fitness"
)

// Planner generates a workout plan from a profile, stated goals, and the
// equipment on hand.
type Planner interface {
	GenerateWorkout(ctx context.Context, profile fitness.Profile, goals []string, equipment []string) (fitness.Workout, error)
}

// CannedPlanner assembles a fixed template plan, keeping only exercises
// whose equipment is available. A stand-in for a real generation service.
type CannedPlanner struct{}

var templateExercises = []fitness.Exercise{
	{Name: "Goblet Squat", Sets: 3, Reps: 12, RestSeconds: 60, Equipment: "dumbbell"},
	{Name: "Push-Up", Sets: 3, Reps: 15, RestSeconds: 45},
	{Name: "Dumbbell Row", Sets: 3, Reps: 10, RestSeconds: 60, Equipment: "dumbbell"},
	{Name: "Kettlebell Swing", Sets: 4, Reps: 15, RestSeconds: 60, Equipment: "kettlebell"},
	{Name: "Plank", Sets: 3, Reps: 1, RestSeconds: 45},
	{Name: "Barbell Deadlift", Sets: 3, Reps: 8, RestSeconds: 90, Equipment: "barbell"},
}

// GenerateWorkout returns the template filtered by available equipment.
// Bodyweight movements are always included.
func (CannedPlanner) GenerateWorkout(_ context.Context, profile fitness.Profile, goals []string, equipment []string) (fitness.Workout, error) {
	available := make(map[string]bool, len(equipment))
	for _, e := range equipment {
		available[strings.ToLower(strings.TrimSpace(e))] = true
	}

	var selected []fitness.Exercise
	for _, ex := range templateExercises {
		if ex.Equipment == "" || available[ex.Equipment] {
			selected = append(selected, ex)
		}
	}

	difficulty := profile.Level
	if difficulty == "" {
		difficulty = "beginner"
	}

	name := "Full Body Session"
	if len(goals) > 0 && strings.TrimSpace(goals[0]) != "" {
		name = strings.TrimSpace(goals[0]) + " session"
	}

	return fitness.Workout{
		ID:              uuid.NewString(),
		Name:            name,
		DurationMinutes: 10 * len(selected),
		Difficulty:      difficulty,
		Exercises:       selected,
		Notes:           "Warm up for five minutes before the first set.",
	}, nil
}
