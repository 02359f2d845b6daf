package coach

import (
	"context"

	"github.com/trainloop/fitcoach/internal/model/fitness"
)

// Analyzer is the perception capability: given a media reference it
// produces a structured analysis. Only the response shapes are contractual;
// the canned implementation returns fixed records independent of input.
type Analyzer interface {
	AnalyzeForm(ctx context.Context, mediaRef string) (fitness.FormAnalysis, error)
	AnalyzeProgressPhoto(ctx context.Context, mediaRef string) (fitness.ProgressPhotoAnalysis, error)
	AnalyzeNutrition(ctx context.Context, mediaRef string) (fitness.NutritionAnalysis, error)
}

// CannedAnalyzer returns hard-coded analyses standing in for a real vision
// service.
type CannedAnalyzer struct{}

// AnalyzeForm returns the fixed form report.
func (CannedAnalyzer) AnalyzeForm(context.Context, string) (fitness.FormAnalysis, error) {
	return fitness.FormAnalysis{
		Exercise: "squat",
		Score:    82,
		Issues:   []string{"knees cave slightly on the ascent", "depth just above parallel"},
		Suggestions: []string{
			"Push the knees out over the toes",
			"Pause one beat at the bottom to own the position",
		},
	}, nil
}

// AnalyzeProgressPhoto returns the fixed progress summary.
func (CannedAnalyzer) AnalyzeProgressPhoto(context.Context, string) (fitness.ProgressPhotoAnalysis, error) {
	return fitness.ProgressPhotoAnalysis{
		BodyFatEstimate: 18.5,
		MuscleGroups:    []string{"shoulders", "back"},
		Changes:         []string{"visible delt definition", "improved posture"},
		Encouragement:   "Noticeable progress since last check-in — keep the streak going.",
	}, nil
}

// AnalyzeNutrition returns the fixed meal estimate.
func (CannedAnalyzer) AnalyzeNutrition(context.Context, string) (fitness.NutritionAnalysis, error) {
	return fitness.NutritionAnalysis{
		Calories: 640,
		ProteinG: 42,
		CarbsG:   58,
		FatG:     24,
		Quality:  "balanced",
		Suggestions: []string{
			"Add a portion of leafy greens",
			"Swap the sugary drink for water",
		},
	}, nil
}
