package fitness

// FormAnalysis reports on exercise execution quality for a captured clip
// or frame. Produced by the vision capability; callers treat it as opaque
// feedback to surface to the user.
type FormAnalysis struct {
	Exercise    string   `json:"exercise"`
	Score       int      `json:"score"` // 0-100
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// ProgressPhotoAnalysis summarizes visible change between progress photos.
type ProgressPhotoAnalysis struct {
	BodyFatEstimate float64  `json:"bodyFatEstimate"`
	MuscleGroups    []string `json:"muscleGroups"`
	Changes         []string `json:"changes"`
	Encouragement   string   `json:"encouragement"`
}

// NutritionAnalysis estimates the macro breakdown of a photographed meal.
type NutritionAnalysis struct {
	Calories    int      `json:"calories"`
	ProteinG    int      `json:"proteinG"`
	CarbsG      int      `json:"carbsG"`
	FatG        int      `json:"fatG"`
	Quality     string   `json:"quality"`
	Suggestions []string `json:"suggestions"`
}

// Profile carries the user attributes the workout planner consumes.
type Profile struct {
	Level       string   `json:"level"` // beginner, intermediate, advanced
	AgeYears    int      `json:"ageYears,omitempty"`
	WeightKg    float64  `json:"weightKg,omitempty"`
	Limitations []string `json:"limitations,omitempty"`
}

// Exercise is a single prescribed movement inside a workout.
type Exercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	RestSeconds int    `json:"restSeconds"`
	Equipment   string `json:"equipment,omitempty"`
}

// Workout is a generated training plan.
type Workout struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	DurationMinutes int        `json:"durationMinutes"`
	Difficulty      string     `json:"difficulty"`
	Exercises       []Exercise `json:"exercises"`
	Notes           string     `json:"notes,omitempty"`
}
