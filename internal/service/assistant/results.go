package assistant

import (
	"github.com/trainloop/fitcoach/internal/model/fitness"
	model "github.com/trainloop/fitcoach/internal/model/session"
)

// Operation results. Taxonomy errors are converted into Success=false plus
// an Error message at the facade boundary; callers check Success instead
// of handling raised errors.

// OpResult reports an operation with no payload.
type OpResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SessionResult carries a session payload. A nil Session with Success=true
// means the target was absent, which is a normal outcome for EndSession.
type SessionResult struct {
	Success bool           `json:"success"`
	Session *model.Session `json:"session,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// SessionListResult carries the active session listing.
type SessionListResult struct {
	Success  bool            `json:"success"`
	Sessions []model.Session `json:"sessions"`
	Error    string          `json:"error,omitempty"`
}

// CommandResult reports the outcome of one voice utterance. Matched is
// false when no registered phrase was recognized; that is a normal
// outcome, distinct from an operation failure.
type CommandResult struct {
	Success    bool   `json:"success"`
	Matched    bool   `json:"matched"`
	Action     string `json:"action,omitempty"`
	Phrase     string `json:"phrase,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	Message    string `json:"message,omitempty"`
	SessionID  string `json:"sessionId,omitempty"`
	Error      string `json:"error,omitempty"`
}

// MessageResult reports the outcome of one coaching exchange.
type MessageResult struct {
	Success   bool   `json:"success"`
	Response  string `json:"response,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// FormAnalysisResult carries an exercise form report.
type FormAnalysisResult struct {
	Success  bool                  `json:"success"`
	Analysis *fitness.FormAnalysis `json:"analysis,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// PhotoAnalysisResult carries a progress photo report.
type PhotoAnalysisResult struct {
	Success  bool                           `json:"success"`
	Analysis *fitness.ProgressPhotoAnalysis `json:"analysis,omitempty"`
	Error    string                         `json:"error,omitempty"`
}

// NutritionAnalysisResult carries a meal estimate.
type NutritionAnalysisResult struct {
	Success  bool                       `json:"success"`
	Analysis *fitness.NutritionAnalysis `json:"analysis,omitempty"`
	Error    string                     `json:"error,omitempty"`
}

// WorkoutResult carries a generated workout plan.
type WorkoutResult struct {
	Success bool             `json:"success"`
	Workout *fitness.Workout `json:"workout,omitempty"`
	Error   string           `json:"error,omitempty"`
}
