// Package assistant exposes the voice-command and coaching surface as one
// facade. Capability failures and the taxonomy errors never escape: every
// public operation converts them into a Success=false result, and a failed
// call never corrupts the session store.
package assistant

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/trainloop/fitcoach/internal/command"
	"github.com/trainloop/fitcoach/internal/model/fitness"
	model "github.com/trainloop/fitcoach/internal/model/session"
	"github.com/trainloop/fitcoach/internal/service/coach"
	sessionsvc "github.com/trainloop/fitcoach/internal/service/session"
	"github.com/trainloop/fitcoach/internal/store"
)

// Deps lists the collaborators the facade is constructed from. Everything
// is injected so tests build isolated instances.
type Deps struct {
	Sessions    *sessionsvc.Store
	Registry    *command.Registry
	Dispatcher  *command.Dispatcher
	Responder   coach.Responder
	Analyzer    coach.Analyzer
	Planner     coach.Planner
	Transcriber coach.Transcriber
	KV          store.KV
}

// Service implements the assistant surface.
type Service struct {
	deps Deps

	mu          sync.RWMutex
	initialized bool

	speech   SpeechSettings
	vision   VisionSettings
	coaching CoachingSettings
}

// New constructs an uninitialized assistant. Initialize must run before
// any other operation succeeds.
func New(deps Deps) *Service {
	return &Service{deps: deps}
}

// Initialize loads the three persisted settings blobs, seeding defaults on
// first run. Calling it again reloads them; it is safe to repeat.
func (s *Service) Initialize(ctx context.Context) OpResult {
	speech := defaultSpeechSettings()
	if err := s.loadOrSeed(ctx, keySpeechSettings, &speech); err != nil {
		return OpResult{Error: err.Error()}
	}

	vision := defaultVisionSettings()
	if err := s.loadOrSeed(ctx, keyVisionSettings, &vision); err != nil {
		return OpResult{Error: err.Error()}
	}

	coaching := defaultCoachingSettings()
	if err := s.loadOrSeed(ctx, keyCoachingSettings, &coaching); err != nil {
		return OpResult{Error: err.Error()}
	}

	s.mu.Lock()
	s.speech, s.vision, s.coaching = speech, vision, coaching
	s.initialized = true
	s.mu.Unlock()

	log.Printf("[assistant] initialized: language=%s tone=%s", speech.Language, coaching.Tone)
	return OpResult{Success: true}
}

// loadOrSeed unmarshals the blob stored under key into out, or persists
// out's current (default) value when the key is absent.
func (s *Service) loadOrSeed(ctx context.Context, key string, out any) error {
	raw, found, err := s.deps.KV.Get(ctx, key)
	if err != nil {
		return upstream("load "+key, err)
	}
	if found {
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			// Corrupt blob: fall through and rewrite the default.
			log.Printf("[assistant] discarding corrupt blob %s: %v", key, err)
		} else {
			return nil
		}
	}

	seeded, err := json.Marshal(out)
	if err != nil {
		return upstream("seed "+key, err)
	}
	if err := s.deps.KV.Set(ctx, key, string(seeded)); err != nil {
		return upstream("seed "+key, err)
	}
	return nil
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	return nil
}

// StartVoiceRecognition opens a voice session.
func (s *Service) StartVoiceRecognition(ctx context.Context) SessionResult {
	if err := s.ready(); err != nil {
		return SessionResult{Error: err.Error()}
	}

	s.mu.RLock()
	language := s.speech.Language
	s.mu.RUnlock()

	sess, err := s.deps.Sessions.Create(ctx, model.KindVoice, map[string]string{"language": language})
	if err != nil {
		return SessionResult{Error: err.Error()}
	}
	return SessionResult{Success: true, Session: &sess}
}

// ProcessVoiceCommand transcribes the audio payload, resolves it against
// the command registry, and dispatches the matched action. When sessionID
// is non-empty both the utterance and the outcome are appended to that
// session's transcript. An unrecognized utterance is a normal outcome
// (Matched=false), not a failure.
func (s *Service) ProcessVoiceCommand(ctx context.Context, sessionID string, audio []byte) CommandResult {
	if err := s.ready(); err != nil {
		return CommandResult{Error: err.Error()}
	}

	transcript, err := s.deps.Transcriber.Transcribe(ctx, audio)
	if err != nil {
		return CommandResult{Error: upstream("transcribe", err).Error()}
	}

	return s.ProcessUtterance(ctx, sessionID, transcript)
}

// ProcessUtterance resolves an already-transcribed utterance against the
// command registry and dispatches the matched action.
func (s *Service) ProcessUtterance(ctx context.Context, sessionID, transcript string) CommandResult {
	if err := s.ready(); err != nil {
		return CommandResult{Error: err.Error()}
	}

	if sessionID != "" {
		if _, err := s.deps.Sessions.AppendMessage(ctx, sessionID, model.RoleUser, transcript); err != nil {
			return CommandResult{Transcript: transcript, Error: err.Error()}
		}
	}

	match, ok := s.deps.Registry.Match(transcript)
	if !ok {
		return CommandResult{
			Success:    true,
			Matched:    false,
			Transcript: transcript,
			Message:    "Sorry, I didn't recognize that command.",
			SessionID:  sessionID,
		}
	}

	result, err := s.deps.Dispatcher.Dispatch(ctx, match.Action)
	if err != nil {
		return CommandResult{Matched: true, Action: match.Action, Transcript: transcript, Error: err.Error()}
	}

	if sessionID != "" {
		if _, err := s.deps.Sessions.AppendMessage(ctx, sessionID, model.RoleAssistant, result.Message); err != nil {
			log.Printf("[assistant] transcript append after dispatch failed: %v", err)
		}
	}

	return CommandResult{
		Success:    result.Success,
		Matched:    true,
		Action:     match.Action,
		Phrase:     match.Phrase,
		Transcript: transcript,
		Message:    result.Message,
		SessionID:  sessionID,
	}
}

// AnalyzeExerciseForm runs the vision capability on a captured clip.
func (s *Service) AnalyzeExerciseForm(ctx context.Context, mediaRef string) FormAnalysisResult {
	if err := s.ready(); err != nil {
		return FormAnalysisResult{Error: err.Error()}
	}
	analysis, err := s.deps.Analyzer.AnalyzeForm(ctx, mediaRef)
	if err != nil {
		return FormAnalysisResult{Error: upstream("analyze form", err).Error()}
	}
	return FormAnalysisResult{Success: true, Analysis: &analysis}
}

// AnalyzeProgressPhoto runs the vision capability on a progress photo.
func (s *Service) AnalyzeProgressPhoto(ctx context.Context, mediaRef string) PhotoAnalysisResult {
	if err := s.ready(); err != nil {
		return PhotoAnalysisResult{Error: err.Error()}
	}
	analysis, err := s.deps.Analyzer.AnalyzeProgressPhoto(ctx, mediaRef)
	if err != nil {
		return PhotoAnalysisResult{Error: upstream("analyze photo", err).Error()}
	}
	return PhotoAnalysisResult{Success: true, Analysis: &analysis}
}

// AnalyzeNutrition estimates the macro breakdown of a photographed meal.
func (s *Service) AnalyzeNutrition(ctx context.Context, mediaRef string) NutritionAnalysisResult {
	if err := s.ready(); err != nil {
		return NutritionAnalysisResult{Error: err.Error()}
	}
	analysis, err := s.deps.Analyzer.AnalyzeNutrition(ctx, mediaRef)
	if err != nil {
		return NutritionAnalysisResult{Error: upstream("analyze nutrition", err).Error()}
	}
	return NutritionAnalysisResult{Success: true, Analysis: &analysis}
}

// StartCoachingSession opens a coaching session with the supplied context.
func (s *Service) StartCoachingSession(ctx context.Context, sessionContext map[string]string) SessionResult {
	if err := s.ready(); err != nil {
		return SessionResult{Error: err.Error()}
	}
	sess, err := s.deps.Sessions.Create(ctx, model.KindCoaching, sessionContext)
	if err != nil {
		return SessionResult{Error: err.Error()}
	}
	return SessionResult{Success: true, Session: &sess}
}

// SendCoachingMessage appends the user message, produces a reply through
// the responder capability, and appends that reply to the transcript.
func (s *Service) SendCoachingMessage(ctx context.Context, sessionID, text string) MessageResult {
	if err := s.ready(); err != nil {
		return MessageResult{Error: err.Error()}
	}

	sess, err := s.deps.Sessions.AppendMessage(ctx, sessionID, model.RoleUser, text)
	if err != nil {
		return MessageResult{Error: err.Error()}
	}

	reply, err := s.deps.Responder.Respond(ctx, text, sess.Context, sess.Transcript)
	if err != nil {
		return MessageResult{SessionID: sessionID, Error: upstream("respond", err).Error()}
	}

	if _, err := s.deps.Sessions.AppendMessage(ctx, sessionID, model.RoleAssistant, reply); err != nil {
		return MessageResult{SessionID: sessionID, Error: err.Error()}
	}

	return MessageResult{Success: true, Response: reply, SessionID: sessionID}
}

// GeneratePersonalizedWorkout builds a plan from profile, goals, and
// available equipment.
func (s *Service) GeneratePersonalizedWorkout(ctx context.Context, profile fitness.Profile, goals, equipment []string) WorkoutResult {
	if err := s.ready(); err != nil {
		return WorkoutResult{Error: err.Error()}
	}
	workout, err := s.deps.Planner.GenerateWorkout(ctx, profile, goals, equipment)
	if err != nil {
		return WorkoutResult{Error: upstream("generate workout", err).Error()}
	}
	return WorkoutResult{Success: true, Workout: &workout}
}

// GetActiveSession looks up a stored session.
func (s *Service) GetActiveSession(ctx context.Context, id string) SessionResult {
	if err := s.ready(); err != nil {
		return SessionResult{Error: err.Error()}
	}
	sess, err := s.deps.Sessions.Get(ctx, id)
	if err != nil {
		return SessionResult{Error: err.Error()}
	}
	return SessionResult{Success: true, Session: &sess}
}

// EndSession removes the session. Absence is a normal outcome: the result
// succeeds with a nil Session when the id is unknown or already ended.
func (s *Service) EndSession(ctx context.Context, id string) SessionResult {
	if err := s.ready(); err != nil {
		return SessionResult{Error: err.Error()}
	}
	sess, ok := s.deps.Sessions.End(ctx, id)
	if !ok {
		return SessionResult{Success: true}
	}
	return SessionResult{Success: true, Session: &sess}
}

// GetAllActiveSessions lists every stored session.
func (s *Service) GetAllActiveSessions(ctx context.Context) SessionListResult {
	if err := s.ready(); err != nil {
		return SessionListResult{Error: err.Error()}
	}
	return SessionListResult{Success: true, Sessions: s.deps.Sessions.ListActive(ctx)}
}

// Cleanup ends every active session. The facade stays usable afterwards;
// the owner of the KV store closes it separately.
func (s *Service) Cleanup(ctx context.Context) OpResult {
	ended := s.deps.Sessions.EndAll(ctx)
	log.Printf("[assistant] cleanup: ended %d session(s)", ended)
	return OpResult{Success: true}
}
