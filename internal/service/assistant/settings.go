package assistant

// Storage keys for the persisted settings blobs.
const (
	keySpeechSettings   = "settings/speech"
	keyVisionSettings   = "settings/vision"
	keyCoachingSettings = "settings/coaching"
)

// SpeechSettings configures the voice recognition pipeline.
type SpeechSettings struct {
	Language       string  `json:"language"`
	VoiceSpeed     float64 `json:"voiceSpeed"`
	VoiceFeedback  bool    `json:"voiceFeedback"`
	WakeWord       string  `json:"wakeWord"`
	SilenceTimeout int     `json:"silenceTimeoutSeconds"`
}

// VisionSettings configures the image analysis pipeline.
type VisionSettings struct {
	FormCheckEnabled   bool   `json:"formCheckEnabled"`
	PhotoQuality       string `json:"photoQuality"`
	AutoDeleteAfterDay int    `json:"autoDeleteAfterDays"`
}

// CoachingSettings configures the conversational coach.
type CoachingSettings struct {
	Tone             string `json:"tone"`
	ProactiveTips    bool   `json:"proactiveTips"`
	MaxHistoryTurns  int    `json:"maxHistoryTurns"`
	DailyCheckInHour int    `json:"dailyCheckInHour"`
}

func defaultSpeechSettings() SpeechSettings {
	return SpeechSettings{
		Language:       "en-US",
		VoiceSpeed:     1.0,
		VoiceFeedback:  true,
		WakeWord:       "hey coach",
		SilenceTimeout: 5,
	}
}

func defaultVisionSettings() VisionSettings {
	return VisionSettings{
		FormCheckEnabled:   true,
		PhotoQuality:       "high",
		AutoDeleteAfterDay: 30,
	}
}

func defaultCoachingSettings() CoachingSettings {
	return CoachingSettings{
		Tone:             "encouraging",
		ProactiveTips:    true,
		MaxHistoryTurns:  20,
		DailyCheckInHour: 8,
	}
}
