package coach

import (
	"context"
	"errors"
	"sync"
)

// ErrEmptyAudio reports a transcription request with no payload.
var ErrEmptyAudio = errors.New("empty audio payload")

// Transcriber converts captured audio into text. The canned implementation
// stands in for a real ASR service and cycles through sample utterances.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
}

var sampleUtterances = []string{
	"start workout",
	"pause workout",
	"next exercise",
	"how am i doing",
	"end workout",
}

// CannedTranscriber returns sample utterances in round-robin order,
// ignoring audio content.
type CannedTranscriber struct {
	mu   sync.Mutex
	next int
}

// Transcribe returns the next sample utterance.
func (t *CannedTranscriber) Transcribe(_ context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", ErrEmptyAudio
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	utterance := sampleUtterances[t.next%len(sampleUtterances)]
	t.next++
	return utterance, nil
}
