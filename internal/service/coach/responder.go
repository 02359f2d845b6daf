// Package coach groups the assistant's generative capabilities behind
// small interfaces. The canned implementations are stand-ins for real
// model integrations and are the default; session logic never depends on
// a specific policy.
package coach

import (
	"context"
	"math/rand"
	"sync"

	model "github.com/trainloop/fitcoach/internal/model/session"
)

// Responder produces a coaching reply for a user message given the session
// context and the prior transcript.
type Responder interface {
	Respond(ctx context.Context, message string, sessionContext map[string]string, history []model.Entry) (string, error)
}

// cannedReplies is the fixed reply pool the placeholder responder draws
// from. Content-independent on purpose.
var cannedReplies = []string{
	"Great question! Focus on keeping your core tight throughout the movement.",
	"You're making solid progress. Consistency beats intensity every time.",
	"Remember to breathe out on the effort and in on the release.",
	"Form first, weight second. Drop the load if your technique slips.",
	"Hydrate and take your rest seriously — recovery is where the gains happen.",
	"Try slowing the eccentric phase; time under tension builds strength.",
}

// CannedResponder picks uniformly at random from a fixed pool, ignoring
// the message and context.
type CannedResponder struct {
	mu   sync.Mutex
	rand *rand.Rand
	pool []string
}

// NewCannedResponder returns a responder over the default pool seeded from
// the supplied source. Tests pass a fixed seed source for determinism.
func NewCannedResponder(src rand.Source) *CannedResponder {
	return &CannedResponder{
		rand: rand.New(src),
		pool: cannedReplies,
	}
}

// Respond returns a random pooled reply.
func (r *CannedResponder) Respond(context.Context, string, map[string]string, []model.Entry) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pool[r.rand.Intn(len(r.pool))], nil
}

// Pool exposes the reply pool so callers can assert membership.
func (r *CannedResponder) Pool() []string {
	return append([]string(nil), r.pool...)
}
