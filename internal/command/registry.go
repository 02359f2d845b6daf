package command

import "strings"

// Binding maps a trigger phrase to an action identifier. Bindings are
// static configuration, loaded once and read-only afterwards.
type Binding struct {
	Phrase string `json:"phrase"`
	Action string `json:"action"`
}

// Match is the outcome of resolving an utterance against the registry.
type Match struct {
	Action     string `json:"action"`
	Phrase     string `json:"phrase"`
	Transcript string `json:"transcript"`
}

// Registry resolves free-text utterances to at most one action by
// case-insensitive substring containment. Iteration order is insertion
// order, so the first registered phrase wins when several match.
type Registry struct {
	bindings []Binding
}

// NewRegistry returns a registry preloaded with the supplied bindings.
func NewRegistry(bindings []Binding) *Registry {
	r := &Registry{}
	r.Register(bindings)
	return r
}

// Register replaces the active binding set.
func (r *Registry) Register(bindings []Binding) {
	r.bindings = append([]Binding(nil), bindings...)
}

// Bindings returns a copy of the active binding set.
func (r *Registry) Bindings() []Binding {
	return append([]Binding(nil), r.bindings...)
}

// Match scans the utterance for the first registered phrase it contains.
// Absence of a match is a normal result, not a failure.
func (r *Registry) Match(utterance string) (Match, bool) {
	normalized := strings.ToLower(utterance)
	for _, b := range r.bindings {
		if b.Phrase == "" {
			continue
		}
		if strings.Contains(normalized, strings.ToLower(b.Phrase)) {
			return Match{Action: b.Action, Phrase: b.Phrase, Transcript: utterance}, true
		}
	}
	return Match{}, false
}
