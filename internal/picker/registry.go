package picker

import "sync"

// Purposes of the three picker surfaces.
const (
	PurposeSolve   = "solve"
	PurposeAuthor  = "author"
	PurposeBuilder = "builder"
)

func ValidPurpose(p string) bool {
	return p == PurposeSolve || p == PurposeAuthor || p == PurposeBuilder
}

// Registry hands out per-user, per-purpose picker instances. The three
// purposes share the algorithm but never the state.
type Registry struct {
	mu      sync.Mutex
	pickers map[string]*Picker // key: userID + "|" + purpose
}

func NewRegistry() *Registry {
	return &Registry{pickers: map[string]*Picker{}}
}

func (r *Registry) Get(userID, purpose string) *Picker {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := userID + "|" + purpose
	p, ok := r.pickers[key]
	if !ok {
		p = New()
		r.pickers[key] = p
	}
	return p
}

// Drop forgets every picker belonging to userID (sign-out).
func (r *Registry) Drop(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, purpose := range []string{PurposeSolve, PurposeAuthor, PurposeBuilder} {
		delete(r.pickers, userID+"|"+purpose)
	}
}
