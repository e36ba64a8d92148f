package session

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ajarov/minesweep/internal/mines"
)

var ErrNotFound = errors.New("session not found")

// Registry holds live sessions behind one mutex. Handlers mutate a
// session only through Update, so every move is atomic with respect to
// other requests for the same session.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create registers a fresh game for params. Mines are not placed until
// the first reveal.
func (r *Registry) Create(params mines.GameParams, rnd *rand.Rand) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &Session{
		ID:        uuid.NewString(),
		Game:      mines.NewGame(params, rnd),
		CreatedAt: time.Now().UTC(),
	}
	r.sessions[s.ID] = s
	return s
}

// Update runs fn on the session with the given id under the registry
// lock.
func (r *Registry) Update(id string, fn func(*Session) error) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Get looks up a session without mutating it.
func (r *Registry) Get(id string) (*Session, error) {
	return r.Update(id, func(*Session) error { return nil })
}

// Delete drops a session from the registry.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
