package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"contasis-asistente/internal/domain"
)

// session is the mutable record behind a session ID. Nothing escapes the
// store without being copied, so callers can never mutate a stored Turn.
type session struct {
	id             string
	status         domain.SessionStatus
	turns          []domain.Turn
	speakingTurnID string
	// generation increments on every Reset. Operations carrying an older
	// generation are rejected, which is how a response arriving after a
	// reset is kept out of the cleared conversation.
	generation uint64
	createdAt  time.Time
	updatedAt  time.Time
}

// SessionStore keeps all conversation state in memory. Nothing is
// persisted; a restart discards every session.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*session
	now      func() time.Time
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// Create registers a new empty session and returns its ID.
func (s *SessionStore) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	id := uuid.NewString()
	s.sessions[id] = &session{
		id:        id,
		status:    domain.StatusIdle,
		createdAt: now,
		updatedAt: now,
	}
	return id
}

// Get returns a snapshot of a session.
func (s *SessionStore) Get(id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return snapshot(sess), nil
}

// Turns returns a copy of the session's turn log in conversation order.
func (s *SessionStore) Turns(id string) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyTurns(sess.turns), nil
}

// BeginTurn moves an idle session into the searching sub-phase and stops
// any active speech playback. It fails with ErrBusy while another turn is
// in flight. The returned generation must be carried through the rest of
// the turn.
func (s *SessionStore) BeginTurn(id string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if sess.status != domain.StatusIdle {
		return 0, domain.ErrBusy
	}
	sess.status = domain.StatusSearching
	sess.speakingTurnID = ""
	sess.updatedAt = s.now()
	return sess.generation, nil
}

// SetGenerating advances the in-flight turn to the generating sub-phase.
// A stale generation is ignored rather than reported: the phase is cosmetic
// and the caller will learn about the reset when it tries to append.
func (s *SessionStore) SetGenerating(id string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.generation != gen {
		return
	}
	sess.status = domain.StatusGenerating
	sess.updatedAt = s.now()
}

// AppendTurn adds a turn to the end of the log. Turns are never merged,
// deduplicated, or altered after append. ErrStaleSession means the session
// was reset after gen was obtained and the turn was discarded.
func (s *SessionStore) AppendTurn(id string, gen uint64, turn domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	if sess.generation != gen {
		return domain.ErrStaleSession
	}
	sess.turns = append(sess.turns, turn)
	sess.updatedAt = s.now()
	return nil
}

// FinishTurn returns the session to idle. With a stale generation it does
// nothing: the reset that bumped the generation already restored idle.
func (s *SessionStore) FinishTurn(id string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.generation != gen {
		return
	}
	sess.status = domain.StatusIdle
	sess.updatedAt = s.now()
}

// Reset clears the turn log, stops speech playback, and returns the
// session to idle, even while a call is pending. The generation bump makes
// the in-flight turn's eventual result stale.
func (s *SessionStore) Reset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	sess.turns = nil
	sess.status = domain.StatusIdle
	sess.speakingTurnID = ""
	sess.generation++
	sess.updatedAt = s.now()
	return nil
}

// ToggleSpeech flips playback for a turn. Toggling the turn that is
// already speaking stops it; toggling a different turn replaces it, so at
// most one turn is ever speaking. Returns whether the turn is speaking now.
func (s *SessionStore) ToggleSpeech(id, turnID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if sess.speakingTurnID == turnID {
		sess.speakingTurnID = ""
		sess.updatedAt = s.now()
		return false, nil
	}
	sess.speakingTurnID = turnID
	sess.updatedAt = s.now()
	return true, nil
}

// StopSpeech clears any active playback.
func (s *SessionStore) StopSpeech(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	sess.speakingTurnID = ""
	sess.updatedAt = s.now()
	return nil
}

// FindTurn looks up a turn by ID within a session.
func (s *SessionStore) FindTurn(id, turnID string) (domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return domain.Turn{}, domain.ErrNotFound
	}
	for _, t := range sess.turns {
		if t.ID == turnID {
			return t, nil
		}
	}
	return domain.Turn{}, domain.ErrNotFound
}

func snapshot(sess *session) *domain.Session {
	return &domain.Session{
		ID:             sess.id,
		Status:         sess.status,
		Turns:          copyTurns(sess.turns),
		SpeakingTurnID: sess.speakingTurnID,
		CreatedAt:      sess.createdAt,
		UpdatedAt:      sess.updatedAt,
	}
}

func copyTurns(turns []domain.Turn) []domain.Turn {
	out := make([]domain.Turn, len(turns))
	copy(out, turns)
	return out
}

// NewTurn builds an immutable turn record with a collision-free ID.
func NewTurn(role domain.Role, text string) domain.Turn {
	return domain.Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}
