package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"wayfarer/internal/models/trip_models"
	mem "wayfarer/pkg/memcache"
	"wayfarer/pkg/utils"
)

// Session owns one conversation. History is append-only and written only
// after a request reaches a terminal state. At most one request is in flight.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	history []trip_models.ConversationTurn
	cancel  context.CancelFunc
	closed  bool
}

func NewSession() *Session {
	return &Session{ID: uuid.NewString(), CreatedAt: time.Now()}
}

// Begin marks a request as in flight and returns its context. release must be
// called once the request is finished.
func (s *Session) Begin(parent context.Context) (ctx context.Context, release func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, nil, utils.ErrSessionNotFound
	}
	if s.cancel != nil {
		return nil, nil, utils.ErrSessionBusy
	}

	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	release = func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		cancel()
		s.cancel = nil
	}
	return ctx, release, nil
}

// Cancel stops the in-flight request, if any.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return false
	}
	s.cancel()
	return true
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Session) Append(turn trip_models.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, turn)
}

// History returns a copy of the recorded turns.
func (s *Session) History() []trip_models.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]trip_models.ConversationTurn, len(s.history))
	copy(out, s.history)
	return out
}

type SessionServiceInterface interface {
	Create() *Session
	Get(id string) (*Session, error)
	Cancel(id string) (bool, error)
	End(id string) error
}

type SessionService struct {
	store  mem.TTLStore[*Session]
	logger *zap.Logger
}

func NewSessionService(store mem.TTLStore[*Session], logger *zap.Logger) SessionServiceInterface {
	return &SessionService{store: store, logger: logger}
}

func (s *SessionService) Create() *Session {
	session := NewSession()
	s.store.Set(session.ID, session)
	s.logger.Debug("session created", zap.String("session_id", session.ID))
	return session
}

func (s *SessionService) Get(id string) (*Session, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) Cancel(id string) (bool, error) {
	session, err := s.Get(id)
	if err != nil {
		return false, err
	}
	return session.Cancel(), nil
}

func (s *SessionService) End(id string) error {
	session, ok := s.store.Delete(id)
	if !ok {
		return utils.ErrSessionNotFound
	}
	session.Close()
	s.logger.Debug("session ended", zap.String("session_id", id))
	return nil
}
