package realtime

import (
	"sync"

	"github.com/google/uuid"
)

const defaultSendBuffer = 64

// Session one live transport connection; UserID is 0 for anonymous viewers
type Session struct {
	ID     string
	UserID uint64

	send chan []byte
	done chan struct{}
	once sync.Once
}

func NewSession(userID uint64) *Session {
	return &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		send:   make(chan []byte, defaultSendBuffer),
		done:   make(chan struct{}),
	}
}

// Send queues b without blocking; false means the session is closed or its buffer is full
func (s *Session) Send(b []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- b:
		return true
	default:
		return false
	}
}

// Outbound frames waiting to be written
func (s *Session) Outbound() <-chan []byte { return s.send }

// Done closed once the session is shut down
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) Close() {
	s.once.Do(func() { close(s.done) })
}

// Authenticated reports whether the session belongs to a signed-in user
func (s *Session) Authenticated() bool { return s.UserID != 0 }
