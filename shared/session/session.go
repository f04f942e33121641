// Package session carries the authenticated user through a request and lets
// long-lived components react to sign-in and sign-out.
package session

import (
	"context"
	"drivingschool/shared/constant"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type contextKey struct{}

type User struct {
	ID      string
	Email   string
	Role    string
	TokenID string
}

func (u User) IsAdmin() bool {
	return u.Role == constant.RoleAdmin || u.Role == constant.RoleSuperAdmin
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

func FromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(contextKey{}).(User)
	if !ok || user.ID == "" {
		return User{}, false
	}

	return user, true
}

// UserID returns the current user id or "" for anonymous callers.
func UserID(ctx context.Context) string {
	user, _ := FromContext(ctx)

	return user.ID
}

type EventKind string

const (
	SignedIn  EventKind = "signed_in"
	SignedOut EventKind = "signed_out"
)

type Event struct {
	Kind   EventKind
	UserID string
}

type Hub interface {
	Publish(event Event)
	// Subscribe registers fn and returns the function that unregisters it.
	Subscribe(fn func(Event)) (unsubscribe func())
}

type hubImpl struct {
	mu          sync.RWMutex
	subscribers map[string]func(Event)
}

func NewHub() Hub {
	return &hubImpl{
		subscribers: map[string]func(Event){},
	}
}

// Publish delivers event synchronously to every subscriber.
func (h *hubImpl) Publish(event Event) {
	h.mu.RLock()
	subscribers := make([]func(Event), 0, len(h.subscribers))

	for _, fn := range h.subscribers {
		subscribers = append(subscribers, fn)
	}
	h.mu.RUnlock()

	log.Debug().Str("kind", string(event.Kind)).Str("user_id", event.UserID).Int("subscribers", len(subscribers)).Msg("publishing session event")

	for _, fn := range subscribers {
		fn(event)
	}
}

func (h *hubImpl) Subscribe(fn func(Event)) func() {
	id := uuid.NewString()

	h.mu.Lock()
	h.subscribers[id] = fn
	h.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			h.mu.Unlock()
		})
	}
}
