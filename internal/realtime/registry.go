package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/sang6174/ocean-chat-server-sub000/pkg/logger"
)

// userSessions is the per-user connection set. Each user carries their own
// lock so deliveries to unrelated users never serialize on each other.
type userSessions struct {
	mu sync.Mutex
	// gone marks a set that has been removed from the registry map; a
	// Register that raced the removal retries against a fresh set.
	gone bool
	set  map[*Session]struct{}
}

// Registry is the live directory of user id -> set of connections. A user
// connected from several devices or tabs holds several entries in their set.
// All operations are safe under concurrent access.
type Registry struct {
	users sync.Map // uuid.UUID -> *userSessions
	log   *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{log: log}
}

func (r *Registry) Register(s *Session) {
	for {
		v, _ := r.users.LoadOrStore(s.UserID, &userSessions{set: make(map[*Session]struct{})})
		us := v.(*userSessions)

		us.mu.Lock()
		if us.gone {
			us.mu.Unlock()
			continue
		}
		us.set[s] = struct{}{}
		us.mu.Unlock()
		return
	}
}

// Unregister removes the session from its owner's set and drops the mapping
// when the set empties; no dangling empty sets, no timeout sweep.
func (r *Registry) Unregister(s *Session) {
	v, ok := r.users.Load(s.UserID)
	if !ok {
		return
	}
	us := v.(*userSessions)

	us.mu.Lock()
	delete(us.set, s)
	if len(us.set) == 0 {
		us.gone = true
		r.users.Delete(s.UserID)
	}
	us.mu.Unlock()
}

// CountFor reports how many live connections a user holds. Zero also means
// the user has no registry entry at all.
func (r *Registry) CountFor(userID uuid.UUID) int {
	v, ok := r.users.Load(userID)
	if !ok {
		return 0
	}
	us := v.(*userSessions)
	us.mu.Lock()
	defer us.mu.Unlock()
	return len(us.set)
}

func (r *Registry) snapshot(userID uuid.UUID) []*Session {
	v, ok := r.users.Load(userID)
	if !ok {
		return nil
	}
	us := v.(*userSessions)

	us.mu.Lock()
	sessions := make([]*Session, 0, len(us.set))
	for s := range us.set {
		sessions = append(sessions, s)
	}
	us.mu.Unlock()
	return sessions
}

// DeliverToUser sends to every live connection of one user; a no-op when
// none. A single broken session never aborts delivery to the others.
func (r *Registry) DeliverToUser(userID uuid.UUID, payload []byte) {
	r.deliver(userID, "", payload)
}

// DeliverToOthers behaves like DeliverToUser but skips the connection whose
// session token matches exceptToken. Exclusion is scoped to the connection,
// not the user: the acting user's other open sessions still hear about the
// change, only the originating session, which has local confirmation, is
// skipped. Matching is by token, so two sockets opened with the same stored
// token are both treated as the origin.
func (r *Registry) DeliverToOthers(userID uuid.UUID, exceptToken string, payload []byte) {
	r.deliver(userID, exceptToken, payload)
}

// BroadcastToUsers applies DeliverToOthers across a recipient set.
func (r *Registry) BroadcastToUsers(userIDs []uuid.UUID, exceptToken string, payload []byte) {
	for _, id := range userIDs {
		r.deliver(id, exceptToken, payload)
	}
}

func (r *Registry) deliver(userID uuid.UUID, exceptToken string, payload []byte) {
	for _, s := range r.snapshot(userID) {
		if exceptToken != "" && s.Token == exceptToken {
			continue
		}
		if err := s.Send(payload); err != nil {
			r.log.Warn("dropping realtime payload", "user_id", userID, "err", err)
		}
	}
}
