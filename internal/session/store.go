// Package session owns the client-side authorization state: who is
// logged in, with what role, and which epoch of that state any async
// work belongs to. All reads of "am I logged in" and "am I an admin"
// derive from the current snapshot; nothing caches role decisions.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Stuart-0728/cqnu/internal/api"
	apperrors "github.com/Stuart-0728/cqnu/internal/errors"
	"github.com/Stuart-0728/cqnu/internal/log"
)

// Phase is the lifecycle state of the session.
type Phase int

const (
	// PhaseInitializing means the persisted token (if any) has not been
	// validated yet. Role-gated decisions must wait it out.
	PhaseInitializing Phase = iota
	// PhaseAnonymous means no valid session exists.
	PhaseAnonymous
	// PhaseAuthenticated means a validated user is attached.
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session at one generation.
type Snapshot struct {
	Phase      Phase
	User       *api.User
	Generation uint64
}

// IsLoggedIn reports whether the snapshot carries an authenticated user.
func (s Snapshot) IsLoggedIn() bool {
	return s.Phase == PhaseAuthenticated && s.User != nil
}

// IsAdmin derives the admin bit from the attached user. It is never
// stored separately, so it cannot drift from the user record.
func (s Snapshot) IsAdmin() bool {
	return s.IsLoggedIn() && s.User.Role == api.RoleAdmin
}

// Store is the single source of truth for session state. Every change
// bumps the generation counter; async completions tagged with an older
// generation must be discarded by their consumers.
type Store struct {
	mu sync.Mutex

	client     *api.Client
	logger     *log.Logger
	phase      Phase
	user       *api.User
	generation uint64
	watchers   []chan Snapshot
}

// NewStore creates a session store in the initializing phase.
func NewStore(client *api.Client) *Store {
	return &Store{
		client: client,
		logger: log.DefaultLogger().With("component", "session"),
		phase:  PhaseInitializing,
	}
}

// Snapshot returns the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Phase: s.phase, User: s.user, Generation: s.generation}
}

// Generation returns the current session epoch.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Watch registers a subscriber notified on every session transition.
// Notifications are best-effort: a slow subscriber misses intermediate
// snapshots but always receives the latest one it can keep up with.
func (s *Store) Watch() <-chan Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Snapshot, 8)
	s.watchers = append(s.watchers, ch)
	return ch
}

// transition mutates phase and user, bumps the generation, and notifies
// watchers. Callers must not hold s.mu.
func (s *Store) transition(phase Phase, user *api.User) Snapshot {
	s.mu.Lock()
	s.phase = phase
	s.user = user
	s.generation++
	snap := Snapshot{Phase: s.phase, User: s.user, Generation: s.generation}
	watchers := s.watchers
	s.mu.Unlock()

	for _, ch := range watchers {
		select {
		case ch <- snap:
		default:
		}
	}
	return snap
}

// Initialize resolves the persisted token into a live session. A token
// the server no longer accepts is cleared; a network failure leaves the
// token on disk for the next attempt but starts anonymous.
func (s *Store) Initialize(ctx context.Context) Snapshot {
	creds, ok, err := LoadCredentials()
	if err != nil {
		s.logger.Warn("failed to load credentials", "error", err)
		return s.transition(PhaseAnonymous, nil)
	}
	if !ok {
		return s.transition(PhaseAnonymous, nil)
	}

	s.client.SetToken(creds.Token)
	user, err := s.client.Profile(ctx)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeNetUnavailable {
			// Server unreachable, not a verdict on the token.
			s.logger.Warn("could not validate session", "error", err)
			s.client.SetToken("")
			return s.transition(PhaseAnonymous, nil)
		}
		s.logger.Info("persisted session rejected, clearing", "username", creds.Username)
		s.client.SetToken("")
		if err := ClearCredentials(); err != nil {
			s.logger.Warn("failed to clear credentials", "error", err)
		}
		return s.transition(PhaseAnonymous, nil)
	}

	s.logger.Info("session restored", "username", user.Username, "role", user.Role)
	return s.transition(PhaseAuthenticated, user)
}

// Login authenticates and persists the session. On failure the session
// stays in its previous phase.
func (s *Store) Login(ctx context.Context, username, password string) (Snapshot, error) {
	result, err := s.client.Login(ctx, username, password)
	if err != nil {
		return s.Snapshot(), err
	}

	if err := SaveCredentials(Credentials{Token: result.Token, Username: result.User.Username}); err != nil {
		// The live session still works; only restart persistence is lost.
		s.logger.Warn("failed to persist credentials", "error", err)
	}

	return s.transition(PhaseAuthenticated, &result.User), nil
}

// Register creates an account and immediately logs in with it.
func (s *Store) Register(ctx context.Context, req api.RegisterRequest) (Snapshot, error) {
	if _, err := s.client.Register(ctx, req); err != nil {
		return s.Snapshot(), err
	}
	return s.Login(ctx, req.Username, req.Password)
}

// Logout ends the session. The server call is best-effort: local state
// and persisted credentials are cleared even if it fails, so the client
// never stays logged in against the user's intent.
func (s *Store) Logout(ctx context.Context) Snapshot {
	if s.Snapshot().IsLoggedIn() {
		if err := s.client.Logout(ctx); err != nil {
			s.logger.Debug("server logout failed", "error", err)
		}
	}

	s.client.SetToken("")
	if err := ClearCredentials(); err != nil {
		s.logger.Warn("failed to clear credentials", "error", err)
	}
	return s.transition(PhaseAnonymous, nil)
}

// Refresh re-fetches the profile for the current session, picking up
// role changes made by an admin. An auth failure demotes to anonymous.
func (s *Store) Refresh(ctx context.Context) (Snapshot, error) {
	if !s.Snapshot().IsLoggedIn() {
		return s.Snapshot(), apperrors.NewNotLoggedInError()
	}

	user, err := s.client.Profile(ctx)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrCodeAuthSessionExpired {
			return s.Logout(ctx), err
		}
		return s.Snapshot(), err
	}
	return s.transition(PhaseAuthenticated, user), nil
}
