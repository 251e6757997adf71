package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/validation"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

// SessionStore is everything the UI may do with the session.
//
// Contract:
//   - State returns a copy; mutating it never affects the store.
//   - Login, Register and RefreshUser report success as a bool and put a
//     human-readable message into State().Error on failure. Only one of
//     them runs at a time; a call made while another is in flight returns
//     false and changes nothing.
//   - Logout leaves the store exactly as a fresh install.
type SessionStore interface {
	State() models.State

	SetUser(u *models.User)
	SetToken(token string)
	SetSession(u *models.User, token string)
	Login(ctx context.Context, email, password string) bool
	Register(ctx context.Context, in RegistrationInput) bool
	RefreshUser(ctx context.Context) bool
	Logout()
	UpdateUser(patch models.UserPatch)
	CompleteOnboarding()

	SetTempUserData(d *models.TempOnboardingData)
	UpdateTempUserData(partial models.TempOnboardingData)
	ClearTempData()

	SetLoading(loading bool)
	SetError(msg string)
	ClearError()

	TokenExpiry() (time.Time, bool)
	Subscribe(fn Listener) (cancel func())
}

// Listener observes committed transitions. Listeners run in commit order
// while the store is locked, so they must not call back into the store.
type Listener func(prev, next models.State)

type subscription struct {
	id int
	fn Listener
}

// Store is the in-memory session. It knows nothing about durable storage;
// see Attach for that.
type Store struct {
	mu        sync.Mutex
	state     models.State
	listeners []subscription
	nextID    int

	// generation is bumped by every Logout. Network calls capture it
	// when they start and drop their result if it moved.
	generation uint64

	// inFlight guards the single network slot shared by Login, Register
	// and RefreshUser.
	inFlight atomic.Bool

	api    client.Client
	rules  validation.Rules
	now    func() time.Time
	logger logging.Logger
}

var _ SessionStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

func WithRules(r validation.Rules) Option {
	return func(s *Store) { s.rules = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore returns a logged-out store talking to api.
func NewStore(api client.Client, opts ...Option) *Store {
	s := &Store{
		api:    api,
		rules:  validation.DefaultRules(),
		now:    time.Now,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) State() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn for every later commit.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// commit applies mutate to a copy of the state, installs it and notifies
// listeners before releasing the lock.
func (s *Store) commit(mutate func(st *models.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked(mutate)
}

// commitIf commits only while the session generation is still gen.
func (s *Store) commitIf(gen uint64, mutate func(st *models.State)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	s.commitLocked(mutate)
	return true
}

func (s *Store) commitLocked(mutate func(st *models.State)) {
	prev := s.state
	next := prev.Clone()
	mutate(&next)
	s.state = next

	for _, sub := range s.listeners {
		sub.fn(prev.Clone(), next.Clone())
	}
}

// hydrate installs a restored state without notifying listeners.
func (s *Store) hydrate(st models.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

// applySession sets user and token together and keeps the invariants:
// a user implies authenticated and the onboarding flags mirror each other.
func applySession(st *models.State, u *models.User, token string) {
	st.User = u.Clone()
	st.Token = token
	st.IsAuthenticated = true
	st.OnboardingCompleted = u.OnboardingCompleted
}

// SetUser replaces the user. A nil user is ignored.
func (s *Store) SetUser(u *models.User) {
	if u == nil {
		return
	}
	s.commit(func(st *models.State) {
		st.User = u.Clone()
		st.IsAuthenticated = true
		st.OnboardingCompleted = u.OnboardingCompleted
	})
}

// SetToken stores the token without touching authentication.
func (s *Store) SetToken(token string) {
	s.commit(func(st *models.State) { st.Token = token })
}

// SetSession applies user and token in one commit. A nil user is ignored.
func (s *Store) SetSession(u *models.User, token string) {
	if u == nil {
		return
	}
	s.commit(func(st *models.State) { applySession(st, u, token) })
}

// Logout resets everything, the scratch buffer and UI flags included.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.commitLocked(func(st *models.State) { *st = models.State{} })
}

// UpdateUser merges patch into the current user. Without a user it does
// nothing at all.
func (s *Store) UpdateUser(patch models.UserPatch) {
	s.mu.Lock()
	hasUser := s.state.User != nil
	s.mu.Unlock()
	if !hasUser {
		return
	}

	s.commit(func(st *models.State) {
		if st.User == nil {
			return
		}
		st.User = patch.Apply(st.User)
		st.OnboardingCompleted = st.User.OnboardingCompleted
	})
}

// CompleteOnboarding raises the session flag and, when a user exists, the
// user's flag as well.
func (s *Store) CompleteOnboarding() {
	s.commit(func(st *models.State) {
		st.OnboardingCompleted = true
		if st.User != nil {
			st.User.OnboardingCompleted = true
		}
	})
}

func (s *Store) SetTempUserData(d *models.TempOnboardingData) {
	s.commit(func(st *models.State) { st.TempUserData = d.Clone() })
}

func (s *Store) UpdateTempUserData(partial models.TempOnboardingData) {
	s.commit(func(st *models.State) { st.TempUserData = st.TempUserData.Merge(partial) })
}

func (s *Store) ClearTempData() {
	s.commit(func(st *models.State) { st.TempUserData = nil })
}

func (s *Store) SetLoading(loading bool) {
	s.commit(func(st *models.State) { st.Loading = loading })
}

// SetError sets the UI error message; an empty msg clears it.
func (s *Store) SetError(msg string) {
	s.commit(func(st *models.State) { st.Error = msg })
}

func (s *Store) ClearError() {
	s.SetError("")
}
