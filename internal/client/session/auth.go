package session

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/validation"
	"github.com/dmitrijs2005/bookshelf/internal/redact"
	"github.com/golang-jwt/jwt/v5"
)

// acquire takes the network slot. It returns false when another
// Login, Register or RefreshUser is still running.
func (s *Store) acquire(ctx context.Context, op string) bool {
	if s.inFlight.CompareAndSwap(false, true) {
		return true
	}
	s.logger.Warn(ctx, "auth request rejected, another one is in flight", "op", op)
	return false
}

func (s *Store) release() { s.inFlight.Store(false) }

// fail records msg and drops the loading flag in a single commit.
func (s *Store) fail(msg string) {
	s.commit(func(st *models.State) {
		st.Loading = false
		st.Error = msg
	})
}

// failAt is fail for a request started at generation gen. A failure that
// lands after Logout is dropped.
func (s *Store) failAt(gen uint64, msg string) {
	s.commitIf(gen, func(st *models.State) {
		st.Loading = false
		st.Error = msg
	})
}

// begin raises the loading flag and returns the session generation the
// request belongs to.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked(func(st *models.State) {
		st.Loading = true
		st.Error = ""
	})
	return s.generation
}

// Login authenticates with email and password. Empty credentials are
// rejected without a network call.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	if !s.acquire(ctx, "login") {
		return false
	}
	defer s.release()

	email = strings.TrimSpace(email)
	log := s.logger.With("op", "login", "email", redact.Email(email))

	if err := validation.Credentials(email, password); err != nil {
		log.Info(ctx, "login rejected locally", "error", err)
		s.fail(errorMessage(err))
		return false
	}

	gen := s.begin()
	resp, err := s.api.Login(ctx, client.LoginRequest{Email: email, Password: password})
	if err != nil {
		log.Warn(ctx, "login failed", "error", err)
		s.failAt(gen, errorMessage(err))
		return false
	}

	user := userFromResponse(resp.User)
	applied := s.commitIf(gen, func(st *models.State) {
		applySession(st, user, resp.Token)
		st.Loading = false
		st.Error = ""
	})
	if !applied {
		log.Info(ctx, "discarding login that finished after logout")
		return false
	}
	log.Info(ctx, "logged in", "user_id", user.ID)
	return true
}

// Register creates an account from in, filling unanswered onboarding
// fields from the scratch buffer. On success the buffer is cleared.
func (s *Store) Register(ctx context.Context, in RegistrationInput) bool {
	if !s.acquire(ctx, "register") {
		return false
	}
	defer s.release()

	st := s.State()
	in = in.withTemp(st.TempUserData)
	in.Email = strings.TrimSpace(in.Email)
	log := s.logger.With("op", "register", "email", redact.Email(in.Email))

	now := s.now()
	if err := in.validate(s.rules, now); err != nil {
		log.Info(ctx, "registration rejected locally", "error", err)
		s.fail(errorMessage(err))
		return false
	}

	req, unknown := buildRegisterRequest(in, st.OnboardingCompleted, now)
	if len(unknown) > 0 {
		log.Warn(ctx, "ignoring genres without a preference key", "genres", unknown)
	}

	gen := s.begin()
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		log.Warn(ctx, "registration failed", "error", err)
		s.failAt(gen, errorMessage(err))
		return false
	}

	user := userFromResponse(resp.User)
	// The server does not keep these.
	user.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	user.Country = strings.TrimSpace(in.Country)

	applied := s.commitIf(gen, func(st *models.State) {
		applySession(st, user, resp.Token)
		st.TempUserData = nil
		st.Loading = false
		st.Error = ""
	})
	if !applied {
		log.Info(ctx, "discarding registration that finished after logout", "user_id", user.ID)
		return false
	}
	log.Info(ctx, "registered", "user_id", user.ID)
	return true
}

// RefreshUser reloads the current user from the server. Phone number and
// country exist only locally and are carried over. The token is kept.
func (s *Store) RefreshUser(ctx context.Context) bool {
	if !s.acquire(ctx, "refresh") {
		return false
	}
	defer s.release()

	current := s.State().User
	if current == nil {
		return false
	}
	log := s.logger.With("op", "refresh", "user_id", current.ID)

	gen := s.begin()
	resp, err := s.api.FindUserByEmail(ctx, current.Email)
	if err != nil {
		log.Warn(ctx, "refresh failed", "error", err)
		s.failAt(gen, errorMessage(err))
		return false
	}

	fresh := userFromResponse(*resp)
	fresh.PhoneNumber = current.PhoneNumber
	fresh.Country = current.Country

	applied := false
	s.commitIf(gen, func(st *models.State) {
		st.Loading = false
		st.Error = ""
		// SetSession may have swapped the user while the request was out.
		if st.User == nil || st.User.ID != current.ID {
			return
		}
		st.User = fresh
		st.OnboardingCompleted = fresh.OnboardingCompleted
		applied = true
	})
	if !applied {
		log.Info(ctx, "discarding refresh for a session that has ended")
	}
	return applied
}

// TokenExpiry reports the exp claim of the current token when it is a JWT.
// The signature is not checked; the value is informational only.
func (s *Store) TokenExpiry() (time.Time, bool) {
	return tokenExpiry(s.State().Token)
}

func tokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
