package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/genres"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authOK = `{
  "userRegister": {
    "id": "u-1",
    "name": "Ada",
    "userapp": "ada",
    "email": "ada@example.com",
    "dateBirth": "1995-12-27",
    "age": 29,
    "avatarUrl": "",
    "onboardCompleted": true,
    "emailVerified": false,
    "genres": {"id": 1, "genre": "female"},
    "stylePreferences": {"id": 7, "romance": true, "travel": true, "created_at": null, "updated_at": null}
  },
  "token": "tok-1"
}`

type fakeAPI struct {
	srv      *httptest.Server
	register atomic.Int32
	login    atomic.Int32
	find     atomic.Int32

	lastRegister RegisterRequest
	lastLogin    LoginRequest
	lastEmail    string
	lastReqID    string
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func newFakeAPI(t *testing.T, register, login, find http.HandlerFunc) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}

	r := chi.NewRouter()
	r.Post("/auth/register", func(w http.ResponseWriter, r *http.Request) {
		f.register.Add(1)
		f.lastReqID = r.Header.Get(common.RequestIDHeaderName)
		_ = json.NewDecoder(r.Body).Decode(&f.lastRegister)
		register(w, r)
	})
	r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.login.Add(1)
		_ = json.NewDecoder(r.Body).Decode(&f.lastLogin)
		login(w, r)
	})
	r.Get("/user/findByEmail/{email}", func(w http.ResponseWriter, r *http.Request) {
		f.find.Add(1)
		f.lastEmail = chi.URLParam(r, "email")
		find(w, r)
	})

	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)
	return f
}

func ok(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, http.StatusOK, body) }
}

func status(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, code, body) }
}

// hang blocks until the client gives up on the request.
func hang(w http.ResponseWriter, r *http.Request) { <-r.Context().Done() }

func newTestClient(f *fakeAPI) *HTTPClient {
	return NewHTTPClient(f.srv.URL+"/", WithTimeout(200*time.Millisecond), WithRetry(3, time.Millisecond))
}

func TestHTTPClient_Register_Success(t *testing.T) {
	f := newFakeAPI(t, ok(authOK), nil, nil)
	c := newTestClient(f)

	prefs, _ := genres.FromLabels([]string{"Romance", "Travel"})
	resp, err := c.Register(context.Background(), RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "secret1",
		Genre: WireGenderFemale, UserStylePreferences: prefs,
	})
	require.NoError(t, err)

	assert.Equal(t, "tok-1", resp.Token)
	assert.Equal(t, "u-1", resp.User.ID)
	assert.Equal(t, "female", resp.User.Genres.Genre)
	assert.True(t, resp.User.StylePreferences.Romance)
	assert.True(t, resp.User.StylePreferences.Travel)
	assert.False(t, resp.User.StylePreferences.Technology)
	assert.Nil(t, resp.User.StylePreferences.CreatedAt)

	assert.Equal(t, "ada@example.com", f.lastRegister.Email)
	assert.True(t, f.lastRegister.UserStylePreferences.Romance)
	assert.NotEmpty(t, f.lastReqID)
}

func TestHTTPClient_Register_ConflictIsNotRetried(t *testing.T) {
	f := newFakeAPI(t, status(http.StatusConflict, `{"message":"email already registered"}`), nil, nil)
	c := newTestClient(f)

	_, err := c.Register(context.Background(), RegisterRequest{Email: "a@b.co"})

	apiErr, isAPI := AsAPIError(err)
	require.True(t, isAPI)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "email already registered", apiErr.Message)
	assert.EqualValues(t, 1, f.register.Load())
}

func TestHTTPClient_Register_FallbackMessage(t *testing.T) {
	f := newFakeAPI(t, status(http.StatusInternalServerError, `<html>oops</html>`), nil, nil)
	c := newTestClient(f)

	_, err := c.Register(context.Background(), RegisterRequest{})

	apiErr, isAPI := AsAPIError(err)
	require.True(t, isAPI)
	assert.Equal(t, "registration failed", apiErr.Message)
}

func TestHTTPClient_Register_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `not json`},
		{name: "missing token", body: `{"userRegister":{"id":"u-1"}}`},
		{name: "missing user", body: `{"token":"t"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeAPI(t, ok(tt.body), nil, nil)
			_, err := newTestClient(f).Register(context.Background(), RegisterRequest{})
			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestHTTPClient_Register_TimeoutIsUnavailableAndNotRetried(t *testing.T) {
	f := newFakeAPI(t, hang, nil, nil)
	c := NewHTTPClient(f.srv.URL, WithTimeout(30*time.Millisecond), WithRetry(3, time.Millisecond))

	_, err := c.Register(context.Background(), RegisterRequest{})
	require.ErrorIs(t, err, ErrUnavailable)
	assert.EqualValues(t, 1, f.register.Load())
}

func TestHTTPClient_Login_Success(t *testing.T) {
	f := newFakeAPI(t, nil, ok(authOK), nil)

	resp, err := newTestClient(f).Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.Token)
	assert.Equal(t, LoginRequest{Email: "ada@example.com", Password: "pw"}, f.lastLogin)
}

func TestHTTPClient_Login_RetriesTransportFailures(t *testing.T) {
	var calls atomic.Int32
	login := func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			hang(w, r)
			return
		}
		writeJSON(w, http.StatusOK, authOK)
	}
	f := newFakeAPI(t, nil, login, nil)
	c := NewHTTPClient(f.srv.URL, WithTimeout(50*time.Millisecond), WithRetry(3, time.Millisecond))

	resp, err := c.Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.Token)
	assert.EqualValues(t, 3, f.login.Load())
}

func TestHTTPClient_Login_GivesUpAfterAttempts(t *testing.T) {
	f := newFakeAPI(t, nil, hang, nil)
	c := NewHTTPClient(f.srv.URL, WithTimeout(30*time.Millisecond), WithRetry(2, time.Millisecond))

	_, err := c.Login(context.Background(), LoginRequest{})
	require.ErrorIs(t, err, ErrUnavailable)
	assert.EqualValues(t, 2, f.login.Load())
}

func TestHTTPClient_Login_UnauthorizedIsNotRetried(t *testing.T) {
	f := newFakeAPI(t, nil, status(http.StatusUnauthorized, `{"code":401,"message":"invalid credentials"}`), nil)

	_, err := newTestClient(f).Login(context.Background(), LoginRequest{})

	apiErr, isAPI := AsAPIError(err)
	require.True(t, isAPI)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.EqualValues(t, 1, f.login.Load())
}

func TestHTTPClient_Login_ServerDown(t *testing.T) {
	f := newFakeAPI(t, nil, ok(authOK), nil)
	f.srv.Close()

	_, err := newTestClient(f).Login(context.Background(), LoginRequest{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_Login_CancelledContext(t *testing.T) {
	f := newFakeAPI(t, nil, ok(authOK), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(f).Login(ctx, LoginRequest{})
	require.ErrorIs(t, err, ErrUnavailable)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestHTTPClient_FindUserByEmail(t *testing.T) {
	f := newFakeAPI(t, nil, nil, ok(`{"id":"u-1","email":"ada@example.com","stylePreferences":{"comics":true}}`))

	u, err := newTestClient(f).FindUserByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.True(t, u.StylePreferences.Comics)
	assert.Equal(t, "ada@example.com", f.lastEmail)
}

func TestHTTPClient_FindUserByEmail_NotFound(t *testing.T) {
	f := newFakeAPI(t, nil, nil, status(http.StatusNotFound, `{}`))

	_, err := newTestClient(f).FindUserByEmail(context.Background(), "ghost@example.com")

	apiErr, isAPI := AsAPIError(err)
	require.True(t, isAPI)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "user not found", apiErr.Message)
	assert.EqualValues(t, 1, f.find.Load())
}

func TestRedactPath(t *testing.T) {
	assert.Equal(t, "/auth/login", redactPath("/auth/login"))
	assert.Equal(t, "/user/findByEmail/ad***@example.com", redactPath("/user/findByEmail/ada@example.com"))
}
