package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/genres"
)

// fakeClient is a hand-rolled client.Client with per-method hooks and
// call counters.
type fakeClient struct {
	registerFn func(ctx context.Context, req client.RegisterRequest) (*client.AuthResponse, error)
	loginFn    func(ctx context.Context, req client.LoginRequest) (*client.AuthResponse, error)
	findFn     func(ctx context.Context, email string) (*client.UserResponse, error)

	registerCalls atomic.Int32
	loginCalls    atomic.Int32
	findCalls     atomic.Int32

	mu           sync.Mutex
	lastRegister client.RegisterRequest
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Register(ctx context.Context, req client.RegisterRequest) (*client.AuthResponse, error) {
	f.registerCalls.Add(1)
	f.mu.Lock()
	f.lastRegister = req
	f.mu.Unlock()
	if f.registerFn == nil {
		return nil, errors.New("unexpected register")
	}
	return f.registerFn(ctx, req)
}

func (f *fakeClient) Login(ctx context.Context, req client.LoginRequest) (*client.AuthResponse, error) {
	f.loginCalls.Add(1)
	if f.loginFn == nil {
		return nil, errors.New("unexpected login")
	}
	return f.loginFn(ctx, req)
}

func (f *fakeClient) FindUserByEmail(ctx context.Context, email string) (*client.UserResponse, error) {
	f.findCalls.Add(1)
	if f.findFn == nil {
		return nil, errors.New("unexpected find")
	}
	return f.findFn(ctx, email)
}

func (f *fakeClient) registered() client.RegisterRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastRegister
}

func remoteUser(id, email string, onboarded bool, labels ...string) client.UserResponse {
	prefs, _ := genres.FromLabels(labels)
	return client.UserResponse{
		ID:               id,
		Name:             "Ada",
		UserApp:          "ada",
		Email:            email,
		DateBirth:        "1995-12-27",
		Age:              29,
		OnboardCompleted: onboarded,
		Genres:           client.GenderResponse{ID: 1, Genre: "female"},
		StylePreferences: client.StylePreferencesResponse{ID: 7, StylePreferences: prefs},
	}
}

func authOK(u client.UserResponse, token string) func(context.Context, client.LoginRequest) (*client.AuthResponse, error) {
	return func(context.Context, client.LoginRequest) (*client.AuthResponse, error) {
		return &client.AuthResponse{User: u, Token: token}, nil
	}
}

// memStorage is an in-memory Storage that records every operation.
type memStorage struct {
	mu      sync.Mutex
	data    []byte
	found   bool
	loadErr error
	saveErr error
	ops     []string
	saves   [][]byte
}

func (m *memStorage) Load(context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	return append([]byte(nil), m.data...), m.found, nil
}

func (m *memStorage) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "save")
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data = append([]byte(nil), data...)
	m.found = true
	m.saves = append(m.saves, m.data)
	return nil
}

func (m *memStorage) Remove(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, "remove")
	m.data = nil
	m.found = false
	return nil
}

func (m *memStorage) operations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ops...)
}
