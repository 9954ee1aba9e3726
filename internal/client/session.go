package client

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"dashboard/internal/domain/models"
)

// TokenStore abstracts where the session token lives (the web frontend
// kept it in localStorage under a fixed key). Implementations must be
// safe for concurrent use.
type TokenStore interface {
	Token() string
	SetToken(token string)
	Clear()
}

type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *MemoryTokenStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Session is the explicit session context threaded into every
// collection client; there is no ambient global token.
type Session struct {
	baseURL string
	hc      *http.Client
	store   TokenStore
}

const defaultTimeout = 30 * time.Second

// NewSession builds a session against the given API base URL. A zero
// timeout falls back to 30s; a hung request surfaces as TransportError
// instead of hanging the caller forever.
func NewSession(baseURL string, timeout time.Duration, store TokenStore) *Session {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if store == nil {
		store = &MemoryTokenStore{}
	}
	return &Session{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		store:   store,
	}
}

func (s *Session) token() string {
	return s.store.Token()
}

type authEnvelope struct {
	Data struct {
		User  models.User `json:"user"`
		Token struct {
			Value string `json:"value"`
		} `json:"token"`
	} `json:"data"`
	Message string `json:"message"`
}

// Login authenticates with email (or username) and stores the returned
// token for subsequent calls.
func (s *Session) Login(ctx context.Context, email, password string) (models.User, error) {
	var out authEnvelope
	err := doJSON(ctx, s.hc, http.MethodPost, s.baseURL+"/auth/login", "",
		map[string]string{"email": email, "password": password}, &out)
	if err != nil {
		return models.User{}, err
	}
	s.store.SetToken(out.Data.Token.Value)
	return out.Data.User, nil
}

// Me returns the user owning the stored token.
func (s *Session) Me(ctx context.Context) (models.User, error) {
	var out struct {
		Data struct {
			User models.User `json:"user"`
		} `json:"data"`
	}
	err := doJSON(ctx, s.hc, http.MethodGet, s.baseURL+"/auth/me", s.token(), nil, &out)
	if err != nil {
		return models.User{}, err
	}
	return out.Data.User, nil
}

// Logout tells the server goodbye and drops the token either way.
func (s *Session) Logout(ctx context.Context) error {
	err := doJSON(ctx, s.hc, http.MethodPost, s.baseURL+"/auth/logout", s.token(), map[string]string{}, nil)
	s.store.Clear()
	return err
}

// Authenticated reports whether a token is currently held.
func (s *Session) Authenticated() bool {
	return s.token() != ""
}
