package auth

import (
	"strconv"
	"strings"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore holds the access token for the session. Claims are read
// without signature verification: the client only mines the payload for
// display/gating hints (the server re-checks everything), same as the
// legacy client's manual base64 decode.
type TokenStore struct {
	mu    sync.RWMutex
	token string
}

func NewTokenStore(token string) *TokenStore {
	return &TokenStore{token: token}
}

func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *TokenStore) Clear() {
	s.Set("")
}

func (s *TokenStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *TokenStore) HasToken() bool {
	return s.Token() != ""
}

type claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

func (s *TokenStore) parse() (*claims, bool) {
	tok := s.Token()
	if tok == "" {
		return nil, false
	}
	var c claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tok, &c); err != nil {
		return nil, false
	}
	return &c, true
}

// UserID extracts the numeric subject claim, 0 when absent or malformed.
func (s *TokenStore) UserID() int64 {
	c, ok := s.parse()
	if !ok {
		return 0
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (s *TokenStore) Roles() []string {
	c, ok := s.parse()
	if !ok {
		return nil
	}
	return c.Roles
}

// IsAdmin accepts both role spellings the backend has issued over time.
func (s *TokenStore) IsAdmin() bool {
	for _, r := range s.Roles() {
		switch strings.ToUpper(r) {
		case "ADMIN", "ADMINISTRADOR":
			return true
		}
	}
	return false
}
