package service

import (
	"crypto/subtle"
	"log/slog"
	"strings"

	"github.com/pcormier/wax/internal/store"
)

// AuthService gates the digging view behind one shared access code. This
// is intentionally not a credential system: the code is compared
// client-side and a boolean flag persisted.
type AuthService struct {
	accessCode string
	store      *store.Store
	logger     *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(accessCode string, st *store.Store, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{accessCode: accessCode, store: st, logger: logger}
}

// Login compares the input against the access code. A match persists the
// flag so future sessions start authenticated.
func (s *AuthService) Login(code string) bool {
	if s.accessCode == "" {
		return false
	}
	ok := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(code)), []byte(s.accessCode)) == 1
	if ok {
		s.store.SetAuthenticated(true)
	}
	return ok
}

// Logout clears the persisted flag
func (s *AuthService) Logout() {
	s.store.SetAuthenticated(false)
}

// Authenticated reports whether the gate has been passed
func (s *AuthService) Authenticated() bool {
	return s.store.Authenticated()
}
