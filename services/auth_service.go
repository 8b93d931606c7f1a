package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kitchencart/kitchencart-api/models"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned when the username/password pair does
// not match a seeded account. It is the only user-visible auth failure.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DefaultLoginDelay simulates the latency of a real authentication call.
// The delay is fixed and not cancellable.
const DefaultLoginDelay = 800 * time.Millisecond

// AuthService checks credentials against the seeded users table and keeps
// sessions in process memory. Tokens are opaque and vanish on restart;
// there is no token issuance beyond this map and no external identity
// provider.
type AuthService struct {
	db         *gorm.DB
	loginDelay time.Duration

	mu       sync.RWMutex
	sessions map[string]models.User
}

// NewAuthService creates an auth service. Pass a zero delay in tests.
func NewAuthService(db *gorm.DB, loginDelay time.Duration) *AuthService {
	return &AuthService{
		db:         db,
		loginDelay: loginDelay,
		sessions:   make(map[string]models.User),
	}
}

// Login verifies the credentials and, on success, issues a session token.
// A mismatch returns ErrInvalidCredentials and leaves no session behind.
func (s *AuthService) Login(username, password string) (models.User, string, error) {
	time.Sleep(s.loginDelay)

	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}
	if user.Password != password {
		return models.User{}, "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = user
	s.mu.Unlock()

	return user, token, nil
}

// Logout revokes a session token. Unknown tokens are a no-op.
func (s *AuthService) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// UserForToken resolves a session token to the logged-in user.
func (s *AuthService) UserForToken(token string) (models.User, bool) {
	s.mu.RLock()
	user, ok := s.sessions[token]
	s.mu.RUnlock()
	return user, ok
}

// SessionCount returns the number of live sessions (for testing assertions).
func (s *AuthService) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var authServiceInstance *AuthService

// InitAuthService initializes the global auth service instance.
func InitAuthService(db *gorm.DB, loginDelay time.Duration) *AuthService {
	authServiceInstance = NewAuthService(db, loginDelay)
	return authServiceInstance
}

// GetAuthService returns the initialized auth service instance.
func GetAuthService() *AuthService {
	return authServiceInstance
}

// SetAuthService sets the auth service instance (primarily for testing).
func SetAuthService(s *AuthService) {
	authServiceInstance = s
}
