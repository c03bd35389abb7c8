package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/ideabox/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles user registration, login, and session token operations.
type AuthService struct {
	users       domain.UserRepository
	revocations domain.SessionRevocationRepository
	jwtSecret   []byte
	bcryptCost  int
	sessionTTL  time.Duration
}

// maxPasswordBytes is the longest input bcrypt hashes without truncating.
const maxPasswordBytes = 72

// sessionClaims is the payload of the auth_token cookie.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, revocations domain.SessionRevocationRepository, jwtSecret string, bcryptCost int, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		revocations: revocations,
		jwtSecret:   []byte(jwtSecret),
		bcryptCost:  bcryptCost,
		sessionTTL:  sessionTTL,
	}
}

// SessionTTL is how long an issued token stays valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Register creates a new user account after validating inputs. All fields
// are trimmed before validation.
func (s *AuthService) Register(ctx context.Context, loginID, nickname, password string) (*domain.User, error) {
	loginID = strings.TrimSpace(loginID)
	nickname = strings.TrimSpace(nickname)
	password = strings.TrimSpace(password)

	if loginID == "" || nickname == "" || password == "" {
		return nil, fmt.Errorf("%w: login id, nickname, and password are required", domain.ErrInvalidInput)
	}
	if len(password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrPasswordTooLong)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		LoginID:      loginID,
		Nickname:     nickname,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials. An unknown login id and a wrong
// password both yield domain.ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, loginID, password string) (*domain.User, error) {
	loginID = strings.TrimSpace(loginID)
	password = strings.TrimSpace(password)

	user, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

// Login verifies credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, loginID, password string) (string, error) {
	user, err := s.Authenticate(ctx, loginID, password)
	if err != nil {
		return "", err
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", fmt.Errorf("generate jwt: %w", err)
	}

	return token, nil
}

// ValidateToken parses and validates a session token, rejecting revoked ones.
// Returns the user ID from the sub claim.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (int64, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return 0, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return 0, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	return userID, nil
}

// Logout revokes the session token so it cannot be replayed. Tokens that no
// longer validate are already unusable and are ignored.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil
	}

	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// PurgeRevoked drops revocation records for tokens that have expired anyway.
func (s *AuthService) PurgeRevoked(ctx context.Context) (int64, error) {
	return s.revocations.PurgeExpired(ctx, time.Now())
}

// RunRevocationJanitor calls PurgeRevoked every interval until ctx is done.
func (s *AuthService) RunRevocationJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeRevoked(ctx)
			if err != nil {
				slog.Error("purge revoked sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("purged revoked sessions", "count", n)
			}
		}
	}
}

func (s *AuthService) parse(tokenString string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
