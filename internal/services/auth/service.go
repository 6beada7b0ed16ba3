package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/gridspace-io/gridspace/internal/dependencies/clock"
	"github.com/gridspace-io/gridspace/internal/dependencies/random"
	"github.com/gridspace-io/gridspace/internal/model"
	"github.com/gridspace-io/gridspace/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const userIDLength = 12

// Claims are the JWT claims carried by a gridspace bearer token
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Config holds configuration for the auth service
type Config struct {
	// Secret signs and verifies bearer tokens (HS256)
	Secret []byte
	// TokenDuration is how long issued tokens stay valid
	TokenDuration time.Duration
}

// DefaultConfig returns default auth configuration with no secret set
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// Service handles accounts and bearer token issuance/verification
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	cfg     Config
	logger  *slog.Logger
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "auth")),
	}
}

// Signup creates a new account. Role must be "user" or "admin".
func (s *Service) Signup(ctx context.Context, username, password string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, model.ErrInvalidRole
	}

	_, err := s.storage.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, model.ErrUsernameExists
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &model.User{
		ID:           model.UserID("u_" + s.random.String(userIDLength, random.SessionKeyAlphabet)),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		slog.String("user_id", string(user.ID)),
		slog.String("role", string(user.Role)))
	return user, nil
}

// Signin verifies credentials and issues a bearer token
func (s *Service) Signin(ctx context.Context, username, password string) (string, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// issueToken signs a JWT for the given user
func (s *Service) issueToken(user *model.User) (string, error) {
	now := s.clock.Now()
	claims := Claims{
		UserID: string(user.ID),
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.Secret)
}

// Verify validates a bearer token and returns the user id it carries.
// Any parse failure, signature mismatch, expiry, or missing userId claim
// yields ErrInvalidToken.
func (s *Service) Verify(tokenString string) (model.UserID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.cfg.Secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return model.UserID(claims.UserID), nil
}

// VerifyWithRole validates a token and returns the user id and role claim
func (s *Service) VerifyWithRole(tokenString string) (model.UserID, model.Role, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.cfg.Secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", "", ErrInvalidToken
	}
	return model.UserID(claims.UserID), model.Role(claims.Role), nil
}

// GetUser loads the account behind a user id
func (s *Service) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	return s.storage.GetUser(ctx, id)
}

// SetAvatar updates the user's selected avatar after checking it exists
func (s *Service) SetAvatar(ctx context.Context, userID model.UserID, avatarID model.AvatarID) error {
	if _, err := s.storage.GetAvatar(ctx, avatarID); err != nil {
		return err
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	user.AvatarID = avatarID
	user.UpdatedAt = s.clock.Now()
	return s.storage.SaveUser(ctx, user)
}

// GetUsersByIDs returns the users for the given ids, skipping unknown ones
func (s *Service) GetUsersByIDs(ctx context.Context, ids []model.UserID) ([]*model.User, error) {
	return s.storage.GetUsersByIDs(ctx, ids)
}
