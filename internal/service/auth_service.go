package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"voltstock/internal/config"
	"voltstock/internal/dto"
	"voltstock/internal/model"
	"voltstock/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// revokedKeyPrefix marks signed-out tokens in redis until they expire on
// their own; the auth middleware rejects any token found under it.
const revokedKeyPrefix = "session:revoked:"

// AuthService is the identity gateway: session check, sign-in/up/out.
type AuthService interface {
	SignIn(ctx context.Context, req dto.SignInRequest) (*dto.TokenResponse, error)
	SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.TokenResponse, error)
	SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error
	Session(ctx context.Context, userID string) (*dto.SessionResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo repository.UserRepository
	rdb  *redis.Client
	cfg  *config.Config
}

func NewAuthService(repo repository.UserRepository, rdb *redis.Client, cfg *config.Config) AuthService {
	return &authService{repo: repo, rdb: rdb, cfg: cfg}
}

func mapUser(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:     u.ID.String(),
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		Active: u.Active,
	}
}

func (s *authService) SignIn(ctx context.Context, req dto.SignInRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return s.tokenResponse(user)
}

func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.TokenResponse, error) {
	if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, errors.New("an account with that email already exists")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         "staff",
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.tokenResponse(user)
}

// SignOut revokes the token server-side. The denylist entry lives exactly as
// long as the token would have, so redis never accumulates dead sessions.
func (s *authService) SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil // already expired, nothing to revoke
	}
	return s.rdb.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err()
}

// Session resolves the authenticated user for a validated token. The UI
// redirects to the login page when this reports unauthenticated, and away
// from it when authenticated.
func (s *authService) Session(ctx context.Context, userID string) (*dto.SessionResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return &dto.SessionResponse{Authenticated: false}, nil
	}
	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Active {
		return &dto.SessionResponse{Authenticated: false}, nil
	}
	u := mapUser(user)
	return &dto.SessionResponse{Authenticated: true, User: &u}, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = mapUser(&users[i])
	}
	return resp, nil
}

func (s *authService) UpdateUser(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("user not found")
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	u := mapUser(user)
	return &u, nil
}

func (s *authService) DeactivateUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

func (s *authService) tokenResponse(user *model.User) (*dto.TokenResponse, error) {
	expiry := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"role":    user.Role,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(expiry).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		User:        mapUser(user),
	}, nil
}
