package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yungbote/elderbridge-backend/internal/logger"
	"github.com/yungbote/elderbridge-backend/internal/repos"
	"github.com/yungbote/elderbridge-backend/internal/types"
	"github.com/yungbote/elderbridge-backend/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const tokenTTL = time.Hour

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type UpdateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type AuthResult struct {
	Token string      `json:"token"`
	User  *types.User `json:"user"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ParseToken(tokenString string) (uuid.UUID, string, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*types.User, error)
}

type authService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	secret   []byte
}

func NewAuthService(log *logger.Logger, userRepo repos.UserRepo) AuthService {
	serviceLog := log.With("service", "AuthService")
	secret := utils.GetEnv("JWT_SECRET", "", serviceLog)
	if secret == "" {
		serviceLog.Warn("JWT_SECRET not set, using insecure development secret")
		secret = "dev-secret-change-me"
	}
	return &authService{
		log:      serviceLog,
		userRepo: userRepo,
		secret:   []byte(secret),
	}
}

func (as *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" || input.Username == "" {
		return nil, fmt.Errorf("username, email and password are required")
	}
	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("Failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}
	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("Failed to hash password: %w", err)
	}
	user := &types.User{
		ID:        uuid.New(),
		Username:  input.Username,
		Email:     email,
		Phone:     input.Phone,
		Password:  hash,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := as.userRepo.Create(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("Failed to create user: %w", err)
	}
	token, err := as.issueToken(user)
	if err != nil {
		return nil, err
	}
	as.log.Info("User registered", "user_id", user.ID)
	return &AuthResult{Token: token, User: user}, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("Failed to load user: %w", err)
	}
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	token, err := as.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (as *authService) issueToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.secret)
	if err != nil {
		return "", fmt.Errorf("Failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates the signature and expiry and returns the user id and
// email baked into the claims.
func (as *authService) ParseToken(tokenString string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return as.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	return userID, email, nil
}

func (as *authService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("Failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (as *authService) UpdateUser(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*types.User, error) {
	fields := map[string]interface{}{"updated_at": time.Now()}
	if input.Username != "" {
		fields["username"] = input.Username
	}
	if input.Email != "" {
		email := strings.ToLower(strings.TrimSpace(input.Email))
		current, err := as.GetUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if email != current.Email {
			exists, err := as.userRepo.EmailExists(ctx, nil, email)
			if err != nil {
				return nil, fmt.Errorf("Failed to check email: %w", err)
			}
			if exists {
				return nil, ErrEmailTaken
			}
		}
		fields["email"] = email
	}
	if input.Phone != "" {
		fields["phone"] = input.Phone
	}
	if input.Password != "" {
		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("Failed to hash password: %w", err)
		}
		fields["password"] = hash
	}
	if err := as.userRepo.UpdateFields(ctx, nil, userID, fields); err != nil {
		return nil, fmt.Errorf("Failed to update user: %w", err)
	}
	return as.GetUser(ctx, userID)
}
