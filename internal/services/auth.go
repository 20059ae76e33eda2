package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Blindworks/rhenanenmanager/apperr"
	"github.com/Blindworks/rhenanenmanager/auth"
	"github.com/Blindworks/rhenanenmanager/internal/models"
	"github.com/Blindworks/rhenanenmanager/validation"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AuthService verifies credentials, issues bearer tokens and keeps the login
// bookkeeping on the user record.
type AuthService struct {
	db     *gorm.DB
	tokens *auth.TokenProvider
	log    *zap.Logger
}

func NewAuthService(db *gorm.DB, tokens *auth.TokenProvider, log *zap.Logger) *AuthService {
	return &AuthService{db: db, tokens: tokens, log: log}
}

// Login authenticates the username/password pair. Bad credentials and
// unknown usernames yield the same client-visible error and leave the user
// record untouched; locked or non-activated accounts are rejected likewise.
// On success the failed-login counter resets, last login is stamped and a
// signed time-bounded token is returned with the user's role name.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	v := validation.Violations{}
	validation.Required("username", req.Username, v)
	validation.Required("password", req.Password, v)
	if !v.Empty() {
		return nil, apperr.ValidationDetails("validation_failed", v)
	}

	var user models.User
	err := s.db.WithContext(ctx).Preload("Role").Where("username = ?", req.Username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Authentication("invalid username or password")
		}
		return nil, apperr.Internal(err, "failed to look up user")
	}

	if user.AccountLocked {
		s.log.Warn("login attempt on locked account", zap.String("username", req.Username))
		return nil, apperr.Authentication("account is locked")
	}
	if !user.Activated {
		s.log.Warn("login attempt on non-activated account", zap.String("username", req.Username))
		return nil, apperr.Authentication("account is not activated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Authentication("invalid username or password")
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, apperr.Internal(err, "failed to issue token")
	}

	now := time.Now()
	user.FailedLogins = 0
	user.LastLogin = &now
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, apperr.Internal(err, "failed to update login bookkeeping")
	}

	roleName := "NONE"
	if user.Role != nil {
		roleName = user.Role.Name
	}

	s.log.Info("user logged in", zap.String("username", user.Username))

	return &AuthResponse{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		Role:     roleName,
	}, nil
}
