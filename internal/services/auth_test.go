package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Blindworks/rhenanenmanager/apperr"
	"github.com/Blindworks/rhenanenmanager/auth"
	"github.com/Blindworks/rhenanenmanager/internal/models"
)

func seedUser(t *testing.T, conn *gorm.DB, username, password string, mutate func(*models.User)) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := models.User{
		Username:  username,
		Password:  string(hash),
		Email:     username + "@example.com",
		Activated: true,
	}
	if mutate != nil {
		mutate(&u)
	}
	if err := conn.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &u
}

func newAuthService(conn *gorm.DB) *AuthService {
	tokens := auth.NewTokenProvider("test-secret", time.Hour)
	return NewAuthService(conn, tokens, zap.NewNop())
}

func TestLoginSuccess(t *testing.T) {
	conn := setupTestDB(t)
	svc := newAuthService(conn)
	ctx := context.Background()

	role := models.Role{Name: "ROLE_USER"}
	require.NoError(t, conn.Create(&role).Error)
	seedUser(t, conn, "karl", "geheim", func(u *models.User) {
		u.RoleID = &role.ID
		u.FailedLogins = 3
	})

	resp, err := svc.Login(ctx, LoginRequest{Username: "karl", Password: "geheim"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "karl", resp.Username)
	require.Equal(t, "ROLE_USER", resp.Role)

	// token carries the user's identity
	id, err := auth.NewTokenProvider("test-secret", time.Hour).Parse(resp.Token)
	require.NoError(t, err)
	require.Equal(t, "karl", id.Username)

	var stored models.User
	require.NoError(t, conn.Where("username = ?", "karl").First(&stored).Error)
	require.Zero(t, stored.FailedLogins, "counter resets on success")
	require.NotNil(t, stored.LastLogin)
}

func TestLoginWithoutRole(t *testing.T) {
	conn := setupTestDB(t)
	svc := newAuthService(conn)

	seedUser(t, conn, "karl", "geheim", nil)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "karl", Password: "geheim"})
	require.NoError(t, err)
	require.Equal(t, "NONE", resp.Role)
}

func TestLoginBadPassword(t *testing.T) {
	conn := setupTestDB(t)
	svc := newAuthService(conn)

	seedUser(t, conn, "karl", "geheim", func(u *models.User) { u.FailedLogins = 2 })

	_, err := svc.Login(context.Background(), LoginRequest{Username: "karl", Password: "falsch"})
	require.True(t, apperr.IsAuthentication(err), "%v", err)

	// a failed attempt leaves the record untouched
	var stored models.User
	require.NoError(t, conn.Where("username = ?", "karl").First(&stored).Error)
	require.Equal(t, 2, stored.FailedLogins)
	require.Nil(t, stored.LastLogin)
}

func TestLoginUnknownUser(t *testing.T) {
	conn := setupTestDB(t)
	svc := newAuthService(conn)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "niemand", Password: "x"})
	require.True(t, apperr.IsAuthentication(err), "unknown user maps to the same client error: %v", err)
}

func TestLoginLockedAndNotActivated(t *testing.T) {
	conn := setupTestDB(t)
	svc := newAuthService(conn)
	ctx := context.Background()

	seedUser(t, conn, "locked", "geheim", func(u *models.User) { u.AccountLocked = true })
	seedUser(t, conn, "fresh", "geheim", func(u *models.User) { u.Activated = false })

	_, err := svc.Login(ctx, LoginRequest{Username: "locked", Password: "geheim"})
	require.True(t, apperr.IsAuthentication(err), "locked: %v", err)

	_, err = svc.Login(ctx, LoginRequest{Username: "fresh", Password: "geheim"})
	require.True(t, apperr.IsAuthentication(err), "not activated: %v", err)
}

func TestLoginValidation(t *testing.T) {
	conn := setupTestDB(t)
	svc := newAuthService(conn)

	_, err := svc.Login(context.Background(), LoginRequest{})
	require.True(t, apperr.IsValidation(err), "%v", err)
}
