package db

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Blindworks/rhenanenmanager/internal/models"
)

func openSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestSeedCreatesRolesAndUsers(t *testing.T) {
	conn := openSeedDB(t)
	require.NoError(t, Seed(conn, zap.NewNop()))

	var roles []models.Role
	require.NoError(t, conn.Preload("Permissions").Order("name").Find(&roles).Error)
	require.Len(t, roles, 3)
	require.Equal(t, RoleAdmin, roles[0].Name)

	require.Len(t, roles[0].Permissions, 1)
	require.Equal(t, "*:*", roles[0].Permissions[0].Name)
	require.NotEmpty(t, roles[1].Permissions, "moderator carries content permissions")

	var admin models.User
	require.NoError(t, conn.Where("username = ?", "admin").First(&admin).Error)
	require.True(t, admin.Activated)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("password")))
}

func TestSeedIsIdempotent(t *testing.T) {
	conn := openSeedDB(t)
	require.NoError(t, Seed(conn, zap.NewNop()))
	require.NoError(t, Seed(conn, zap.NewNop()))

	var userCount, roleCount int64
	require.NoError(t, conn.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, conn.Model(&models.Role{}).Count(&roleCount).Error)
	require.EqualValues(t, 2, userCount)
	require.EqualValues(t, 3, roleCount)
}
