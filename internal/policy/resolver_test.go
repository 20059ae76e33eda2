package policy

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Blindworks/rhenanenmanager/internal/models"
)

func openPolicyDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Permission{}, &models.Role{}, &models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestResolveRoleAndPermissions(t *testing.T) {
	conn := openPolicyDB(t)
	role := models.Role{
		Name: "ROLE_USER",
		Permissions: []models.Permission{
			{Name: "connection:read"},
			{Name: "connection:write"},
		},
	}
	require.NoError(t, conn.Create(&role).Error)
	user := models.User{Username: "karl", Password: "x", Email: "k@example.com", RoleID: &role.ID}
	require.NoError(t, conn.Create(&user).Error)

	set, err := NewDBAuthorityResolver(conn).Resolve(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, set, 3)
	require.True(t, set.Has("ROLE_USER"))
	require.True(t, set.Has("connection:write"))
	require.False(t, set.Has("article:write"))
}

func TestResolveWithoutRole(t *testing.T) {
	conn := openPolicyDB(t)
	user := models.User{Username: "karl", Password: "x", Email: "k@example.com"}
	require.NoError(t, conn.Create(&user).Error)

	resolver := NewDBAuthorityResolver(conn)

	set, err := resolver.Resolve(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, set)

	// unknown user resolves to an empty set rather than an error
	set, err = resolver.Resolve(context.Background(), 9999)
	require.NoError(t, err)
	require.Empty(t, set)
}
