package db

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Blindworks/rhenanenmanager/internal/models"
)

// Role names known to the frontend.
const (
	RoleAdmin     = "ROLE_ADMIN"
	RoleUser      = "ROLE_USER"
	RoleModerator = "ROLE_MODERATOR"
)

var basePermissions = []models.Permission{
	{Name: "connection:read", Description: "Read member connections"},
	{Name: "connection:write", Description: "Create and update member connections"},
	{Name: "article:read", Description: "Read journal articles"},
	{Name: "article:write", Description: "Create and update journal articles"},
	{Name: "profile:read", Description: "Read member profiles"},
	{Name: "profile:write", Description: "Create and update member profiles"},
}

// Seed creates default roles, permissions and test users if they don't exist.
// Intended for development databases only (DB_SEED=1).
func Seed(conn *gorm.DB, log *zap.Logger) error {
	perms := make(map[string]models.Permission, len(basePermissions))
	for _, p := range basePermissions {
		var existing models.Permission
		err := conn.Where("name = ?", p.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := conn.Create(&p).Error; err != nil {
				return err
			}
			existing = p
		} else if err != nil {
			return err
		}
		perms[existing.Name] = existing
	}

	adminRole, err := ensureRole(conn, log, RoleAdmin, "Administrator with full access",
		[]models.Permission{{Name: "*:*", Description: "All permissions"}})
	if err != nil {
		return err
	}
	userRole, err := ensureRole(conn, log, RoleUser, "Regular member with basic access",
		[]models.Permission{perms["connection:read"], perms["connection:write"], perms["article:read"], perms["profile:read"]})
	if err != nil {
		return err
	}
	if _, err := ensureRole(conn, log, RoleModerator, "Moderator with content management access",
		[]models.Permission{perms["connection:read"], perms["connection:write"], perms["article:read"], perms["article:write"], perms["profile:read"], perms["profile:write"]}); err != nil {
		return err
	}

	if err := ensureUser(conn, log, models.User{
		Username:  "admin",
		Email:     "admin@rhenanenmanager.de",
		Firstname: "Max",
		Lastname:  "Mustermann",
		Activated: true,
		RoleID:    &adminRole.ID,
	}, "password"); err != nil {
		return err
	}
	return ensureUser(conn, log, models.User{
		Username:  "member",
		Email:     "member@rhenanenmanager.de",
		Firstname: "Hans",
		Lastname:  "Schmidt",
		Activated: true,
		RoleID:    &userRole.ID,
	}, "password")
}

func ensureRole(conn *gorm.DB, log *zap.Logger, name, description string, perms []models.Permission) (*models.Role, error) {
	var role models.Role
	err := conn.Where("name = ?", name).First(&role).Error
	if err == nil {
		return &role, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	role = models.Role{Name: name, Description: description, Permissions: perms}
	if err := conn.Create(&role).Error; err != nil {
		return nil, err
	}
	log.Info("created role", zap.String("name", name))
	return &role, nil
}

func ensureUser(conn *gorm.DB, log *zap.Logger, user models.User, password string) error {
	var count int64
	if err := conn.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if err := conn.Create(&user).Error; err != nil {
		return err
	}
	log.Info("created test user", zap.String("username", user.Username))
	return nil
}
