// Package policy wires the gate's authority resolution to the user store.
package policy

import (
	"context"

	"github.com/Blindworks/rhenanenmanager/gate"
	"github.com/Blindworks/rhenanenmanager/internal/models"
	"gorm.io/gorm"
)

// DBAuthorityResolver derives a user's authority set from the database:
// the role name plus every permission string of the role.
type DBAuthorityResolver struct {
	DB *gorm.DB
}

func NewDBAuthorityResolver(db *gorm.DB) *DBAuthorityResolver {
	return &DBAuthorityResolver{DB: db}
}

// Resolve looks up the user's role, preloading permissions. A user without a
// role resolves to an empty set (no access beyond open routes).
func (r *DBAuthorityResolver) Resolve(ctx context.Context, userID uint) (gate.Set, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Preload("Role.Permissions").First(&user, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if user.Role == nil {
		return nil, nil
	}
	set := make(gate.Set, 0, len(user.Role.Permissions)+1)
	set = append(set, gate.Authority(user.Role.Name))
	for _, p := range user.Role.Permissions {
		set = append(set, gate.Authority(p.Name))
	}
	return set, nil
}
