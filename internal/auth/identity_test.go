package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storeratings/internal/model"
)

func TestNewIdentity(t *testing.T) {
	tests := []struct {
		name     string
		claims   *Claims
		wantRole string
		wantErr  bool
	}{
		{
			name:     "admin user",
			claims:   &Claims{ID: 1, Email: "a@b.co", Role: model.RoleSystemAdmin, Type: TypeUser},
			wantRole: model.RoleSystemAdmin,
		},
		{
			name:     "normal user",
			claims:   &Claims{ID: 2, Email: "u@b.co", Role: model.RoleNormalUser, Type: TypeUser},
			wantRole: model.RoleNormalUser,
		},
		{
			name:     "store acts as store_owner",
			claims:   &Claims{ID: 3, Email: "s@b.co", Type: TypeStore},
			wantRole: model.RoleStoreOwner,
		},
		{
			name:    "user with unknown role",
			claims:  &Claims{ID: 4, Email: "x@b.co", Role: "superuser", Type: TypeUser},
			wantErr: true,
		},
		{
			name:    "unknown identity type",
			claims:  &Claims{ID: 5, Email: "y@b.co", Type: "robot"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := NewIdentity(tt.claims)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, identity.EffectiveRole())
		})
	}
}

func TestIdentityAllowed(t *testing.T) {
	admin := Identity{Type: TypeUser, ID: 1, role: model.RoleSystemAdmin}
	normal := Identity{Type: TypeUser, ID: 2, role: model.RoleNormalUser}
	store := Identity{Type: TypeStore, ID: 3}

	// A store identity is denied on admin and user operations regardless of
	// claim contents; there is no role hierarchy.
	assert.False(t, store.Allowed(model.RoleSystemAdmin))
	assert.False(t, store.Allowed(model.RoleNormalUser))
	assert.True(t, store.Allowed(model.RoleStoreOwner))

	assert.False(t, normal.Allowed(model.RoleSystemAdmin))
	assert.True(t, normal.Allowed(model.RoleNormalUser))

	assert.True(t, admin.Allowed(model.RoleSystemAdmin))
	assert.False(t, admin.Allowed(model.RoleNormalUser))
	assert.False(t, admin.Allowed(model.RoleStoreOwner))

	// Multi-role sets grant on any match.
	assert.True(t, normal.Allowed(model.RoleSystemAdmin, model.RoleNormalUser))
	assert.False(t, store.Allowed())
}
