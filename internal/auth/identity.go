package auth

import (
	"errors"

	"storeratings/internal/model"
)

// Identity is the verified caller of a request, resolved from token claims.
// It is a discriminated type: a user identity carries its stored role, a
// store identity always acts as store_owner. Authorization code never
// special-cases stores by the absence of a role field.
type Identity struct {
	Type  string
	ID    uint
	Email string
	role  string // users only
}

// NewIdentity builds an Identity from verified claims.
func NewIdentity(claims *Claims) (Identity, error) {
	switch claims.Type {
	case TypeUser:
		if claims.Role != model.RoleSystemAdmin && claims.Role != model.RoleNormalUser {
			return Identity{}, errors.New("unknown role in claims")
		}
		return Identity{Type: TypeUser, ID: claims.ID, Email: claims.Email, role: claims.Role}, nil
	case TypeStore:
		return Identity{Type: TypeStore, ID: claims.ID, Email: claims.Email}, nil
	default:
		return Identity{}, errors.New("unknown identity type")
	}
}

// EffectiveRole resolves the role used for authorization decisions.
func (i Identity) EffectiveRole() string {
	if i.Type == TypeStore {
		return model.RoleStoreOwner
	}
	return i.role
}

// Allowed reports whether the identity's effective role is in the explicit
// allowed set. There is no hierarchy: system_admin is not implicitly granted
// normal_user or store_owner operations.
func (i Identity) Allowed(roles ...string) bool {
	effective := i.EffectiveRole()
	for _, r := range roles {
		if r == effective {
			return true
		}
	}
	return false
}
