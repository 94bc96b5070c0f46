package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"storeratings/internal/cache"
)

const revocationKeyPrefix = "pwd_changed:"

// Revoker invalidates outstanding tokens after a password change by recording
// the change time per identity. Tokens issued before that instant are
// rejected. Marks live in redis for the token lifetime; the store fails safe,
// so a redis outage degrades to "no revocations" rather than locking
// everyone out.
type Revoker struct {
	cache *cache.Client
}

// NewRevoker creates a revocation store backed by the shared cache client.
func NewRevoker(cache *cache.Client) *Revoker {
	return &Revoker{cache: cache}
}

func revocationKey(identityType string, id uint) string {
	return fmt.Sprintf("%s%s:%d", revocationKeyPrefix, identityType, id)
}

// MarkPasswordChanged records the password change instant for an identity.
func (r *Revoker) MarkPasswordChanged(ctx context.Context, identityType string, id uint) error {
	value := []byte(strconv.FormatInt(time.Now().Unix(), 10))
	return r.cache.Set(ctx, revocationKey(identityType, id), value, TokenExpiry)
}

// IsRevoked reports whether the token behind claims was issued before the
// identity's last recorded password change.
func (r *Revoker) IsRevoked(ctx context.Context, claims *Claims) bool {
	data, err := r.cache.Get(ctx, revocationKey(claims.Type, claims.ID))
	if err != nil || data == nil {
		return false
	}
	changedAt, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return false
	}
	if claims.IssuedAt == nil {
		return true
	}
	return claims.IssuedAt.Unix() < changedAt
}
