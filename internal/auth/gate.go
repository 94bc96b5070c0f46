package auth

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"storeratings/internal/model"
)

// identityContextKey is where the resolved Identity lives on the echo context.
const identityContextKey = "identity"

// UserFinder loads a user by primary key.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// StoreFinder loads a store by primary key.
type StoreFinder interface {
	FindByID(ctx context.Context, id uint) (*model.Store, error)
}

// Gate resolves verified token claims into an Identity and enforces
// per-operation allowed-role sets. It runs after the JWT middleware has
// checked the signature and expiry.
type Gate struct {
	users   UserFinder
	stores  StoreFinder
	revoker *Revoker
}

// NewGate creates an authorization gate.
func NewGate(users UserFinder, stores StoreFinder, revoker *Revoker) *Gate {
	return &Gate{users: users, stores: stores, revoker: revoker}
}

// Authenticate turns the parsed token into an Identity, rejecting tokens
// whose subject no longer exists or was revoked by a password change. The
// role is re-read from the database so demotions take effect immediately.
func (g *Gate) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusForbidden, "invalid token")
		}

		ctx := c.Request().Context()
		if g.revoker != nil && g.revoker.IsRevoked(ctx, claims) {
			return echo.NewHTTPError(http.StatusForbidden, "invalid token")
		}

		var identity Identity
		switch claims.Type {
		case TypeUser:
			user, err := g.users.FindByID(ctx, claims.ID)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}
			identity = Identity{Type: TypeUser, ID: user.ID, Email: user.Email, role: user.Role}
		case TypeStore:
			store, err := g.stores.FindByID(ctx, claims.ID)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "invalid token")
			}
			identity = Identity{Type: TypeStore, ID: store.ID, Email: store.Email}
		default:
			return echo.NewHTTPError(http.StatusForbidden, "invalid token type")
		}

		c.Set(identityContextKey, identity)
		return next(c)
	}
}

// RequireRoles grants access iff the effective role is in the explicit set.
func (g *Gate) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
			}
			if !identity.Allowed(roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the Identity resolved by Authenticate, if any.
func IdentityFrom(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityContextKey).(Identity)
	return identity, ok
}
