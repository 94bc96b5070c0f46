package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storeratings/internal/auth"
	"storeratings/internal/config"
	apperrors "storeratings/internal/errors"
	"storeratings/internal/handler"
	"storeratings/internal/model"
)

// Register wires routes and middleware. Routes group by audience: /auth is
// public (change-password excepted), /admin, /user and /store each carry an
// explicit allowed-role set. There is no role hierarchy.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	gate *auth.Gate,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	userHandler *handler.UserHandler,
	storeHandler *handler.StoreHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// Missing token is 401, anything failing verification is 403.
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "access token required",
					Code:  "TOKEN_REQUIRED",
				})
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "invalid token",
				Code:  "INVALID_TOKEN",
			})
		},
	})

	// Any authenticated identity may change its own password.
	authed := api.Group("", jwtMiddleware, gate.Authenticate)
	authed.PUT("/auth/change-password", authHandler.ChangePassword)

	admin := api.Group("/admin", jwtMiddleware, gate.Authenticate, gate.RequireRoles(model.RoleSystemAdmin))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.POST("/stores", adminHandler.CreateStore)
	admin.GET("/stores", adminHandler.ListStores)
	admin.GET("/stores/:id", adminHandler.GetStore)

	user := api.Group("/user", jwtMiddleware, gate.Authenticate, gate.RequireRoles(model.RoleNormalUser))
	user.GET("/stores", userHandler.ListStores)
	user.POST("/ratings", userHandler.SubmitRating)
	user.PUT("/ratings/:storeId", userHandler.UpdateRating)
	user.GET("/my-ratings", userHandler.MyRatings)

	store := api.Group("/store", jwtMiddleware, gate.Authenticate, gate.RequireRoles(model.RoleStoreOwner))
	store.GET("/dashboard", storeHandler.Dashboard)
	store.GET("/ratings", storeHandler.Ratings)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
