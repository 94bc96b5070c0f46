package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storeratings/internal/service"
)

// AdminHandler handles the system_admin endpoints.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// CreateUserRequest represents an admin user-creation request.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// CreateStoreRequest represents an admin store-creation request.
type CreateStoreRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Address  string `json:"address" validate:"required"`
}

// Dashboard godoc
// @Summary Platform-wide counts
// @Tags admin
// @Produce json
// @Success 200 {object} service.DashboardStats
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.adminService.Dashboard(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// CreateUser godoc
// @Summary Create a user with a chosen role
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.adminService.CreateUser(c.Request().Context(), req.Name, req.Email, req.Password, req.Address, req.Role)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user created successfully",
		"user":    user,
	})
}

// CreateStore godoc
// @Summary Create a store with its login identity
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateStoreRequest true "Store data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/stores [post]
func (h *AdminHandler) CreateStore(c echo.Context) error {
	var req CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store, err := h.adminService.CreateStore(c.Request().Context(), req.Name, req.Email, req.Password, req.Address)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "store created successfully",
		"store":   store,
	})
}

// ListUsers godoc
// @Summary List users with search, sort and pagination
// @Tags admin
// @Produce json
// @Param search query string false "Substring over name/email/address/role"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "ASC or DESC"
// @Param page query int false "1-based page"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, err := h.adminService.ListUsers(c.Request().Context(), listParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users":        page.Items,
		"total_count":  page.TotalCount,
		"current_page": page.CurrentPage,
		"total_pages":  page.TotalPages,
	})
}

// ListStores godoc
// @Summary List stores with search, sort and pagination
// @Tags admin
// @Produce json
// @Param search query string false "Substring over name/email/address"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "ASC or DESC"
// @Param page query int false "1-based page"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/stores [get]
func (h *AdminHandler) ListStores(c echo.Context) error {
	page, err := h.adminService.ListStores(c.Request().Context(), listParams(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stores":       page.Items,
		"total_count":  page.TotalCount,
		"current_page": page.CurrentPage,
		"total_pages":  page.TotalPages,
	})
}

// GetUser godoc
// @Summary Get a user by id
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.adminService.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetStore godoc
// @Summary Get a store by id
// @Tags admin
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} model.Store
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/stores/{id} [get]
func (h *AdminHandler) GetStore(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	store, err := h.adminService.GetStore(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, store)
}
