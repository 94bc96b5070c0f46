package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storeratings/internal/auth"
	"storeratings/internal/service"
)

// StoreHandler handles the store_owner endpoints. The acting store is always
// the authenticated identity; owners never see other stores' feedback.
type StoreHandler struct {
	storeService service.StoreService
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(storeService service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// Dashboard godoc
// @Summary The owner's aggregated feedback
// @Tags store
// @Produce json
// @Success 200 {object} service.OwnerDashboard
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /store/dashboard [get]
func (h *StoreHandler) Dashboard(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
	}

	dashboard, err := h.storeService.OwnerDashboard(c.Request().Context(), identity.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dashboard)
}

// Ratings godoc
// @Summary Page through the store's ratings with rater details
// @Tags store
// @Produce json
// @Param sortBy query string false "Sort field (rating or created_at)"
// @Param sortOrder query string false "ASC or DESC"
// @Param page query int false "1-based page"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /store/ratings [get]
func (h *StoreHandler) Ratings(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
	}

	params := listParams(c)
	if params.SortOrder == "" {
		params.SortOrder = "DESC"
	}

	page, err := h.storeService.OwnerRatings(c.Request().Context(), identity.ID, params)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ratings":      page.Items,
		"total_count":  page.TotalCount,
		"current_page": page.CurrentPage,
		"total_pages":  page.TotalPages,
	})
}
