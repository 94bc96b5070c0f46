package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"storeratings/internal/auth"
	"storeratings/internal/service"
)

// UserHandler handles the normal_user endpoints: browsing stores and
// submitting ratings.
type UserHandler struct {
	storeService  service.StoreService
	ratingService service.RatingService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(storeService service.StoreService, ratingService service.RatingService) *UserHandler {
	return &UserHandler{storeService: storeService, ratingService: ratingService}
}

// SubmitRatingRequest represents a rating submission. Rating is loosely typed
// because clients send both numbers and numeric strings.
type SubmitRatingRequest struct {
	StoreID uint        `json:"store_id" validate:"required"`
	Rating  interface{} `json:"rating" validate:"required"`
}

// UpdateRatingRequest represents an update of an existing rating.
type UpdateRatingRequest struct {
	Rating interface{} `json:"rating" validate:"required"`
}

// ListStores godoc
// @Summary Browse stores with the caller's own rating joined
// @Tags user
// @Produce json
// @Param search query string false "Substring over name/address"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "ASC or DESC"
// @Param page query int false "1-based page"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /user/stores [get]
func (h *UserHandler) ListStores(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
	}

	page, err := h.storeService.BrowseStores(c.Request().Context(), identity.ID, listParams(c))
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

// SubmitRating godoc
// @Summary Submit or update a rating for a store
// @Tags user
// @Accept json
// @Produce json
// @Param request body SubmitRatingRequest true "Store and rating value"
// @Success 200 {object} map[string]string
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/ratings [post]
func (h *UserHandler) SubmitRating(c echo.Context) error {
	var req SubmitRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
	}

	result, err := h.ratingService.SubmitRating(c.Request().Context(), identity.ID, req.StoreID, ratingValue(req.Rating))
	if err != nil {
		return respondError(c, err)
	}

	if result.Created {
		return c.JSON(http.StatusCreated, map[string]string{
			"message": "rating submitted successfully",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "rating updated successfully",
	})
}

// UpdateRating godoc
// @Summary Update an existing rating for a store
// @Tags user
// @Accept json
// @Produce json
// @Param storeId path int true "Store ID"
// @Param request body UpdateRatingRequest true "New rating value"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /user/ratings/{storeId} [put]
func (h *UserHandler) UpdateRating(c echo.Context) error {
	storeID, err := pathID(c, "storeId")
	if err != nil {
		return err
	}

	var req UpdateRatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
	}

	if err := h.ratingService.UpdateRating(c.Request().Context(), identity.ID, storeID, ratingValue(req.Rating)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "rating updated successfully",
	})
}

// MyRatings godoc
// @Summary List the caller's ratings with the rated stores
// @Tags user
// @Produce json
// @Success 200 {array} repository.OwnRating
// @Security BearerAuth
// @Router /user/my-ratings [get]
func (h *UserHandler) MyRatings(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "access token required")
	}

	ratings, err := h.ratingService.MyRatings(c.Request().Context(), identity.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ratings)
}

// ratingValue renders the loosely-typed rating payload for the validator,
// which accepts integers and numeric strings alike.
func ratingValue(v interface{}) string {
	switch n := v.(type) {
	case float64:
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%v", n)
	case string:
		return n
	default:
		return fmt.Sprintf("%v", v)
	}
}
