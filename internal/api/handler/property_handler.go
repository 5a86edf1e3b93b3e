package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alquileresmvp/rental-system/internal/api/metrics"
	"github.com/alquileresmvp/rental-system/internal/core/domain"
	"github.com/alquileresmvp/rental-system/internal/core/ports"
	"github.com/alquileresmvp/rental-system/internal/infrastructure/cache"
)

// PropertyHandler handles HTTP requests for listing operations.
type PropertyHandler struct {
	service ports.PropertyService
	cache   *cache.ListingCache
}

func NewPropertyHandler(service ports.PropertyService, listingCache *cache.ListingCache) *PropertyHandler {
	return &PropertyHandler{service: service, cache: listingCache}
}

// List handles GET /v1/listings — the public listing feed.
//
// @Summary      List active properties
// @Tags         properties
// @Produce      json
// @Success      200  {array}  propertyResponse
// @Router       /v1/listings [get]
func (h *PropertyHandler) List(c echo.Context) error {
	if cached, ok := h.cache.Feed(); ok {
		return c.JSON(http.StatusOK, toPropertyResponses(cached))
	}

	properties, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	h.cache.SetFeed(properties)
	return c.JSON(http.StatusOK, toPropertyResponses(properties))
}

// GetBySlug handles GET /v1/listings/:slug.
//
// @Summary      Get a property by slug
// @Tags         properties
// @Produce      json
// @Param        slug  path      string  true  "Property slug"
// @Success      200   {object}  propertyResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/listings/{slug} [get]
func (h *PropertyHandler) GetBySlug(c echo.Context) error {
	slug := c.Param("slug")

	if cached, ok := h.cache.BySlug(slug); ok {
		return c.JSON(http.StatusOK, toPropertyResponse(cached))
	}

	property, err := h.service.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		return err
	}
	h.cache.SetBySlug(property)
	return c.JSON(http.StatusOK, toPropertyResponse(property))
}

// ListMine handles GET /v1/host/properties.
func (h *PropertyHandler) ListMine(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	properties, err := h.service.ListMine(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPropertyResponses(properties))
}

// Create handles POST /v1/properties.
//
// @Summary      Create a property listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      propertyPayload  true  "Listing details"
// @Success      201   {object}  propertyResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req propertyPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	property, err := h.service.Create(c.Request().Context(), actor, toCreateInput(req))
	if err != nil {
		return err
	}

	metrics.PropertiesCreatedTotal.Inc()
	h.cache.Invalidate()
	return c.JSON(http.StatusCreated, toPropertyResponse(property))
}

// Update handles PUT /v1/properties/:id. Only the owner passes the guard.
//
// @Summary      Update a property listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Property id"
// @Param        body  body      updatePropertyRequest  true  "Listing details"
// @Success      200   {object}  propertyResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := toUpdateInput(req)
	input.PropertyID = c.Param("id")

	property, err := h.service.Update(c.Request().Context(), actor, input)
	if err != nil {
		return err
	}

	h.cache.Invalidate(property.Slug)
	return c.JSON(http.StatusOK, toPropertyResponse(property))
}

// Delete handles DELETE /v1/properties/:id. Refused while active bookings
// exist.
//
// @Summary      Delete a property listing
// @Tags         properties
// @Security     BearerAuth
// @Param        id  path  string  true  "Property id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	h.cache.Invalidate()
	return c.NoContent(http.StatusNoContent)
}

// AddBlock handles POST /v1/properties/:id/blocks.
func (h *PropertyHandler) AddBlock(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createBlockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	from, err := parseDate(req.From)
	if err != nil {
		return err
	}
	to, err := parseDate(req.To)
	if err != nil {
		return err
	}

	block, err := h.service.AddBlockedRange(c.Request().Context(), actor, ports.CreateBlockedRangeInput{
		PropertyID: c.Param("id"),
		From:       from,
		To:         to,
		Note:       req.Note,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, blockedRangeResponse{
		ID:   block.ID,
		From: block.Range.From,
		To:   block.Range.To,
		Note: block.Note,
	})
}

// RemoveBlock handles DELETE /v1/properties/:id/blocks/:block_id.
func (h *PropertyHandler) RemoveBlock(c echo.Context) error {
	actor, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.RemoveBlockedRange(c.Request().Context(), actor, c.Param("id"), c.Param("block_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- mapping helpers ---

func toCreateInput(req propertyPayload) ports.CreatePropertyInput {
	return ports.CreatePropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Province:    req.Province,
		ZipCode:     req.ZipCode,
		Price:       req.Price,
		MaxGuests:   req.MaxGuests,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Images:      req.Images,
		Amenities:   req.Amenities,
		WhatsApp:    req.WhatsApp,
	}
}

func toUpdateInput(req updatePropertyRequest) ports.UpdatePropertyInput {
	return ports.UpdatePropertyInput{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Province:    req.Province,
		ZipCode:     req.ZipCode,
		Price:       req.Price,
		MaxGuests:   req.MaxGuests,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Images:      req.Images,
		Amenities:   req.Amenities,
		WhatsApp:    req.WhatsApp,
		ReSlug:      req.ReSlug,
	}
}

func toPropertyResponse(p *domain.Property) propertyResponse {
	return propertyResponse{
		ID:            p.ID,
		Slug:          p.Slug,
		Title:         p.Title,
		Description:   p.Description,
		Address:       p.Address,
		City:          p.City,
		Province:      p.Province,
		ZipCode:       p.ZipCode,
		PricePerNight: p.PricePerNight,
		MaxGuests:     p.MaxGuests,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		Images:        p.Images,
		Amenities:     p.Amenities,
		WhatsApp:      p.WhatsApp,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
	}
}

func toPropertyResponses(properties []*domain.Property) []propertyResponse {
	out := make([]propertyResponse, 0, len(properties))
	for _, p := range properties {
		out = append(out, toPropertyResponse(p))
	}
	return out
}
