package handlers

import (
	"time"

	"goldtrack/internal/adapters/http/middleware"
	"goldtrack/internal/core/services"
	"goldtrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LedgerHandler handles sales and collections endpoints
type LedgerHandler struct {
	saleService       *services.SaleService
	collectionService *services.CollectionService
	loc               *time.Location
}

// NewLedgerHandler creates a new ledger handler. loc interprets bare dates
// in query filters.
func NewLedgerHandler(saleService *services.SaleService, collectionService *services.CollectionService, loc *time.Location) *LedgerHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &LedgerHandler{
		saleService:       saleService,
		collectionService: collectionService,
		loc:               loc,
	}
}

// ListSales lists the caller's sales
// @Summary List my sales
// @Description Sales visible to the caller, newest first, optionally inside [from, to]
// @Tags Sales
// @Produce json
// @Security BearerAuth
// @Param from query string false "Start (unix ms, RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "End, inclusive (unix ms, RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /sales [get]
func (h *LedgerHandler) ListSales(c *fiber.Ctx) error {
	r, err := dateRange(c, h.loc)
	if err != nil {
		return fail(c, err, "")
	}

	sales, err := h.saleService.List(c.UserContext(), middleware.Identity(c), r)
	if err != nil {
		return fail(c, err, "Failed to list sales")
	}
	return response.Success(c, "Sales retrieved", fiber.Map{"sales": sales})
}

// AddSale records a sale
// @Summary Add sale
// @Description Record a sale; the total is weight × price per gram
// @Tags Sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.SaleInput true "Sale"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /sales [post]
func (h *LedgerHandler) AddSale(c *fiber.Ctx) error {
	var input services.SaleInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "")
	}

	id, err := h.saleService.Add(c.UserContext(), middleware.Identity(c), &input)
	if err != nil {
		return fail(c, err, "Failed to add sale")
	}
	return response.Created(c, "Sale recorded", fiber.Map{"id": id})
}

// WeeklySales summarizes the last seven days of sales
// @Summary Weekly sales stats
// @Tags Sales
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /sales/weekly-stats [get]
func (h *LedgerHandler) WeeklySales(c *fiber.Ctx) error {
	stats, err := h.saleService.Weekly(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return fail(c, err, "Failed to get weekly sales stats")
	}
	return response.Success(c, "Weekly sales stats retrieved", stats)
}

// ExportSales returns every visible sale without a date filter
// @Summary Export sales
// @Tags Sales
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /sales/export [get]
func (h *LedgerHandler) ExportSales(c *fiber.Ctx) error {
	sales, err := h.saleService.Export(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return fail(c, err, "Failed to export sales")
	}
	return response.Success(c, "Sales exported", fiber.Map{"sales": sales})
}

// ListCollections lists the caller's collections
// @Summary List my collections
// @Description Collections visible to the caller, newest first, optionally inside [from, to]
// @Tags Collections
// @Produce json
// @Security BearerAuth
// @Param from query string false "Start (unix ms, RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "End, inclusive (unix ms, RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /collections [get]
func (h *LedgerHandler) ListCollections(c *fiber.Ctx) error {
	r, err := dateRange(c, h.loc)
	if err != nil {
		return fail(c, err, "")
	}

	collections, err := h.collectionService.List(c.UserContext(), middleware.Identity(c), r)
	if err != nil {
		return fail(c, err, "Failed to list collections")
	}
	return response.Success(c, "Collections retrieved", fiber.Map{"collections": collections})
}

// AddCollection records a gold or cash collection
// @Summary Add collection
// @Description Amount is grams for gold and currency for cash; payment_method only applies to cash
// @Tags Collections
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CollectionInput true "Collection"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /collections [post]
func (h *LedgerHandler) AddCollection(c *fiber.Ctx) error {
	var input services.CollectionInput
	if err := parseBody(c, &input); err != nil {
		return fail(c, err, "")
	}

	id, err := h.collectionService.Add(c.UserContext(), middleware.Identity(c), &input)
	if err != nil {
		return fail(c, err, "Failed to add collection")
	}
	return response.Created(c, "Collection recorded", fiber.Map{"id": id})
}

// WeeklyCollections summarizes the last seven days of collections
// @Summary Weekly collections stats
// @Tags Collections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /collections/weekly-stats [get]
func (h *LedgerHandler) WeeklyCollections(c *fiber.Ctx) error {
	stats, err := h.collectionService.Weekly(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return fail(c, err, "Failed to get weekly collections stats")
	}
	return response.Success(c, "Weekly collections stats retrieved", stats)
}

// ExportCollections returns every visible collection without a date filter
// @Summary Export collections
// @Tags Collections
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /collections/export [get]
func (h *LedgerHandler) ExportCollections(c *fiber.Ctx) error {
	collections, err := h.collectionService.Export(c.UserContext(), middleware.Identity(c))
	if err != nil {
		return fail(c, err, "Failed to export collections")
	}
	return response.Success(c, "Collections exported", fiber.Map{"collections": collections})
}
