package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// salesHandler handles point-of-sale checkouts.
type salesHandler struct {
	salesService portssvc.SalesSvcFacade
}

func newSalesHandler(ss portssvc.SalesSvcFacade) *salesHandler {
	return &salesHandler{salesService: ss}
}

func registerSalesRoutes(rg *gin.RouterGroup, salesService portssvc.SalesSvcFacade) {
	h := newSalesHandler(salesService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.createSale)
		sales.GET("", h.listSales)
		sales.GET("/:saleID", h.getSale)
	}
}

// createSale godoc
// @Summary Process a sale
// @Description Decrements stock, records the sale and posts the revenue and cost of goods sold entries in one unit of work
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale details"
// @Success 201 {object} domain.SaleResult
// @Failure 400 {object} map[string]string "Invalid sale, inconsistent totals or insufficient stock"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Persistence unavailable"
// @Failure 500 {object} map[string]string "Failed to process sale"
// @Security BearerAuth
// @Router /sales [post]
func (h *salesHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSaleRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger.Info("Received sale", slog.Int("item_count", len(req.Items)), slog.String("total", req.Total.String()))
	result, err := h.salesService.ProcessSale(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to process sale")
		return
	}

	logger.Info("Sale processed", slog.String("sale_id", result.Sale.SaleID))
	c.JSON(http.StatusCreated, result)
}

// listSales godoc
// @Summary List sales
// @Tags sales
// @Produce  json
// @Param   from query string false "Start date (YYYY-MM-DD)"
// @Param   to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} domain.Sale
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list sales"
// @Security BearerAuth
// @Router /sales [get]
func (h *salesHandler) listSales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListSalesParams
	if !bindQuery(c, logger, &params) {
		return
	}
	filter, err := parsePeriod(params.From, params.To)
	if err != nil {
		respondError(c, logger, err, "Failed to list sales")
		return
	}

	sales, err := h.salesService.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, logger, err, "Failed to list sales")
		return
	}
	c.JSON(http.StatusOK, sales)
}

// getSale godoc
// @Summary Get a sale
// @Tags sales
// @Produce  json
// @Param   saleID path string true "Sale ID"
// @Success 200 {object} domain.Sale
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Sale not found"
// @Failure 500 {object} map[string]string "Failed to retrieve sale"
// @Security BearerAuth
// @Router /sales/{saleID} [get]
func (h *salesHandler) getSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("sale_id", c.Param("saleID")))

	sale, err := h.salesService.GetSale(c.Request.Context(), c.Param("saleID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve sale")
		return
	}
	c.JSON(http.StatusOK, sale)
}
