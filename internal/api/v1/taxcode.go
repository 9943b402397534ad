package v1

import (
	"net/http"

	"github.com/flexprice/taxengine/internal/api/dto"
	"github.com/flexprice/taxengine/internal/logger"
	"github.com/flexprice/taxengine/internal/service"
	"github.com/gin-gonic/gin"
)

type TaxCodeHandler struct {
	service service.InvoiceTaxCodeService
	logger  *logger.Logger
}

func NewTaxCodeHandler(
	service service.InvoiceTaxCodeService,
	logger *logger.Logger,
) *TaxCodeHandler {
	return &TaxCodeHandler{
		service: service,
		logger:  logger,
	}
}

// ListInvoiceTaxCodes returns the tax codes of every tagged item of an
// invoice.
func (h *TaxCodeHandler) ListInvoiceTaxCodes(c *gin.Context) {
	invoiceID := c.Param("id")

	resp, err := h.service.ListInvoiceTaxCodes(c.Request.Context(), invoiceID)
	if err != nil {
		AbortWithError(c, "Failed to list invoice tax codes", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetInvoiceItemTaxCodes returns the tax codes of one invoice item,
// 404 when the item carries none.
func (h *TaxCodeHandler) GetInvoiceItemTaxCodes(c *gin.Context) {
	itemID := c.Param("id")

	resp, err := h.service.GetInvoiceItemTaxCodes(c.Request.Context(), itemID)
	if err != nil {
		AbortWithError(c, "Failed to get invoice item tax codes", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetInvoiceItemTaxCodes replaces the tax codes of one invoice item.
func (h *TaxCodeHandler) SetInvoiceItemTaxCodes(c *gin.Context) {
	itemID := c.Param("id")

	var req dto.SetTaxCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		NewErrorResponse(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	resp, err := h.service.SetInvoiceItemTaxCodes(c.Request.Context(), itemID, req)
	if err != nil {
		AbortWithError(c, "Failed to save invoice item tax codes", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
