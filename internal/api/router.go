package api

import (
	v1 "github.com/flexprice/taxengine/internal/api/v1"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Health  *v1.HealthHandler
	TaxCode *v1.TaxCodeHandler
}

func NewHandlers(
	health *v1.HealthHandler,
	taxCode *v1.TaxCodeHandler,
) Handlers {
	return Handlers{
		Health:  health,
		TaxCode: taxCode,
	}
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.Default()

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Tax code routes
	invoices := router.Group("/invoices")
	{
		invoices.GET("/:id/taxcodes", handlers.TaxCode.ListInvoiceTaxCodes)
	}

	invoiceItems := router.Group("/invoiceitems")
	{
		invoiceItems.GET("/:id/taxcodes", handlers.TaxCode.GetInvoiceItemTaxCodes)
		invoiceItems.PUT("/:id/taxcodes", handlers.TaxCode.SetInvoiceItemTaxCodes)
	}
}
