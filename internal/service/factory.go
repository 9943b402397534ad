package service

import (
	"github.com/flexprice/taxengine/internal/config"
	"github.com/flexprice/taxengine/internal/domain/account"
	"github.com/flexprice/taxengine/internal/domain/catalog"
	"github.com/flexprice/taxengine/internal/domain/invoice"
	"github.com/flexprice/taxengine/internal/domain/tag"
	"github.com/flexprice/taxengine/internal/logger"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	AccountRepo account.Repository
	InvoiceRepo invoice.Repository
	TagRepo     tag.Repository
	CatalogRepo catalog.Repository
}

// NewServiceParams assembles the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	accountRepo account.Repository,
	invoiceRepo invoice.Repository,
	tagRepo tag.Repository,
	catalogRepo catalog.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:      logger,
		Config:      config,
		AccountRepo: accountRepo,
		InvoiceRepo: invoiceRepo,
		TagRepo:     tagRepo,
		CatalogRepo: catalogRepo,
	}
}
