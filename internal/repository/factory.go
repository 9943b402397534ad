package repository

import (
	"github.com/flexprice/taxengine/internal/domain/account"
	"github.com/flexprice/taxengine/internal/domain/invoice"
	"github.com/flexprice/taxengine/internal/domain/tag"
	"github.com/flexprice/taxengine/internal/repository/inmemory"
)

// The standalone server runs on the in-memory stores. Production
// deployments provide their own repository implementations.

func NewInMemoryInvoiceRepository() *inmemory.InvoiceRepository {
	return inmemory.NewInvoiceRepository()
}

func NewAccountRepository() account.Repository {
	return inmemory.NewAccountRepository()
}

func NewInvoiceRepository(invoices *inmemory.InvoiceRepository) invoice.Repository {
	return invoices
}

func NewTagRepository(invoices *inmemory.InvoiceRepository) tag.Repository {
	return inmemory.NewTagRepository(invoices)
}
