package service

import (
	"testing"
	"time"

	"github.com/flexprice/taxengine/internal/api/dto"
	"github.com/flexprice/taxengine/internal/domain/account"
	"github.com/flexprice/taxengine/internal/domain/invoice"
	"github.com/flexprice/taxengine/internal/domain/tag"
	ierr "github.com/flexprice/taxengine/internal/errors"
	"github.com/flexprice/taxengine/internal/testutil"
	"github.com/flexprice/taxengine/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type InvoiceTaxCodeServiceSuite struct {
	testutil.BaseServiceTestSuite
	service     InvoiceTaxCodeService
	invoiceRepo *testutil.InMemoryInvoiceStore
	tagRepo     *testutil.InMemoryTagStore
}

func TestInvoiceTaxCodeService(t *testing.T) {
	suite.Run(t, new(InvoiceTaxCodeServiceSuite))
}

func (s *InvoiceTaxCodeServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupService()
	s.setupTestData()
}

func (s *InvoiceTaxCodeServiceSuite) setupService() {
	accountRepo := testutil.NewInMemoryAccountStore()
	s.invoiceRepo = testutil.NewInMemoryInvoiceStore()
	s.tagRepo = testutil.NewInMemoryTagStore(s.invoiceRepo)

	s.service = NewInvoiceTaxCodeService(ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		AccountRepo: accountRepo,
		InvoiceRepo: s.invoiceRepo,
		TagRepo:     s.tagRepo,
		CatalogRepo: testutil.NewInMemoryCatalogStore(),
	})

	s.NoError(accountRepo.Create(s.GetContext(), &account.Account{
		ID:        "acct_test",
		Name:      "Test Account",
		Currency:  "USD",
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *InvoiceTaxCodeServiceSuite) setupTestData() {
	linkedItemID := "item_1"
	inv := &invoice.Invoice{
		ID:          "inv_1",
		AccountID:   "acct_test",
		InvoiceDate: time.Now().UTC(),
		Currency:    "USD",
		Items: []*invoice.InvoiceItem{
			{
				ID:        "item_1",
				InvoiceID: "inv_1",
				Type:      types.InvoiceItemTypeTaxable,
				Amount:    decimal.RequireFromString("100.00"),
				BaseModel: types.GetDefaultBaseModel(s.GetContext()),
			},
			{
				ID:           "tax_1",
				InvoiceID:    "inv_1",
				Type:         types.InvoiceItemTypeTax,
				Amount:       decimal.RequireFromString("20.00"),
				LinkedItemID: &linkedItemID,
				BaseModel:    types.GetDefaultBaseModel(s.GetContext()),
			},
		},
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.invoiceRepo.Create(s.GetContext(), inv))

	s.NoError(s.tagRepo.Upsert(s.GetContext(), &tag.Tag{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAG),
		ObjectID:   "item_1",
		FieldName:  tag.TaxCodesFieldName,
		FieldValue: "VAT_STD",
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *InvoiceTaxCodeServiceSuite) TestListInvoiceTaxCodes() {
	responses, err := s.service.ListInvoiceTaxCodes(s.GetContext(), "inv_1")
	s.NoError(err)
	s.Len(responses, 1)
	s.Equal("inv_1", responses[0].InvoiceID)
	s.Equal("item_1", responses[0].InvoiceItemID)
	s.Equal([]dto.TaxCodeRef{{Name: "VAT_STD"}}, responses[0].TaxCodes)
}

func (s *InvoiceTaxCodeServiceSuite) TestListInvoiceTaxCodesUnknownInvoice() {
	_, err := s.service.ListInvoiceTaxCodes(s.GetContext(), "inv_unknown")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceTaxCodeServiceSuite) TestGetInvoiceItemTaxCodes() {
	resp, err := s.service.GetInvoiceItemTaxCodes(s.GetContext(), "item_1")
	s.NoError(err)
	s.Equal("inv_1", resp.InvoiceID)
	s.Equal([]dto.TaxCodeRef{{Name: "VAT_STD"}}, resp.TaxCodes)
}

func (s *InvoiceTaxCodeServiceSuite) TestGetInvoiceItemTaxCodesWithoutTag() {
	_, err := s.service.GetInvoiceItemTaxCodes(s.GetContext(), "tax_1")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceTaxCodeServiceSuite) TestGetInvoiceItemTaxCodesUnknownItem() {
	_, err := s.service.GetInvoiceItemTaxCodes(s.GetContext(), "item_unknown")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceTaxCodeServiceSuite) TestSetInvoiceItemTaxCodesReplacesValue() {
	resp, err := s.service.SetInvoiceItemTaxCodes(s.GetContext(), "item_1", dto.SetTaxCodesRequest{
		TaxCodes: []dto.TaxCodeRef{{Name: "VAT_RED"}, {Name: "VAT_STD"}},
	})
	s.NoError(err)
	s.Equal([]dto.TaxCodeRef{{Name: "VAT_RED"}, {Name: "VAT_STD"}}, resp.TaxCodes)

	t, err := s.tagRepo.Get(s.GetContext(), tag.TaxCodesFieldName, "item_1")
	s.NoError(err)
	s.Equal("VAT_RED,VAT_STD", t.FieldValue)
}

func (s *InvoiceTaxCodeServiceSuite) TestSetInvoiceItemTaxCodesValidation() {
	_, err := s.service.SetInvoiceItemTaxCodes(s.GetContext(), "item_1", dto.SetTaxCodesRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	_, err = s.service.SetInvoiceItemTaxCodes(s.GetContext(), "item_1", dto.SetTaxCodesRequest{
		TaxCodes: []dto.TaxCodeRef{{Name: ""}},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *InvoiceTaxCodeServiceSuite) TestSetInvoiceItemTaxCodesUnknownItem() {
	_, err := s.service.SetInvoiceItemTaxCodes(s.GetContext(), "item_unknown", dto.SetTaxCodesRequest{
		TaxCodes: []dto.TaxCodeRef{{Name: "VAT_STD"}},
	})
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
