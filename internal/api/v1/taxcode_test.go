package v1

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flexprice/taxengine/internal/api/dto"
	"github.com/flexprice/taxengine/internal/domain/invoice"
	"github.com/flexprice/taxengine/internal/domain/tag"
	"github.com/flexprice/taxengine/internal/service"
	"github.com/flexprice/taxengine/internal/testutil"
	"github.com/flexprice/taxengine/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TaxCodeHandlerSuite struct {
	testutil.BaseServiceTestSuite
	router  *gin.Engine
	tagRepo *testutil.InMemoryTagStore
}

func TestTaxCodeHandler(t *testing.T) {
	suite.Run(t, new(TaxCodeHandlerSuite))
}

func (s *TaxCodeHandlerSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	gin.SetMode(gin.TestMode)

	invoiceRepo := testutil.NewInMemoryInvoiceStore()
	s.tagRepo = testutil.NewInMemoryTagStore(invoiceRepo)

	svc := service.NewInvoiceTaxCodeService(service.ServiceParams{
		Logger:      s.GetLogger(),
		Config:      s.GetConfig(),
		AccountRepo: testutil.NewInMemoryAccountStore(),
		InvoiceRepo: invoiceRepo,
		TagRepo:     s.tagRepo,
		CatalogRepo: testutil.NewInMemoryCatalogStore(),
	})

	handler := NewTaxCodeHandler(svc, s.GetLogger())
	s.router = gin.New()
	s.router.GET("/v1/invoices/:id/taxcodes", handler.ListInvoiceTaxCodes)
	s.router.GET("/v1/invoiceitems/:id/taxcodes", handler.GetInvoiceItemTaxCodes)
	s.router.PUT("/v1/invoiceitems/:id/taxcodes", handler.SetInvoiceItemTaxCodes)

	s.seed(invoiceRepo)
}

func (s *TaxCodeHandlerSuite) seed(invoiceRepo *testutil.InMemoryInvoiceStore) {
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
		},
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(invoiceRepo.Create(s.GetContext(), inv))

	s.NoError(s.tagRepo.Upsert(s.GetContext(), &tag.Tag{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAG),
		ObjectID:   "item_1",
		FieldName:  tag.TaxCodesFieldName,
		FieldValue: "VAT_STD",
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}))
}

func (s *TaxCodeHandlerSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *TaxCodeHandlerSuite) TestListInvoiceTaxCodes() {
	w := s.request(http.MethodGet, "/v1/invoices/inv_1/taxcodes", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp []dto.TaxCodesResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Len(resp, 1)
	s.Equal("item_1", resp[0].InvoiceItemID)
	s.Equal([]dto.TaxCodeRef{{Name: "VAT_STD"}}, resp[0].TaxCodes)
}

func (s *TaxCodeHandlerSuite) TestListInvoiceTaxCodesUnknownInvoice() {
	w := s.request(http.MethodGet, "/v1/invoices/inv_unknown/taxcodes", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *TaxCodeHandlerSuite) TestGetInvoiceItemTaxCodes() {
	w := s.request(http.MethodGet, "/v1/invoiceitems/item_1/taxcodes", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp dto.TaxCodesResponse
	s.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("inv_1", resp.InvoiceID)
	s.Equal([]dto.TaxCodeRef{{Name: "VAT_STD"}}, resp.TaxCodes)
}

func (s *TaxCodeHandlerSuite) TestGetInvoiceItemTaxCodesUnknownItem() {
	w := s.request(http.MethodGet, "/v1/invoiceitems/item_unknown/taxcodes", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *TaxCodeHandlerSuite) TestSetInvoiceItemTaxCodes() {
	w := s.request(http.MethodPut, "/v1/invoiceitems/item_1/taxcodes", dto.SetTaxCodesRequest{
		TaxCodes: []dto.TaxCodeRef{{Name: "VAT_RED"}},
	})
	s.Equal(http.StatusOK, w.Code)

	t, err := s.tagRepo.Get(s.GetContext(), tag.TaxCodesFieldName, "item_1")
	s.NoError(err)
	s.Equal("VAT_RED", t.FieldValue)
}

func (s *TaxCodeHandlerSuite) TestSetInvoiceItemTaxCodesEmptyPayload() {
	w := s.request(http.MethodPut, "/v1/invoiceitems/item_1/taxcodes", dto.SetTaxCodesRequest{})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TaxCodeHandlerSuite) TestSetInvoiceItemTaxCodesMalformedBody() {
	req := httptest.NewRequest(http.MethodPut, "/v1/invoiceitems/item_1/taxcodes", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusBadRequest, w.Code)
}
