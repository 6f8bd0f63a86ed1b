package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"comercio/internal/domain"
	"comercio/internal/repository"
	"comercio/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Mock repositories for testing

type mockTxRunner struct{}

func (m *mockTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockProductRepository struct {
	products map[uuid.UUID]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{products: make(map[uuid.UUID]*domain.Product)}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return m.FindByID(ctx, id)
}

func (m *mockProductRepository) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error {
	product, exists := m.products[id]
	if !exists {
		return repository.ErrProductNotFound
	}
	product.Quantity += delta
	return nil
}

func (m *mockProductRepository) List(ctx context.Context, categoryID *uuid.UUID, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error) {
	products := []*domain.Product{}
	for _, product := range m.products {
		products = append(products, product)
	}
	return products, len(products), nil
}

func (m *mockProductRepository) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	return m.List(ctx, nil, page, pageSize, "created_at", repository.SortOrderDesc)
}

type mockClientRepository struct {
	clients map[uuid.UUID]*domain.Client
}

func newMockClientRepository() *mockClientRepository {
	return &mockClientRepository{clients: make(map[uuid.UUID]*domain.Client)}
}

func (m *mockClientRepository) Create(ctx context.Context, client *domain.Client) error {
	m.clients[client.ID] = client
	return nil
}

func (m *mockClientRepository) Update(ctx context.Context, client *domain.Client) error {
	if _, exists := m.clients[client.ID]; !exists {
		return repository.ErrClientNotFound
	}
	m.clients[client.ID] = client
	return nil
}

func (m *mockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.clients[id]; !exists {
		return repository.ErrClientNotFound
	}
	delete(m.clients, id)
	return nil
}

func (m *mockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, exists := m.clients[id]
	if !exists {
		return nil, repository.ErrClientNotFound
	}
	return client, nil
}

func (m *mockClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	clients := []*domain.Client{}
	for _, client := range m.clients {
		clients = append(clients, client)
	}
	return clients, nil
}

type mockSupplierRepository struct {
	suppliers map[uuid.UUID]*domain.Supplier
}

func newMockSupplierRepository() *mockSupplierRepository {
	return &mockSupplierRepository{suppliers: make(map[uuid.UUID]*domain.Supplier)}
}

func (m *mockSupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	m.suppliers[supplier.ID] = supplier
	return nil
}

func (m *mockSupplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	if _, exists := m.suppliers[supplier.ID]; !exists {
		return repository.ErrSupplierNotFound
	}
	m.suppliers[supplier.ID] = supplier
	return nil
}

func (m *mockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.suppliers[id]; !exists {
		return repository.ErrSupplierNotFound
	}
	delete(m.suppliers, id)
	return nil
}

func (m *mockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	supplier, exists := m.suppliers[id]
	if !exists {
		return nil, repository.ErrSupplierNotFound
	}
	return supplier, nil
}

func (m *mockSupplierRepository) List(ctx context.Context) ([]*domain.Supplier, error) {
	suppliers := []*domain.Supplier{}
	for _, supplier := range m.suppliers {
		suppliers = append(suppliers, supplier)
	}
	return suppliers, nil
}

type mockDocumentRepository struct {
	documents map[uuid.UUID]*domain.Document
}

func newMockDocumentRepository() *mockDocumentRepository {
	return &mockDocumentRepository{documents: make(map[uuid.UUID]*domain.Document)}
}

func (m *mockDocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	m.documents[doc.ID] = doc
	return nil
}

func (m *mockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	doc, exists := m.documents[id]
	if !exists {
		return nil, repository.ErrDocumentNotFound
	}
	return doc, nil
}

func (m *mockDocumentRepository) List(ctx context.Context) ([]*domain.Document, error) {
	docs := []*domain.Document{}
	for _, doc := range m.documents {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (m *mockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.documents[id]; !exists {
		return repository.ErrDocumentNotFound
	}
	delete(m.documents, id)
	return nil
}

type handlerFixture struct {
	router   chi.Router
	products *mockProductRepository
	clients  *mockClientRepository
	invoices *mockDocumentRepository
}

func newHandlerFixture() *handlerFixture {
	products := newMockProductRepository()
	clients := newMockClientRepository()
	suppliers := newMockSupplierRepository()
	invoices := newMockDocumentRepository()
	purchases := newMockDocumentRepository()

	documentService := service.NewDocumentService(&mockTxRunner{}, products, clients, suppliers, invoices, purchases)
	reportService := service.NewReportService(documentService)
	logger, _ := zap.NewDevelopment()
	handler := NewDocumentHandler(documentService, reportService, logger)

	router := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler { return next }
	handler.RegisterRoutes(router, passthrough)

	return &handlerFixture{
		router:   router,
		products: products,
		clients:  clients,
		invoices: invoices,
	}
}

func (f *handlerFixture) addProduct(quantity int) *domain.Product {
	product := &domain.Product{
		ID:        uuid.New(),
		SKU:       uuid.New().String()[:8],
		Name:      "Producto",
		Price:     decimal.RequireFromString("9.50"),
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.products.products[product.ID] = product
	return product
}

func (f *handlerFixture) addClient() *domain.Client {
	client := &domain.Client{ID: uuid.New(), Name: "Cliente", CreatedAt: time.Now()}
	f.clients.clients[client.ID] = client
	return client
}

func (f *handlerFixture) postJSON(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateSaleEndpoint_Success(t *testing.T) {
	f := newHandlerFixture()
	client := f.addClient()
	product := f.addProduct(10)

	rec := f.postJSON(t, "/api/sales", CreateSaleRequest{
		ClientID: client.ID.String(),
		Lines: []LineRequest{
			{ProductID: product.ID.String(), Quantity: 4, UnitPrice: decimal.RequireFromString("9.50")},
		},
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var doc domain.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !doc.Total.Equal(decimal.RequireFromString("38.00")) {
		t.Errorf("total = %s, want 38.00", doc.Total)
	}
	if got := f.products.products[product.ID].Quantity; got != 6 {
		t.Errorf("stock = %d, want 6", got)
	}
}

func TestCreateSaleEndpoint_InsufficientStockReturns400(t *testing.T) {
	f := newHandlerFixture()
	client := f.addClient()
	product := f.addProduct(2)

	rec := f.postJSON(t, "/api/sales", CreateSaleRequest{
		ClientID: client.ID.String(),
		Lines: []LineRequest{
			{ProductID: product.ID.String(), Quantity: 5, UnitPrice: decimal.RequireFromString("9.50")},
		},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
	if got := f.products.products[product.ID].Quantity; got != 2 {
		t.Errorf("stock = %d, want 2 (untouched)", got)
	}
}

func TestCreateSaleEndpoint_ValidationFailures(t *testing.T) {
	f := newHandlerFixture()
	client := f.addClient()
	product := f.addProduct(10)

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing client", CreateSaleRequest{Lines: []LineRequest{{ProductID: product.ID.String(), Quantity: 1}}}},
		{"no lines", CreateSaleRequest{ClientID: client.ID.String()}},
		{"zero quantity", CreateSaleRequest{
			ClientID: client.ID.String(),
			Lines:    []LineRequest{{ProductID: product.ID.String(), Quantity: 0}},
		}},
		{"bad product uuid", CreateSaleRequest{
			ClientID: client.ID.String(),
			Lines:    []LineRequest{{ProductID: "not-a-uuid", Quantity: 1}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.postJSON(t, "/api/sales", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
		})
	}

	if got := f.products.products[product.ID].Quantity; got != 10 {
		t.Errorf("stock = %d, want 10 (untouched)", got)
	}
}

func TestCreateSaleEndpoint_UnknownClientReturns400(t *testing.T) {
	f := newHandlerFixture()
	product := f.addProduct(10)

	rec := f.postJSON(t, "/api/sales", CreateSaleRequest{
		ClientID: uuid.New().String(),
		Lines: []LineRequest{
			{ProductID: product.ID.String(), Quantity: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	})

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d; body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestDeleteSaleEndpoint(t *testing.T) {
	f := newHandlerFixture()
	client := f.addClient()
	product := f.addProduct(10)

	rec := f.postJSON(t, "/api/sales", CreateSaleRequest{
		ClientID: client.ID.String(),
		Lines: []LineRequest{
			{ProductID: product.ID.String(), Quantity: 3, UnitPrice: decimal.NewFromInt(5)},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var doc domain.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/sales/%s", doc.ID), nil)
	del := httptest.NewRecorder()
	f.router.ServeHTTP(del, req)

	if del.Code != http.StatusOK {
		t.Fatalf("delete status = %d; body: %s", del.Code, del.Body.String())
	}
	if got := f.products.products[product.ID].Quantity; got != 10 {
		t.Errorf("stock = %d, want 10 (restored)", got)
	}
}

func TestDeleteSaleEndpoint_NotFoundReturns404(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/sales/%s", uuid.New()), nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestExportSalePDFEndpoint(t *testing.T) {
	f := newHandlerFixture()
	client := f.addClient()
	product := f.addProduct(10)

	rec := f.postJSON(t, "/api/sales", CreateSaleRequest{
		ClientID: client.ID.String(),
		Lines: []LineRequest{
			{ProductID: product.ID.String(), Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d; body: %s", rec.Code, rec.Body.String())
	}
	var doc domain.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/sales/%s/pdf", doc.ID), nil)
	pdf := httptest.NewRecorder()
	f.router.ServeHTTP(pdf, req)

	if pdf.Code != http.StatusOK {
		t.Fatalf("pdf status = %d; body: %s", pdf.Code, pdf.Body.String())
	}
	if got := pdf.Header().Get("Content-Type"); got != "application/pdf" {
		t.Errorf("content type = %q, want application/pdf", got)
	}
	if pdf.Body.Len() == 0 {
		t.Error("pdf body is empty")
	}
}
