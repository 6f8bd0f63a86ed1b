package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"comercio/internal/domain"
	"comercio/internal/repository"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

// Mock repositories for testing. They keep everything in maps so a test can
// inspect the exact state left behind by a posting.

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
	clone := *product
	return &clone, nil
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

type documentServiceFixture struct {
	service   DocumentService
	products  *mockProductRepository
	clients   *mockClientRepository
	suppliers *mockSupplierRepository
	invoices  *mockDocumentRepository
	purchases *mockDocumentRepository
}

func newDocumentServiceFixture() *documentServiceFixture {
	f := &documentServiceFixture{
		products:  newMockProductRepository(),
		clients:   newMockClientRepository(),
		suppliers: newMockSupplierRepository(),
		invoices:  newMockDocumentRepository(),
		purchases: newMockDocumentRepository(),
	}
	f.service = NewDocumentService(&mockTxRunner{}, f.products, f.clients, f.suppliers, f.invoices, f.purchases)
	return f
}

func (f *documentServiceFixture) addProduct(name string, quantity int, price string) *domain.Product {
	product := &domain.Product{
		ID:        uuid.New(),
		SKU:       uuid.New().String()[:8],
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.products.products[product.ID] = product
	return product
}

func (f *documentServiceFixture) addClient(name string) *domain.Client {
	client := &domain.Client{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	f.clients.clients[client.ID] = client
	return client
}

func (f *documentServiceFixture) addSupplier(name string) *domain.Supplier {
	supplier := &domain.Supplier{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	f.suppliers.suppliers[supplier.ID] = supplier
	return supplier
}

func TestCreateInvoice_DecrementsStockAndComputesTotal(t *testing.T) {
	f := newDocumentServiceFixture()
	ctx := context.Background()

	client := f.addClient("Comercial Rivera")
	coffee := f.addProduct("Coffee 500g", 20, "85.50")
	sugar := f.addProduct("Sugar 1kg", 15, "22.00")

	doc, err := f.service.CreateInvoice(ctx, CreateDocumentInput{
		PartyID: client.ID,
		Lines: []DocumentLineInput{
			{ProductID: coffee.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("85.50")},
			{ProductID: sugar.ID, Quantity: 5, UnitPrice: decimal.RequireFromString("22.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	if got := f.products.products[coffee.ID].Quantity; got != 17 {
		t.Errorf("coffee quantity = %d, want 17", got)
	}
	if got := f.products.products[sugar.ID].Quantity; got != 10 {
		t.Errorf("sugar quantity = %d, want 10", got)
	}

	wantTotal := decimal.RequireFromString("366.50") // 3*85.50 + 5*22.00
	if !doc.Total.Equal(wantTotal) {
		t.Errorf("total = %s, want %s", doc.Total, wantTotal)
	}

	if doc.Kind != domain.DocumentKindInvoice {
		t.Errorf("kind = %s, want %s", doc.Kind, domain.DocumentKindInvoice)
	}
	if doc.PartyName != client.Name {
		t.Errorf("party name = %q, want %q", doc.PartyName, client.Name)
	}
	if len(doc.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(doc.Lines))
	}
	for _, line := range doc.Lines {
		want := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		if !line.Subtotal.Equal(want) {
			t.Errorf("line subtotal = %s, want %s", line.Subtotal, want)
		}
	}

	if _, err := f.invoices.FindByID(ctx, doc.ID); err != nil {
		t.Errorf("invoice not persisted: %v", err)
	}
}

func TestCreateInvoice_InsufficientStockLeavesStateUntouched(t *testing.T) {
	f := newDocumentServiceFixture()
	ctx := context.Background()

	client := f.addClient("Abarrotería El Centro")
	plenty := f.addProduct("Rice 1kg", 50, "18.00")
	scarce := f.addProduct("Olive Oil 1L", 2, "240.00")

	_, err := f.service.CreateInvoice(ctx, CreateDocumentInput{
		PartyID: client.ID,
		Lines: []DocumentLineInput{
			{ProductID: plenty.ID, Quantity: 10, UnitPrice: decimal.RequireFromString("18.00")},
			{ProductID: scarce.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("240.00")},
		},
	})

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.ProductID != scarce.ID {
		t.Errorf("reported product = %s, want %s", stockErr.ProductID, scarce.ID)
	}
	if stockErr.Requested != 3 || stockErr.Available != 2 {
		t.Errorf("reported requested/available = %d/%d, want 3/2", stockErr.Requested, stockErr.Available)
	}

	// The first line passed its check but nothing may have been decremented.
	if got := f.products.products[plenty.ID].Quantity; got != 50 {
		t.Errorf("first line quantity = %d, want 50 (untouched)", got)
	}
	if got := f.products.products[scarce.ID].Quantity; got != 2 {
		t.Errorf("second line quantity = %d, want 2 (untouched)", got)
	}

	invoices, _ := f.invoices.List(ctx)
	if len(invoices) != 0 {
		t.Errorf("invoices persisted = %d, want 0", len(invoices))
	}
}

func TestCreateInvoice_ExactStockSellsToZero(t *testing.T) {
	f := newDocumentServiceFixture()
	ctx := context.Background()

	client := f.addClient("Pulpería La Bendición")
	product := f.addProduct("Flour 1kg", 7, "15.00")

	_, err := f.service.CreateInvoice(ctx, CreateDocumentInput{
		PartyID: client.ID,
		Lines: []DocumentLineInput{
			{ProductID: product.ID, Quantity: 7, UnitPrice: decimal.RequireFromString("15.00")},
		},
	})
	if err != nil {
		t.Fatalf("selling exact stock should succeed: %v", err)
	}
	if got := f.products.products[product.ID].Quantity; got != 0 {
		t.Errorf("quantity = %d, want 0", got)
	}
}

func TestCreateInvoice_ValidationErrors(t *testing.T) {
	f := newDocumentServiceFixture()
	ctx := context.Background()

	client := f.addClient("Cliente")
	product := f.addProduct("Item", 10, "5.00")

	tests := []struct {
		name    string
		lines   []DocumentLineInput
		wantErr error
	}{
		{"empty lines", []DocumentLineInput{}, ErrEmptyLines},
		{"zero quantity", []DocumentLineInput{{ProductID: product.ID, Quantity: 0, UnitPrice: decimal.NewFromInt(5)}}, ErrNonPositiveQuantity},
		{"negative quantity", []DocumentLineInput{{ProductID: product.ID, Quantity: -2, UnitPrice: decimal.NewFromInt(5)}}, ErrNonPositiveQuantity},
		{"negative price", []DocumentLineInput{{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}}, ErrNegativeUnitPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.CreateInvoice(ctx, CreateDocumentInput{PartyID: client.ID, Lines: tt.lines})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if got := f.products.products[product.ID].Quantity; got != 10 {
				t.Errorf("quantity = %d, want 10 (untouched)", got)
			}
		})
	}
}

func TestCreateInvoice_UnknownClientAndProduct(t *testing.T) {
	f := newDocumentServiceFixture()
	ctx := context.Background()

	product := f.addProduct("Item", 10, "5.00")

	_, err := f.service.CreateInvoice(ctx, CreateDocumentInput{
		PartyID: uuid.New(),
		Lines:   []DocumentLineInput{{ProductID: product.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	})
	if !errors.Is(err, repository.ErrClientNotFound) {
		t.Errorf("error = %v, want ErrClientNotFound", err)
	}

	client := f.addClient("Cliente")
	_, err = f.service.CreateInvoice(ctx, CreateDocumentInput{
		PartyID: client.ID,
		Lines:   []DocumentLineInput{{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	})
	if !errors.Is(err, repository.ErrProductNotFound) {
		t.Errorf("error = %v, want ErrProductNotFound", err)
	}

	if got := f.products.products[product.ID].Quantity; got != 10 {
		t.Errorf("quantity = %d, want 10 (untouched)", got)
	}
}

func TestCreatePurchase_IncrementsStockWithoutCheck(t *testing.T) {
	f := newDocumentServiceFixture()
	ctx := context.Background()

	supplier := f.addSupplier("Distribuidora del Norte")
	product := f.addProduct("Beans 1kg", 0, "10.00")

	doc, err := f.service.CreatePurchase(ctx, CreateDocumentInput{
		PartyID: supplier.ID,
		Lines: []DocumentLineInput{
			{ProductID: product.ID, Quantity: 3, UnitPrice: decimal.RequireFromString("10.00")},
			{ProductID: product.ID, Quantity: 5, UnitPrice: decimal.RequireFromString("10.00")},
		},
	})
	if err != nil {
		t.Fatalf("CreatePurchase failed: %v", err)
	}

	if got := f.products.products[product.ID].Quantity; got != 8 {
		t.Errorf("quantity = %d, want 8", got)
	}
	wantTotal := decimal.RequireFromString("80.00")
	if !doc.Total.Equal(wantTotal) {
		t.Errorf("total = %s, want %s", doc.Total, wantTotal)
	}
	if doc.Kind != domain.DocumentKindPurchase {
		t.Errorf("kind = %s, want %s", doc.Kind, domain.DocumentKindPurchase)
	}
}

func TestDeleteInvoice_RestoresStock(t *testing.T) {
	f := newDocumentServiceFixture()
	ctx := context.Background()

	client := f.addClient("Cliente")
	product := f.addProduct("Item", 10, "5.00")

	doc, err := f.service.CreateInvoice(ctx, CreateDocumentInput{
		PartyID: client.ID,
		Lines:   []DocumentLineInput{{ProductID: product.ID, Quantity: 4, UnitPrice: decimal.NewFromInt(5)}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	if got := f.products.products[product.ID].Quantity; got != 6 {
		t.Fatalf("quantity after sale = %d, want 6", got)
	}

	if err := f.service.DeleteInvoice(ctx, doc.ID); err != nil {
		t.Fatalf("DeleteInvoice failed: %v", err)
	}

	if got := f.products.products[product.ID].Quantity; got != 10 {
		t.Errorf("quantity after delete = %d, want 10", got)
	}
	if _, err := f.invoices.FindByID(ctx, doc.ID); !errors.Is(err, repository.ErrDocumentNotFound) {
		t.Errorf("invoice should be gone, got %v", err)
	}
}

func TestDeletePurchase_ReversalCanGoNegative(t *testing.T) {
	f := newDocumentServiceFixture()
	ctx := context.Background()

	supplier := f.addSupplier("Proveedor")
	client := f.addClient("Cliente")
	product := f.addProduct("Item", 0, "5.00")

	purchase, err := f.service.CreatePurchase(ctx, CreateDocumentInput{
		PartyID: supplier.ID,
		Lines:   []DocumentLineInput{{ProductID: product.ID, Quantity: 10, UnitPrice: decimal.NewFromInt(5)}},
	})
	if err != nil {
		t.Fatalf("CreatePurchase failed: %v", err)
	}

	// Sell part of the purchased stock, then delete the purchase. The
	// reversal is symmetric and applies no floor.
	if _, err := f.service.CreateInvoice(ctx, CreateDocumentInput{
		PartyID: client.ID,
		Lines:   []DocumentLineInput{{ProductID: product.ID, Quantity: 6, UnitPrice: decimal.NewFromInt(5)}},
	}); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	if err := f.service.DeletePurchase(ctx, purchase.ID); err != nil {
		t.Fatalf("DeletePurchase failed: %v", err)
	}

	if got := f.products.products[product.ID].Quantity; got != -6 {
		t.Errorf("quantity = %d, want -6", got)
	}
}

func TestDeleteDocument_NotFoundHasNoSideEffects(t *testing.T) {
	f := newDocumentServiceFixture()
	ctx := context.Background()

	product := f.addProduct("Item", 10, "5.00")

	if err := f.service.DeleteInvoice(ctx, uuid.New()); !errors.Is(err, repository.ErrDocumentNotFound) {
		t.Errorf("DeleteInvoice error = %v, want ErrDocumentNotFound", err)
	}
	if err := f.service.DeletePurchase(ctx, uuid.New()); !errors.Is(err, repository.ErrDocumentNotFound) {
		t.Errorf("DeletePurchase error = %v, want ErrDocumentNotFound", err)
	}

	if got := f.products.products[product.ID].Quantity; got != 10 {
		t.Errorf("quantity = %d, want 10 (untouched)", got)
	}
}

// Property: the document total always equals the sum of line subtotals, and
// each subtotal equals quantity times unit price.
func TestProperty_DocumentTotalEqualsSumOfSubtotals(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total is the sum of quantity*price over all lines", prop.ForAll(
		func(quantities []int, prices []int) bool {
			if len(quantities) == 0 {
				return true
			}
			if len(prices) < len(quantities) {
				return true
			}

			f := newDocumentServiceFixture()
			ctx := context.Background()
			supplier := f.addSupplier("Proveedor")

			input := CreateDocumentInput{PartyID: supplier.ID}
			expected := decimal.Zero
			for i, qty := range quantities {
				price := decimal.New(int64(prices[i]), -2)
				product := f.addProduct("Item", 0, "0.00")
				input.Lines = append(input.Lines, DocumentLineInput{
					ProductID: product.ID,
					Quantity:  qty,
					UnitPrice: price,
				})
				expected = expected.Add(price.Mul(decimal.NewFromInt(int64(qty))))
			}

			doc, err := f.service.CreatePurchase(ctx, input)
			if err != nil {
				t.Logf("FAIL: CreatePurchase failed: %v", err)
				return false
			}

			sum := decimal.Zero
			for _, line := range doc.Lines {
				if !line.Subtotal.Equal(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))) {
					t.Logf("FAIL: line subtotal mismatch")
					return false
				}
				sum = sum.Add(line.Subtotal)
			}

			if !doc.Total.Equal(sum) || !doc.Total.Equal(expected) {
				t.Logf("FAIL: total %s, sum %s, expected %s", doc.Total, sum, expected)
				return false
			}
			return true
		},
		gen.SliceOf(gen.IntRange(1, 50)),
		gen.SliceOfN(20, gen.IntRange(0, 100000)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: posting a sale and then deleting it restores every product to its
// starting quantity.
func TestProperty_InvoiceDeleteRestoresStock(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("delete reverses the sale's quantity effect exactly", prop.ForAll(
		func(initial int, sold int) bool {
			if sold > initial {
				return true
			}

			f := newDocumentServiceFixture()
			ctx := context.Background()
			client := f.addClient("Cliente")
			product := f.addProduct("Item", initial, "9.99")

			doc, err := f.service.CreateInvoice(ctx, CreateDocumentInput{
				PartyID: client.ID,
				Lines:   []DocumentLineInput{{ProductID: product.ID, Quantity: sold, UnitPrice: decimal.RequireFromString("9.99")}},
			})
			if err != nil {
				t.Logf("FAIL: CreateInvoice failed: %v", err)
				return false
			}

			if got := f.products.products[product.ID].Quantity; got != initial-sold {
				t.Logf("FAIL: quantity after sale = %d, want %d", got, initial-sold)
				return false
			}

			if err := f.service.DeleteInvoice(ctx, doc.ID); err != nil {
				t.Logf("FAIL: DeleteInvoice failed: %v", err)
				return false
			}

			if got := f.products.products[product.ID].Quantity; got != initial {
				t.Logf("FAIL: quantity after delete = %d, want %d", got, initial)
				return false
			}
			return true
		},
		gen.IntRange(1, 1000),
		gen.IntRange(1, 1000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Property: a sale exceeding available stock is always rejected and never
// changes any quantity.
func TestProperty_OversellAlwaysRejectedWithoutMutation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requested > available is rejected before any decrement", prop.ForAll(
		func(available int, excess int) bool {
			f := newDocumentServiceFixture()
			ctx := context.Background()
			client := f.addClient("Cliente")
			product := f.addProduct("Item", available, "3.00")

			requested := available + excess
			_, err := f.service.CreateInvoice(ctx, CreateDocumentInput{
				PartyID: client.ID,
				Lines:   []DocumentLineInput{{ProductID: product.ID, Quantity: requested, UnitPrice: decimal.NewFromInt(3)}},
			})

			var stockErr *InsufficientStockError
			if !errors.As(err, &stockErr) {
				t.Logf("FAIL: expected InsufficientStockError, got %v", err)
				return false
			}
			if stockErr.Requested != requested || stockErr.Available != available {
				t.Logf("FAIL: reported %d/%d, want %d/%d", stockErr.Requested, stockErr.Available, requested, available)
				return false
			}
			if got := f.products.products[product.ID].Quantity; got != available {
				t.Logf("FAIL: quantity = %d, want %d (untouched)", got, available)
				return false
			}

			invoices, _ := f.invoices.List(ctx)
			if len(invoices) != 0 {
				t.Logf("FAIL: %d invoices persisted", len(invoices))
				return false
			}
			return true
		},
		gen.IntRange(0, 500),
		gen.IntRange(1, 500),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCreateThenListThenDeleteRoundTrip(t *testing.T) {
	f := newDocumentServiceFixture()
	ctx := context.Background()

	client := f.addClient("Cliente")
	product := f.addProduct("Item", 30, "12.50")

	doc, err := f.service.CreateInvoice(ctx, CreateDocumentInput{
		PartyID: client.ID,
		Lines:   []DocumentLineInput{{ProductID: product.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("12.50")}},
	})
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	invoices, err := f.service.ListInvoices(ctx)
	if err != nil {
		t.Fatalf("ListInvoices failed: %v", err)
	}
	if len(invoices) != 1 || invoices[0].ID != doc.ID {
		t.Fatalf("listed invoices = %v, want exactly the created one", invoices)
	}

	if err := f.service.DeleteInvoice(ctx, doc.ID); err != nil {
		t.Fatalf("DeleteInvoice failed: %v", err)
	}

	invoices, err = f.service.ListInvoices(ctx)
	if err != nil {
		t.Fatalf("ListInvoices failed: %v", err)
	}
	if len(invoices) != 0 {
		t.Errorf("listed invoices after delete = %d, want 0", len(invoices))
	}
}
