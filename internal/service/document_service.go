package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"comercio/internal/domain"
	"comercio/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyLines          = errors.New("document must have at least one line")
	ErrNonPositiveQuantity = errors.New("line quantity must be positive")
	ErrNegativeUnitPrice   = errors.New("line unit price cannot be negative")
)

// InsufficientStockError reports the first line whose quantity exceeds the
// available stock. No quantities have been mutated when it is returned.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q (%s): requested %d, available %d",
		e.ProductName, e.ProductID, e.Requested, e.Available)
}

// DocumentLineInput is one requested line of a sale or purchase. UnitPrice
// comes from the caller so the posted line keeps the price agreed at
// transaction time even if the catalog price changes later.
type DocumentLineInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateDocumentInput is the typed input of a posting operation
type CreateDocumentInput struct {
	PartyID uuid.UUID
	Lines   []DocumentLineInput
}

// DocumentService posts and reverses inventory-affecting documents. Every
// mutating operation runs as a single unit of work: the document, its lines
// and all quantity adjustments become visible together or not at all.
type DocumentService interface {
	CreateInvoice(ctx context.Context, input CreateDocumentInput) (*domain.Document, error)
	CreatePurchase(ctx context.Context, input CreateDocumentInput) (*domain.Document, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	DeletePurchase(ctx context.Context, id uuid.UUID) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListInvoices(ctx context.Context) ([]*domain.Document, error)
	ListPurchases(ctx context.Context) ([]*domain.Document, error)
}

type documentService struct {
	tx        repository.TxRunner
	products  repository.ProductRepository
	clients   repository.ClientRepository
	suppliers repository.SupplierRepository
	invoices  repository.DocumentRepository
	purchases repository.DocumentRepository
}

// NewDocumentService creates a new instance of DocumentService
func NewDocumentService(
	tx repository.TxRunner,
	products repository.ProductRepository,
	clients repository.ClientRepository,
	suppliers repository.SupplierRepository,
	invoices repository.DocumentRepository,
	purchases repository.DocumentRepository,
) DocumentService {
	return &documentService{
		tx:        tx,
		products:  products,
		clients:   clients,
		suppliers: suppliers,
		invoices:  invoices,
		purchases: purchases,
	}
}

func validateLines(lines []DocumentLineInput) error {
	if len(lines) == 0 {
		return ErrEmptyLines
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return ErrNonPositiveQuantity
		}
		if line.UnitPrice.IsNegative() {
			return ErrNegativeUnitPrice
		}
	}
	return nil
}

// CreateInvoice posts a sale: validates stock per line in input order,
// persists the invoice with its lines and decrements each product's
// quantity. The stock check and the decrement share one transaction with the
// product rows locked, so two concurrent sales cannot both pass the check.
func (s *documentService) CreateInvoice(ctx context.Context, input CreateDocumentInput) (*domain.Document, error) {
	if err := validateLines(input.Lines); err != nil {
		return nil, err
	}

	var doc *domain.Document
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		client, err := s.clients.FindByID(ctx, input.PartyID)
		if err != nil {
			return err
		}

		built, err := s.buildDocument(ctx, domain.DocumentKindInvoice, client.ID, client.Name, input.Lines, true)
		if err != nil {
			return err
		}

		if err := s.invoices.Create(ctx, built); err != nil {
			return err
		}

		for _, line := range built.Lines {
			if err := s.products.AdjustQuantity(ctx, line.ProductID, -line.Quantity); err != nil {
				return err
			}
		}

		doc = built
		return nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// CreatePurchase posts a purchase: same shape as a sale but stock is
// incremented and there is no sufficiency precondition.
func (s *documentService) CreatePurchase(ctx context.Context, input CreateDocumentInput) (*domain.Document, error) {
	if err := validateLines(input.Lines); err != nil {
		return nil, err
	}

	var doc *domain.Document
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		supplier, err := s.suppliers.FindByID(ctx, input.PartyID)
		if err != nil {
			return err
		}

		built, err := s.buildDocument(ctx, domain.DocumentKindPurchase, supplier.ID, supplier.Name, input.Lines, false)
		if err != nil {
			return err
		}

		if err := s.purchases.Create(ctx, built); err != nil {
			return err
		}

		for _, line := range built.Lines {
			if err := s.products.AdjustQuantity(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		doc = built
		return nil
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// buildDocument resolves and locks every referenced product, checks stock
// when required, and assembles the document with its total. Lines are
// processed in input order so the first offending line is the one reported.
func (s *documentService) buildDocument(
	ctx context.Context,
	kind domain.DocumentKind,
	partyID uuid.UUID,
	partyName string,
	lines []DocumentLineInput,
	checkStock bool,
) (*domain.Document, error) {
	doc := &domain.Document{
		ID:        uuid.New(),
		Kind:      kind,
		PartyID:   partyID,
		PartyName: partyName,
		Total:     decimal.Zero,
		CreatedAt: time.Now(),
	}

	for _, line := range lines {
		product, err := s.products.FindByIDForUpdate(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		if checkStock && product.Quantity < line.Quantity {
			return nil, &InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   line.Quantity,
				Available:   product.Quantity,
			}
		}

		subtotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		doc.Lines = append(doc.Lines, domain.LineItem{
			ID:          uuid.New(),
			DocumentID:  doc.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    subtotal,
		})
		doc.Total = doc.Total.Add(subtotal)
	}

	return doc, nil
}

// DeleteInvoice reverses the sale's quantity effect (stock goes back up) and
// removes the invoice with its lines, all in one transaction.
func (s *documentService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return s.deleteDocument(ctx, s.invoices, id, 1)
}

// DeletePurchase reverses the purchase (stock goes back down) and removes
// it. The reversal applies no floor: quantity can go negative when the
// purchased stock was already sold, matching current posting rules.
func (s *documentService) DeletePurchase(ctx context.Context, id uuid.UUID) error {
	return s.deleteDocument(ctx, s.purchases, id, -1)
}

func (s *documentService) deleteDocument(ctx context.Context, repo repository.DocumentRepository, id uuid.UUID, direction int) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		doc, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		for _, line := range doc.Lines {
			if _, err := s.products.FindByIDForUpdate(ctx, line.ProductID); err != nil {
				return err
			}
			if err := s.products.AdjustQuantity(ctx, line.ProductID, direction*line.Quantity); err != nil {
				return err
			}
		}

		return repo.Delete(ctx, doc.ID)
	})
}

// GetInvoice returns one invoice with resolved names
func (s *documentService) GetInvoice(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return s.invoices.FindByID(ctx, id)
}

// ListInvoices returns all invoices newest-first
func (s *documentService) ListInvoices(ctx context.Context) ([]*domain.Document, error) {
	return s.invoices.List(ctx)
}

// ListPurchases returns all purchases newest-first
func (s *documentService) ListPurchases(ctx context.Context) ([]*domain.Document, error) {
	return s.purchases.List(ctx)
}
