package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"comercio/internal/domain"

	"github.com/google/uuid"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepository defines the interface for posted document data access.
// Invoices and purchases share the same shape; the two constructors bind the
// repository to the right set of tables.
type DocumentRepository interface {
	// Create inserts the document header and all of its line items.
	Create(ctx context.Context, doc *domain.Document) error
	// FindByID returns the document with its line items, resolved party name
	// and per-line product names.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	// List returns all documents newest-first, with lines resolved.
	List(ctx context.Context) ([]*domain.Document, error)
	// Delete removes the document; line items cascade at the schema level.
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentRepository struct {
	db         *sql.DB
	kind       domain.DocumentKind
	table      string
	itemsTable string
	itemsFK    string
	partyTable string
	partyFK    string
}

// NewInvoiceRepository creates a DocumentRepository over invoices
func NewInvoiceRepository(db *sql.DB) DocumentRepository {
	return &documentRepository{
		db:         db,
		kind:       domain.DocumentKindInvoice,
		table:      "invoices",
		itemsTable: "invoice_items",
		itemsFK:    "invoice_id",
		partyTable: "clients",
		partyFK:    "client_id",
	}
}

// NewPurchaseRepository creates a DocumentRepository over purchases
func NewPurchaseRepository(db *sql.DB) DocumentRepository {
	return &documentRepository{
		db:         db,
		kind:       domain.DocumentKindPurchase,
		table:      "purchases",
		itemsTable: "purchase_items",
		itemsFK:    "purchase_id",
		partyTable: "suppliers",
		partyFK:    "supplier_id",
	}
}

func (r *documentRepository) Create(ctx context.Context, doc *domain.Document) error {
	q := querier(ctx, r.db)

	insertDoc := fmt.Sprintf(`
		INSERT INTO %s (id, %s, total, created_at)
		VALUES ($1, $2, $3, $4)
	`, r.table, r.partyFK)

	_, err := q.ExecContext(ctx, insertDoc, doc.ID, doc.PartyID, doc.Total, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", r.kind, err)
	}

	insertItem := fmt.Sprintf(`
		INSERT INTO %s (id, %s, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.itemsTable, r.itemsFK)

	for i := range doc.Lines {
		line := &doc.Lines[i]
		line.DocumentID = doc.ID
		_, err := q.ExecContext(
			ctx,
			insertItem,
			line.ID,
			doc.ID,
			line.ProductID,
			line.Quantity,
			line.UnitPrice,
			line.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("failed to create %s line: %w", r.kind, err)
		}
	}

	return nil
}

func (r *documentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	query := fmt.Sprintf(`
		SELECT d.id, d.%s, p.name, d.total, d.created_at
		FROM %s d
		JOIN %s p ON p.id = d.%s
		WHERE d.id = $1
	`, r.partyFK, r.table, r.partyTable, r.partyFK)

	doc := &domain.Document{Kind: r.kind}
	err := querier(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.PartyID,
		&doc.PartyName,
		&doc.Total,
		&doc.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to find %s by ID: %w", r.kind, err)
	}

	lines, err := r.findLines(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines

	return doc, nil
}

func (r *documentRepository) findLines(ctx context.Context, documentID uuid.UUID) ([]domain.LineItem, error) {
	query := fmt.Sprintf(`
		SELECT i.id, i.%s, i.product_id, pr.name, i.quantity, i.unit_price, i.subtotal
		FROM %s i
		JOIN products pr ON pr.id = i.product_id
		WHERE i.%s = $1
		ORDER BY i.id
	`, r.itemsFK, r.itemsTable, r.itemsFK)

	rows, err := querier(ctx, r.db).QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s lines: %w", r.kind, err)
	}
	defer rows.Close()

	lines := []domain.LineItem{}
	for rows.Next() {
		var line domain.LineItem
		err := rows.Scan(
			&line.ID,
			&line.DocumentID,
			&line.ProductID,
			&line.ProductName,
			&line.Quantity,
			&line.UnitPrice,
			&line.Subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s line: %w", r.kind, err)
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s lines: %w", r.kind, err)
	}

	return lines, nil
}

func (r *documentRepository) List(ctx context.Context) ([]*domain.Document, error) {
	query := fmt.Sprintf(`
		SELECT d.id, d.%s, p.name, d.total, d.created_at
		FROM %s d
		JOIN %s p ON p.id = d.%s
		ORDER BY d.created_at DESC
	`, r.partyFK, r.table, r.partyTable, r.partyFK)

	rows, err := querier(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", r.kind, err)
	}
	defer rows.Close()

	docs := []*domain.Document{}
	for rows.Next() {
		doc := &domain.Document{Kind: r.kind}
		err := rows.Scan(
			&doc.ID,
			&doc.PartyID,
			&doc.PartyName,
			&doc.Total,
			&doc.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", r.kind, err)
		}
		docs = append(docs, doc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %ss: %w", r.kind, err)
	}

	for _, doc := range docs {
		lines, err := r.findLines(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		doc.Lines = lines
	}

	return docs, nil
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)

	result, err := querier(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", r.kind, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}
