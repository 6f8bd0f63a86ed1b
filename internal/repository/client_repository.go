package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"comercio/internal/domain"

	"github.com/google/uuid"
)

var ErrClientNotFound = errors.New("client not found")

// ClientRepository defines the interface for client data access
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (id, name, rtn, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := querier(ctx, r.db).ExecContext(
		ctx,
		query,
		client.ID,
		client.Name,
		client.RTN,
		client.Email,
		client.Phone,
		client.Address,
		client.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

func (r *clientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET name = $2, rtn = $3, email = $4, phone = $5, address = $6
		WHERE id = $1
	`

	result, err := querier(ctx, r.db).ExecContext(
		ctx,
		query,
		client.ID,
		client.Name,
		client.RTN,
		client.Email,
		client.Phone,
		client.Address,
	)

	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrClientNotFound
	}

	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrClientNotFound
	}

	return nil
}

func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	query := `
		SELECT id, name, rtn, email, phone, address, created_at
		FROM clients
		WHERE id = $1
	`

	client := &domain.Client{}
	err := querier(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&client.ID,
		&client.Name,
		&client.RTN,
		&client.Email,
		&client.Phone,
		&client.Address,
		&client.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to find client by ID: %w", err)
	}

	return client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	query := `
		SELECT id, name, rtn, email, phone, address, created_at
		FROM clients
		ORDER BY name ASC
	`

	rows, err := querier(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []*domain.Client{}
	for rows.Next() {
		client := &domain.Client{}
		err := rows.Scan(
			&client.ID,
			&client.Name,
			&client.RTN,
			&client.Email,
			&client.Phone,
			&client.Address,
			&client.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}
