package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"comercio/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrStoreNotFound         = errors.New("store not found")
	ErrTaxNotFound           = errors.New("tax not found")
	ErrCurrencyNotFound      = errors.New("currency not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
)

// StoreRepository defines the interface for store data access
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error)
	List(ctx context.Context) ([]*domain.Store, error)
}

// TaxRepository defines the interface for tax data access
type TaxRepository interface {
	Create(ctx context.Context, tax *domain.Tax) error
	Update(ctx context.Context, tax *domain.Tax) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Tax, error)
	List(ctx context.Context) ([]*domain.Tax, error)
}

// CurrencyRepository defines the interface for currency data access
type CurrencyRepository interface {
	Create(ctx context.Context, currency *domain.Currency) error
	Update(ctx context.Context, currency *domain.Currency) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Currency, error)
	List(ctx context.Context) ([]*domain.Currency, error)
}

// PaymentMethodRepository defines the interface for payment method data access
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *domain.PaymentMethod) error
	Update(ctx context.Context, method *domain.PaymentMethod) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.PaymentMethod, error)
	List(ctx context.Context) ([]*domain.PaymentMethod, error)
}

type storeRepository struct{ db *sql.DB }

// NewStoreRepository creates a new instance of StoreRepository
func NewStoreRepository(db *sql.DB) StoreRepository { return &storeRepository{db: db} }

func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	_, err := querier(ctx, r.db).ExecContext(ctx,
		`INSERT INTO stores (id, name, address, phone, created_at) VALUES ($1, $2, $3, $4, $5)`,
		store.ID, store.Name, store.Address, store.Phone, store.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

func (r *storeRepository) Update(ctx context.Context, store *domain.Store) error {
	result, err := querier(ctx, r.db).ExecContext(ctx,
		`UPDATE stores SET name = $2, address = $3, phone = $4 WHERE id = $1`,
		store.ID, store.Name, store.Address, store.Phone,
	)
	if err != nil {
		return fmt.Errorf("failed to update store: %w", err)
	}
	return checkAffected(result, ErrStoreNotFound)
}

func (r *storeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return checkAffected(result, ErrStoreNotFound)
}

func (r *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	store := &domain.Store{}
	err := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, name, address, phone, created_at FROM stores WHERE id = $1`, id,
	).Scan(&store.ID, &store.Name, &store.Address, &store.Phone, &store.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to find store by ID: %w", err)
	}
	return store, nil
}

func (r *storeRepository) List(ctx context.Context) ([]*domain.Store, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx,
		`SELECT id, name, address, phone, created_at FROM stores ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	stores := []*domain.Store{}
	for rows.Next() {
		store := &domain.Store{}
		if err := rows.Scan(&store.ID, &store.Name, &store.Address, &store.Phone, &store.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, store)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stores: %w", err)
	}
	return stores, nil
}

type taxRepository struct{ db *sql.DB }

// NewTaxRepository creates a new instance of TaxRepository
func NewTaxRepository(db *sql.DB) TaxRepository { return &taxRepository{db: db} }

func (r *taxRepository) Create(ctx context.Context, tax *domain.Tax) error {
	_, err := querier(ctx, r.db).ExecContext(ctx,
		`INSERT INTO taxes (id, name, rate, created_at) VALUES ($1, $2, $3, $4)`,
		tax.ID, tax.Name, tax.Rate, tax.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create tax: %w", err)
	}
	return nil
}

func (r *taxRepository) Update(ctx context.Context, tax *domain.Tax) error {
	result, err := querier(ctx, r.db).ExecContext(ctx,
		`UPDATE taxes SET name = $2, rate = $3 WHERE id = $1`,
		tax.ID, tax.Name, tax.Rate,
	)
	if err != nil {
		return fmt.Errorf("failed to update tax: %w", err)
	}
	return checkAffected(result, ErrTaxNotFound)
}

func (r *taxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM taxes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tax: %w", err)
	}
	return checkAffected(result, ErrTaxNotFound)
}

func (r *taxRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tax, error) {
	tax := &domain.Tax{}
	err := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, name, rate, created_at FROM taxes WHERE id = $1`, id,
	).Scan(&tax.ID, &tax.Name, &tax.Rate, &tax.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTaxNotFound
		}
		return nil, fmt.Errorf("failed to find tax by ID: %w", err)
	}
	return tax, nil
}

func (r *taxRepository) List(ctx context.Context) ([]*domain.Tax, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx,
		`SELECT id, name, rate, created_at FROM taxes ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list taxes: %w", err)
	}
	defer rows.Close()

	taxes := []*domain.Tax{}
	for rows.Next() {
		tax := &domain.Tax{}
		if err := rows.Scan(&tax.ID, &tax.Name, &tax.Rate, &tax.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tax: %w", err)
		}
		taxes = append(taxes, tax)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating taxes: %w", err)
	}
	return taxes, nil
}

type currencyRepository struct{ db *sql.DB }

// NewCurrencyRepository creates a new instance of CurrencyRepository
func NewCurrencyRepository(db *sql.DB) CurrencyRepository { return &currencyRepository{db: db} }

func (r *currencyRepository) Create(ctx context.Context, currency *domain.Currency) error {
	_, err := querier(ctx, r.db).ExecContext(ctx,
		`INSERT INTO currencies (id, code, name, symbol, created_at) VALUES ($1, $2, $3, $4, $5)`,
		currency.ID, currency.Code, currency.Name, currency.Symbol, currency.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create currency: %w", err)
	}
	return nil
}

func (r *currencyRepository) Update(ctx context.Context, currency *domain.Currency) error {
	result, err := querier(ctx, r.db).ExecContext(ctx,
		`UPDATE currencies SET code = $2, name = $3, symbol = $4 WHERE id = $1`,
		currency.ID, currency.Code, currency.Name, currency.Symbol,
	)
	if err != nil {
		return fmt.Errorf("failed to update currency: %w", err)
	}
	return checkAffected(result, ErrCurrencyNotFound)
}

func (r *currencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM currencies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete currency: %w", err)
	}
	return checkAffected(result, ErrCurrencyNotFound)
}

func (r *currencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Currency, error) {
	currency := &domain.Currency{}
	err := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, code, name, symbol, created_at FROM currencies WHERE id = $1`, id,
	).Scan(&currency.ID, &currency.Code, &currency.Name, &currency.Symbol, &currency.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrCurrencyNotFound
		}
		return nil, fmt.Errorf("failed to find currency by ID: %w", err)
	}
	return currency, nil
}

func (r *currencyRepository) List(ctx context.Context) ([]*domain.Currency, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx,
		`SELECT id, code, name, symbol, created_at FROM currencies ORDER BY code ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	defer rows.Close()

	currencies := []*domain.Currency{}
	for rows.Next() {
		currency := &domain.Currency{}
		if err := rows.Scan(&currency.ID, &currency.Code, &currency.Name, &currency.Symbol, &currency.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, currency)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}
	return currencies, nil
}

type paymentMethodRepository struct{ db *sql.DB }

// NewPaymentMethodRepository creates a new instance of PaymentMethodRepository
func NewPaymentMethodRepository(db *sql.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) Create(ctx context.Context, method *domain.PaymentMethod) error {
	_, err := querier(ctx, r.db).ExecContext(ctx,
		`INSERT INTO payment_methods (id, name, created_at) VALUES ($1, $2, $3)`,
		method.ID, method.Name, method.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment method: %w", err)
	}
	return nil
}

func (r *paymentMethodRepository) Update(ctx context.Context, method *domain.PaymentMethod) error {
	result, err := querier(ctx, r.db).ExecContext(ctx,
		`UPDATE payment_methods SET name = $2 WHERE id = $1`,
		method.ID, method.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment method: %w", err)
	}
	return checkAffected(result, ErrPaymentMethodNotFound)
}

func (r *paymentMethodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := querier(ctx, r.db).ExecContext(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment method: %w", err)
	}
	return checkAffected(result, ErrPaymentMethodNotFound)
}

func (r *paymentMethodRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.PaymentMethod, error) {
	method := &domain.PaymentMethod{}
	err := querier(ctx, r.db).QueryRowContext(ctx,
		`SELECT id, name, created_at FROM payment_methods WHERE id = $1`, id,
	).Scan(&method.ID, &method.Name, &method.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("failed to find payment method by ID: %w", err)
	}
	return method, nil
}

func (r *paymentMethodRepository) List(ctx context.Context) ([]*domain.PaymentMethod, error) {
	rows, err := querier(ctx, r.db).QueryContext(ctx,
		`SELECT id, name, created_at FROM payment_methods ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment methods: %w", err)
	}
	defer rows.Close()

	methods := []*domain.PaymentMethod{}
	for rows.Next() {
		method := &domain.PaymentMethod{}
		if err := rows.Scan(&method.ID, &method.Name, &method.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment method: %w", err)
		}
		methods = append(methods, method)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment methods: %w", err)
	}
	return methods, nil
}

func checkAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
