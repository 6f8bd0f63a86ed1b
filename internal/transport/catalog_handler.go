package transport

import (
	"errors"
	"net/http"
	"time"

	"comercio/internal/domain"
	"comercio/internal/middleware"
	"comercio/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CategoryRequest represents the category create/update payload
type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// StoreRequest represents the store create/update payload
type StoreRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// TaxRequest represents the tax create/update payload
type TaxRequest struct {
	Name string          `json:"name" validate:"required"`
	Rate decimal.Decimal `json:"rate"`
}

// CurrencyRequest represents the currency create/update payload
type CurrencyRequest struct {
	Code   string `json:"code" validate:"required,len=3"`
	Name   string `json:"name" validate:"required"`
	Symbol string `json:"symbol" validate:"required"`
}

// PaymentMethodRequest represents the payment method create/update payload
type PaymentMethodRequest struct {
	Name string `json:"name" validate:"required"`
}

// CatalogHandler handles HTTP requests for the flat lookup catalogs
type CatalogHandler struct {
	categories     repository.CategoryRepository
	stores         repository.StoreRepository
	taxes          repository.TaxRepository
	currencies     repository.CurrencyRepository
	paymentMethods repository.PaymentMethodRepository
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(
	categories repository.CategoryRepository,
	stores repository.StoreRepository,
	taxes repository.TaxRepository,
	currencies repository.CurrencyRepository,
	paymentMethods repository.PaymentMethodRepository,
	logger *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		categories:     categories,
		stores:         stores,
		taxes:          taxes,
		currencies:     currencies,
		paymentMethods: paymentMethods,
		logger:         logger,
	}
}

// RegisterRoutes registers catalog routes. Mutations require admin role.
func (h *CatalogHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	register := func(path string, list, create, update, remove http.HandlerFunc) {
		r.Route(path, func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/", list)

			r.Group(func(r chi.Router) {
				r.Use(adminMiddleware)
				r.Post("/", create)
				r.Put("/{id}", update)
				r.Delete("/{id}", remove)
			})
		})
	}

	register("/api/categories", h.ListCategories, h.CreateCategory, h.UpdateCategory, h.DeleteCategory)
	register("/api/stores", h.ListStores, h.CreateStore, h.UpdateStore, h.DeleteStore)
	register("/api/taxes", h.ListTaxes, h.CreateTax, h.UpdateTax, h.DeleteTax)
	register("/api/currencies", h.ListCurrencies, h.CreateCurrency, h.UpdateCurrency, h.DeleteCurrency)
	register("/api/payment-methods", h.ListPaymentMethods, h.CreatePaymentMethod, h.UpdatePaymentMethod, h.DeletePaymentMethod)
}

func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid "+what+" id")
		return uuid.Nil, false
	}
	return id, true
}

// respondCatalogError maps repository errors to HTTP statuses
func (h *CatalogHandler) respondCatalogError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrStoreNotFound),
		errors.Is(err, repository.ErrTaxNotFound),
		errors.Is(err, repository.ErrCurrencyNotFound),
		errors.Is(err, repository.ErrPaymentMethodNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, repository.ErrCategoryAlreadyExists):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("Catalog operation failed", zap.String("what", what), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to "+what)
	}
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	category := &domain.Category{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := h.categories.Create(r.Context(), category); err != nil {
		h.respondCatalogError(w, err, "category")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.respondCatalogError(w, err, "category")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "category")
	if !ok {
		return
	}
	var req CategoryRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	category := &domain.Category{ID: id, Name: req.Name, Description: req.Description}
	if err := h.categories.Update(r.Context(), category); err != nil {
		h.respondCatalogError(w, err, "category")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, category)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "category")
	if !ok {
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		h.respondCatalogError(w, err, "category")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

func (h *CatalogHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req StoreRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	store := &domain.Store{
		ID:        uuid.New(),
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		CreatedAt: time.Now(),
	}

	if err := h.stores.Create(r.Context(), store); err != nil {
		h.respondCatalogError(w, err, "store")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, store)
}

func (h *CatalogHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.stores.List(r.Context())
	if err != nil {
		h.respondCatalogError(w, err, "store")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, stores)
}

func (h *CatalogHandler) UpdateStore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "store")
	if !ok {
		return
	}
	var req StoreRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	store := &domain.Store{ID: id, Name: req.Name, Address: req.Address, Phone: req.Phone}
	if err := h.stores.Update(r.Context(), store); err != nil {
		h.respondCatalogError(w, err, "store")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, store)
}

func (h *CatalogHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "store")
	if !ok {
		return
	}
	if err := h.stores.Delete(r.Context(), id); err != nil {
		h.respondCatalogError(w, err, "store")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "store deleted"})
}

func (h *CatalogHandler) CreateTax(w http.ResponseWriter, r *http.Request) {
	var req TaxRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Rate.IsNegative() {
		middleware.RespondWithError(w, http.StatusBadRequest, "rate cannot be negative")
		return
	}

	tax := &domain.Tax{
		ID:        uuid.New(),
		Name:      req.Name,
		Rate:      req.Rate,
		CreatedAt: time.Now(),
	}

	if err := h.taxes.Create(r.Context(), tax); err != nil {
		h.respondCatalogError(w, err, "tax")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, tax)
}

func (h *CatalogHandler) ListTaxes(w http.ResponseWriter, r *http.Request) {
	taxes, err := h.taxes.List(r.Context())
	if err != nil {
		h.respondCatalogError(w, err, "tax")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, taxes)
}

func (h *CatalogHandler) UpdateTax(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tax")
	if !ok {
		return
	}
	var req TaxRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	if req.Rate.IsNegative() {
		middleware.RespondWithError(w, http.StatusBadRequest, "rate cannot be negative")
		return
	}

	tax := &domain.Tax{ID: id, Name: req.Name, Rate: req.Rate}
	if err := h.taxes.Update(r.Context(), tax); err != nil {
		h.respondCatalogError(w, err, "tax")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, tax)
}

func (h *CatalogHandler) DeleteTax(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tax")
	if !ok {
		return
	}
	if err := h.taxes.Delete(r.Context(), id); err != nil {
		h.respondCatalogError(w, err, "tax")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "tax deleted"})
}

func (h *CatalogHandler) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	var req CurrencyRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	currency := &domain.Currency{
		ID:        uuid.New(),
		Code:      req.Code,
		Name:      req.Name,
		Symbol:    req.Symbol,
		CreatedAt: time.Now(),
	}

	if err := h.currencies.Create(r.Context(), currency); err != nil {
		h.respondCatalogError(w, err, "currency")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, currency)
}

func (h *CatalogHandler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	currencies, err := h.currencies.List(r.Context())
	if err != nil {
		h.respondCatalogError(w, err, "currency")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, currencies)
}

func (h *CatalogHandler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "currency")
	if !ok {
		return
	}
	var req CurrencyRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	currency := &domain.Currency{ID: id, Code: req.Code, Name: req.Name, Symbol: req.Symbol}
	if err := h.currencies.Update(r.Context(), currency); err != nil {
		h.respondCatalogError(w, err, "currency")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, currency)
}

func (h *CatalogHandler) DeleteCurrency(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "currency")
	if !ok {
		return
	}
	if err := h.currencies.Delete(r.Context(), id); err != nil {
		h.respondCatalogError(w, err, "currency")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "currency deleted"})
}

func (h *CatalogHandler) CreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req PaymentMethodRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	method := &domain.PaymentMethod{
		ID:        uuid.New(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := h.paymentMethods.Create(r.Context(), method); err != nil {
		h.respondCatalogError(w, err, "payment method")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, method)
}

func (h *CatalogHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.paymentMethods.List(r.Context())
	if err != nil {
		h.respondCatalogError(w, err, "payment method")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, methods)
}

func (h *CatalogHandler) UpdatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "payment method")
	if !ok {
		return
	}
	var req PaymentMethodRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	method := &domain.PaymentMethod{ID: id, Name: req.Name}
	if err := h.paymentMethods.Update(r.Context(), method); err != nil {
		h.respondCatalogError(w, err, "payment method")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, method)
}

func (h *CatalogHandler) DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "payment method")
	if !ok {
		return
	}
	if err := h.paymentMethods.Delete(r.Context(), id); err != nil {
		h.respondCatalogError(w, err, "payment method")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "payment method deleted"})
}
