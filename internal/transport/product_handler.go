package transport

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"comercio/internal/domain"
	"comercio/internal/middleware"
	"comercio/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRequest represents the product create/update payload
type ProductRequest struct {
	SKU        string          `json:"sku" validate:"required"`
	Name       string          `json:"name" validate:"required"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity" validate:"gte=0"`
	CategoryID *string         `json:"category_id,omitempty" validate:"omitempty,uuid"`
	TaxID      *string         `json:"tax_id,omitempty" validate:"omitempty,uuid"`
	StoreID    *string         `json:"store_id,omitempty" validate:"omitempty,uuid"`
}

// ProductListResponse wraps a paginated product listing
type ProductListResponse struct {
	Products []*domain.Product `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ProductHandler handles HTTP requests for catalog products
type ProductHandler struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products repository.ProductRepository, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (h *ProductHandler) decode(w http.ResponseWriter, r *http.Request) (*ProductRequest, *domain.Product, bool) {
	var req ProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return nil, nil, false
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return nil, nil, false
	}

	if req.Price.IsNegative() {
		middleware.RespondWithError(w, http.StatusBadRequest, "price cannot be negative")
		return nil, nil, false
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
		return nil, nil, false
	}
	taxID, err := parseOptionalUUID(req.TaxID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid tax id")
		return nil, nil, false
	}
	storeID, err := parseOptionalUUID(req.StoreID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid store id")
		return nil, nil, false
	}

	product := &domain.Product{
		SKU:        req.SKU,
		Name:       req.Name,
		Price:      req.Price,
		Quantity:   req.Quantity,
		CategoryID: categoryID,
		TaxID:      taxID,
		StoreID:    storeID,
	}

	return &req, product, true
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, product, ok := h.decode(w, r)
	if !ok {
		return
	}

	product.ID = uuid.New()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	if err := h.products.Create(r.Context(), product); err != nil {
		if errors.Is(err, repository.ErrProductSKUExists) {
			middleware.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("sku", product.SKU))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// List handles product listing with optional search, pagination and sorting
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var (
		products []*domain.Product
		total    int
		err      error
	)

	if search := r.URL.Query().Get("search"); search != "" {
		products, total, err = h.products.Search(r.Context(), search, page, pageSize)
	} else {
		var categoryID *uuid.UUID
		if c := r.URL.Query().Get("category_id"); c != "" {
			parsed, parseErr := uuid.Parse(c)
			if parseErr != nil {
				middleware.RespondWithError(w, http.StatusBadRequest, "invalid category id")
				return
			}
			categoryID = &parsed
		}

		sortBy := r.URL.Query().Get("sort_by")
		sortOrder := repository.SortOrder(r.URL.Query().Get("sort_order"))
		products, total, err = h.products.List(r.Context(), categoryID, page, pageSize, sortBy, sortOrder)
	}

	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Get handles fetching one product
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.products.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Update handles product updates
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	_, product, ok := h.decode(w, r)
	if !ok {
		return
	}

	product.ID = id
	product.UpdatedAt = time.Now()

	if err := h.products.Update(r.Context(), product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete handles product deletion
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
