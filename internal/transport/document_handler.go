package transport

import (
	"errors"
	"fmt"
	"net/http"

	"comercio/internal/middleware"
	"comercio/internal/repository"
	"comercio/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LineRequest represents one requested document line
type LineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest represents the sale creation payload
type CreateSaleRequest struct {
	ClientID string        `json:"client_id" validate:"required,uuid"`
	Lines    []LineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CreatePurchaseRequest represents the purchase creation payload
type CreatePurchaseRequest struct {
	SupplierID string        `json:"supplier_id" validate:"required,uuid"`
	Lines      []LineRequest `json:"lines" validate:"required,min=1,dive"`
}

// DocumentHandler handles HTTP requests for sales and purchases
type DocumentHandler struct {
	documents service.DocumentService
	reports   service.ReportService
	logger    *zap.Logger
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documents service.DocumentService, reports service.ReportService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		reports:   reports,
		logger:    logger,
	}
}

// RegisterRoutes registers sales and purchase routes
func (h *DocumentHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/sales", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.CreateSale)
		r.Get("/", h.ListSales)
		r.Get("/{id}", h.GetSale)
		r.Delete("/{id}", h.DeleteSale)
		r.Get("/{id}/pdf", h.ExportSalePDF)
	})

	r.Route("/api/purchases", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.CreatePurchase)
		r.Get("/", h.ListPurchases)
		r.Delete("/{id}", h.DeletePurchase)
	})
}

func toDocumentInput(partyID string, lines []LineRequest) (service.CreateDocumentInput, error) {
	id, err := uuid.Parse(partyID)
	if err != nil {
		return service.CreateDocumentInput{}, fmt.Errorf("invalid party id: %w", err)
	}

	input := service.CreateDocumentInput{PartyID: id}
	for _, line := range lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return service.CreateDocumentInput{}, fmt.Errorf("invalid product id: %w", err)
		}
		input.Lines = append(input.Lines, service.DocumentLineInput{
			ProductID: productID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	return input, nil
}

// CreateSale handles sale posting
func (h *DocumentHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Sale validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := toDocumentInput(req.ClientID, req.Lines)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documents.CreateInvoice(r.Context(), input)
	if err != nil {
		h.respondPostingError(w, err, "sale")
		return
	}

	h.logger.Info("Sale posted",
		zap.String("invoice_id", doc.ID.String()),
		zap.String("client", doc.PartyName),
		zap.String("total", doc.Total.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, doc)
}

// CreatePurchase handles purchase posting
func (h *DocumentHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req CreatePurchaseRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Purchase validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input, err := toDocumentInput(req.SupplierID, req.Lines)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.documents.CreatePurchase(r.Context(), input)
	if err != nil {
		h.respondPostingError(w, err, "purchase")
		return
	}

	h.logger.Info("Purchase posted",
		zap.String("purchase_id", doc.ID.String()),
		zap.String("supplier", doc.PartyName),
		zap.String("total", doc.Total.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, doc)
}

// respondPostingError maps posting failures to HTTP statuses. Validation,
// unknown references and insufficient stock are client errors; everything
// else is a persistence failure.
func (h *DocumentHandler) respondPostingError(w http.ResponseWriter, err error, kind string) {
	var stockErr *service.InsufficientStockError

	switch {
	case errors.Is(err, service.ErrEmptyLines),
		errors.Is(err, service.ErrNonPositiveQuantity),
		errors.Is(err, service.ErrNegativeUnitPrice),
		errors.Is(err, repository.ErrClientNotFound),
		errors.Is(err, repository.ErrSupplierNotFound),
		errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())

	case errors.As(err, &stockErr):
		middleware.RespondWithError(w, http.StatusBadRequest, stockErr.Error())

	default:
		h.logger.Error("Failed to post document", zap.String("kind", kind), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to post "+kind)
	}
}

// ListSales returns all sales, newest first
func (h *DocumentHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.ListInvoices(r.Context())
	if err != nil {
		h.logger.Error("Failed to list sales", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list sales")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, docs)
}

// ListPurchases returns all purchases, newest first
func (h *DocumentHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.ListPurchases(r.Context())
	if err != nil {
		h.logger.Error("Failed to list purchases", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list purchases")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, docs)
}

// GetSale returns one sale with its lines
func (h *DocumentHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	doc, err := h.documents.GetInvoice(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "sale not found")
			return
		}
		h.logger.Error("Failed to get sale", zap.String("id", id.String()), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get sale")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, doc)
}

// DeleteSale reverses and removes a sale
func (h *DocumentHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	if err := h.documents.DeleteInvoice(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "sale not found")
			return
		}
		h.logger.Error("Failed to delete sale", zap.String("id", id.String()), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete sale")
		return
	}

	h.logger.Info("Sale deleted", zap.String("invoice_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "sale deleted"})
}

// DeletePurchase reverses and removes a purchase
func (h *DocumentHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}

	if err := h.documents.DeletePurchase(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "purchase not found")
			return
		}
		h.logger.Error("Failed to delete purchase", zap.String("id", id.String()), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete purchase")
		return
	}

	h.logger.Info("Purchase deleted", zap.String("purchase_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "purchase deleted"})
}

// ExportSalePDF renders a sale as a PDF document
func (h *DocumentHandler) ExportSalePDF(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	pdf, err := h.reports.RenderInvoicePDF(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "sale not found")
			return
		}
		h.logger.Error("Failed to render sale PDF", zap.String("id", id.String()), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to render sale PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
