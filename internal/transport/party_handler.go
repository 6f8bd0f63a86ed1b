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
	"go.uber.org/zap"
)

// PartyRequest represents the client/supplier create/update payload
type PartyRequest struct {
	Name    string `json:"name" validate:"required"`
	RTN     string `json:"rtn"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// PartyHandler handles HTTP requests for clients and suppliers
type PartyHandler struct {
	clients   repository.ClientRepository
	suppliers repository.SupplierRepository
	logger    *zap.Logger
}

// NewPartyHandler creates a new PartyHandler
func NewPartyHandler(clients repository.ClientRepository, suppliers repository.SupplierRepository, logger *zap.Logger) *PartyHandler {
	return &PartyHandler{clients: clients, suppliers: suppliers, logger: logger}
}

// RegisterRoutes registers client and supplier routes
func (h *PartyHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/clients", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.CreateClient)
		r.Get("/", h.ListClients)
		r.Put("/{id}", h.UpdateClient)
		r.Delete("/{id}", h.DeleteClient)
	})

	r.Route("/api/suppliers", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.CreateSupplier)
		r.Get("/", h.ListSuppliers)
		r.Put("/{id}", h.UpdateSupplier)
		r.Delete("/{id}", h.DeleteSupplier)
	})
}

func (h *PartyHandler) decode(w http.ResponseWriter, r *http.Request) (*PartyRequest, bool) {
	var req PartyRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return nil, false
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	return &req, true
}

// CreateClient handles client creation
func (h *PartyHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	client := &domain.Client{
		ID:        uuid.New(),
		Name:      req.Name,
		RTN:       req.RTN,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}

	if err := h.clients.Create(r.Context(), client); err != nil {
		h.logger.Error("Failed to create client", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create client")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, client)
}

// ListClients returns all clients
func (h *PartyHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list clients", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list clients")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, clients)
}

// UpdateClient handles client updates
func (h *PartyHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	client := &domain.Client{
		ID:      id,
		Name:    req.Name,
		RTN:     req.RTN,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if err := h.clients.Update(r.Context(), client); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "client not found")
			return
		}
		h.logger.Error("Failed to update client", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update client")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, client)
}

// DeleteClient handles client deletion
func (h *PartyHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	if err := h.clients.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "client not found")
			return
		}
		h.logger.Error("Failed to delete client", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete client")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "client deleted"})
}

// CreateSupplier handles supplier creation
func (h *PartyHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	supplier := &domain.Supplier{
		ID:        uuid.New(),
		Name:      req.Name,
		RTN:       req.RTN,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}

	if err := h.suppliers.Create(r.Context(), supplier); err != nil {
		h.logger.Error("Failed to create supplier", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create supplier")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, supplier)
}

// ListSuppliers returns all suppliers
func (h *PartyHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.suppliers.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list suppliers", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list suppliers")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, suppliers)
}

// UpdateSupplier handles supplier updates
func (h *PartyHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	supplier := &domain.Supplier{
		ID:      id,
		Name:    req.Name,
		RTN:     req.RTN,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if err := h.suppliers.Update(r.Context(), supplier); err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "supplier not found")
			return
		}
		h.logger.Error("Failed to update supplier", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update supplier")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, supplier)
}

// DeleteSupplier handles supplier deletion
func (h *PartyHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}

	if err := h.suppliers.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "supplier not found")
			return
		}
		h.logger.Error("Failed to delete supplier", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete supplier")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "supplier deleted"})
}
