package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"github.com/jaideep-27/shophub/internal/cart"
	"github.com/jaideep-27/shophub/internal/middleware"
	"github.com/jaideep-27/shophub/internal/repository"
	"github.com/jaideep-27/shophub/internal/service"
	"github.com/jaideep-27/shophub/internal/session"
)

// CartHandler handles session and cart HTTP requests
type CartHandler struct {
	cartService *service.CartService
	log         *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		log:         log,
	}
}

// AddItemRequest is the body of POST /api/cart/items
type AddItemRequest struct {
	ProductID string `json:"productId"`
}

// SessionResponse is returned when a session starts
type SessionResponse struct {
	SessionID string `json:"sessionId"`
}

// StartSession handles POST /api/sessions
func (h *CartHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	id := h.cartService.StartSession()
	WriteJSON(w, http.StatusCreated, SessionResponse{SessionID: id}, h.log)
}

// EndSession handles DELETE /api/sessions
func (h *CartHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.EndSession(middleware.SessionID(r.Context())); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.cartService.GetCart(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, view, h.log)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode add item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	view, err := h.cartService.AddItem(r.Context(), middleware.SessionID(r.Context()), req.ProductID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, view, h.log)
}

// RemoveItem handles DELETE /api/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	view, err := h.cartService.RemoveItem(r.Context(), middleware.SessionID(r.Context()), productID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, view, h.log)
}

// GetSummary handles GET /api/cart/summary
func (h *CartHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cartService.Summary(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary, h.log)
}

func (h *CartHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrProductRequired):
		WriteError(w, http.StatusBadRequest, "Product ID is required", h.log)
	case errors.Is(err, cart.ErrInvalidProduct):
		WriteError(w, http.StatusBadRequest, "Invalid product", h.log)
	case errors.Is(err, repository.ErrProductNotFound):
		WriteError(w, http.StatusNotFound, "Product not found", h.log)
	case errors.Is(err, session.ErrSessionNotFound):
		WriteError(w, http.StatusNotFound, "Session not found", h.log)
	default:
		h.log.Error("cart operation failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}
