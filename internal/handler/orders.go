package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"travio-api/internal/model"
	"travio-api/internal/orders"
	"travio-api/pkg/apierror"
	"travio-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// OrdersHandler exposes the order list and the user profile.
type OrdersHandler struct {
	store *orders.Store
}

// NewOrdersHandler creates a new orders handler.
func NewOrdersHandler(store *orders.Store) *OrdersHandler {
	return &OrdersHandler{store: store}
}

// ListOrders handles GET /api/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.store.Orders())
}

type createOrderRequest struct {
	Kind         model.OrderKind `json:"type"`
	Title        string          `json:"title"`
	Subtitle     string          `json:"subtitle"`
	PricePerUnit float64         `json:"pricePerUnit"`
	TotalPrice   float64         `json:"totalPrice"`
	DateRange    string          `json:"dateRange"`
	DurationInfo string          `json:"durationInfo"`
	Image        string          `json:"image"`
}

func (req *createOrderRequest) validate() []apierror.FieldError {
	var details []apierror.FieldError
	if !req.Kind.Valid() {
		details = append(details, apierror.FieldError{Field: "type", Message: "must be FLIGHT, HOTEL, or RENTAL"})
	}
	if strings.TrimSpace(req.Title) == "" {
		details = append(details, apierror.FieldError{Field: "title", Message: "is required"})
	}
	if req.TotalPrice <= 0 {
		details = append(details, apierror.FieldError{Field: "totalPrice", Message: "must be positive"})
	}
	return details
}

// CreateOrder handles POST /api/orders
func (h *OrdersHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if details := req.validate(); len(details) > 0 {
		response.Error(w, apierror.ValidationError("invalid order", details...))
		return
	}

	order := h.store.AddOrder(r.Context(), orders.AddOrderInput{
		Kind:         req.Kind,
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		PricePerUnit: req.PricePerUnit,
		TotalPrice:   req.TotalPrice,
		DateRange:    req.DateRange,
		DurationInfo: req.DurationInfo,
		Image:        req.Image,
	})

	response.Created(w, order)
}

type updateStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

type updateStatusResponse struct {
	ID      string `json:"id"`
	Ignored bool   `json:"ignored"`
}

// UpdateOrderStatus handles PATCH /api/orders/{id}/status
//
// An unknown id is reported as ignored rather than as an error: the store
// drops unknown-order transitions silently and the HTTP surface mirrors
// that contract.
func (h *OrdersHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	if !req.Status.Terminal() {
		response.Error(w, apierror.ValidationError("invalid status",
			apierror.FieldError{Field: "status", Message: "must be success or cancelled"}))
		return
	}

	found := h.store.UpdateOrderStatus(r.Context(), id, req.Status)
	response.OK(w, updateStatusResponse{ID: id, Ignored: !found})
}

// GetProfile handles GET /api/profile
func (h *OrdersHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.store.User())
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateProfile handles PUT /api/profile
func (h *OrdersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid JSON body"))
		return
	}

	var details []apierror.FieldError
	if strings.TrimSpace(req.Name) == "" {
		details = append(details, apierror.FieldError{Field: "name", Message: "is required"})
	}
	if !strings.Contains(req.Email, "@") {
		details = append(details, apierror.FieldError{Field: "email", Message: "must be a valid address"})
	}
	if len(details) > 0 {
		response.Error(w, apierror.ValidationError("invalid profile", details...))
		return
	}

	response.OK(w, h.store.UpdateUserProfile(r.Context(), req.Name, req.Email))
}
