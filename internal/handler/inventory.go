package handler

import (
	"errors"
	"net/http"
	"strconv"

	"travio-api/internal/api"
	"travio-api/internal/inventory"
	"travio-api/internal/model"
	"travio-api/pkg/apierror"
	"travio-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// DataSourceHeader reports whether a catalog response was answered live or
// from the offline snapshot, so the UI can show an offline notice without
// the data contract changing.
const DataSourceHeader = "X-Data-Source"

// InventoryHandler serves the three catalogs to the presentation layer.
type InventoryHandler struct {
	flights *inventory.Catalog[model.Flight]
	hotels  *inventory.Catalog[model.Hotel]
	rentals *inventory.Catalog[model.Rental]
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(
	flights *inventory.Catalog[model.Flight],
	hotels *inventory.Catalog[model.Hotel],
	rentals *inventory.Catalog[model.Rental],
) *InventoryHandler {
	return &InventoryHandler{
		flights: flights,
		hotels:  hotels,
		rentals: rentals,
	}
}

// ListFlights handles GET /api/flights
func (h *InventoryHandler) ListFlights(w http.ResponseWriter, r *http.Request) {
	listCatalog(w, r, h.flights)
}

// GetFlight handles GET /api/flights/{id}
func (h *InventoryHandler) GetFlight(w http.ResponseWriter, r *http.Request) {
	getCatalogItem(w, r, h.flights)
}

// ListHotels handles GET /api/hotels
func (h *InventoryHandler) ListHotels(w http.ResponseWriter, r *http.Request) {
	listCatalog(w, r, h.hotels)
}

// GetHotel handles GET /api/hotels/{id}
func (h *InventoryHandler) GetHotel(w http.ResponseWriter, r *http.Request) {
	getCatalogItem(w, r, h.hotels)
}

// ListRentals handles GET /api/rentals
func (h *InventoryHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	listCatalog(w, r, h.rentals)
}

// GetRental handles GET /api/rentals/{id}
func (h *InventoryHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	getCatalogItem(w, r, h.rentals)
}

func listCatalog[T model.InventoryItem](w http.ResponseWriter, r *http.Request, cat *inventory.Catalog[T]) {
	items, src, err := cat.ListAll(r.Context())
	if err != nil {
		response.Error(w, catalogError(err))
		return
	}

	w.Header().Set(DataSourceHeader, src.String())
	response.OK(w, items)
}

func getCatalogItem[T model.InventoryItem](w http.ResponseWriter, r *http.Request, cat *inventory.Catalog[T]) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, apierror.BadRequest("id must be an integer"))
		return
	}

	item, src, err := cat.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, catalogError(err))
		return
	}

	w.Header().Set(DataSourceHeader, src.String())
	response.OK(w, item)
}

// catalogError maps catalog failures to the HTTP error taxonomy.
func catalogError(err error) error {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		return apierror.NotFound(err.Error())
	case errors.Is(err, api.ErrFetchFailed):
		return apierror.FetchFailed("")
	default:
		return apierror.InternalError("")
	}
}
