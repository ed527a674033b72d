package model

// InventoryItem is the constraint shared by all bookable catalog items.
// Items are owned by the remote inventory provider; the client only reads
// and caches copies.
type InventoryItem interface {
	ItemID() int
}

// Flight represents a bookable flight as returned by the remote API.
type Flight struct {
	ID            int     `json:"id"`
	Airline       string  `json:"airline"`
	DepartureCity string  `json:"departure_city"`
	ArrivalCity   string  `json:"arrival_city"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Price         float64 `json:"price"`
	Duration      string  `json:"duration"`
	ImageURL      string  `json:"image_url"`
}

// ItemID returns the provider-assigned flight identifier.
func (f Flight) ItemID() int { return f.ID }

// HotelLocation is a city/country entry attached to a hotel.
type HotelLocation struct {
	ID        int     `json:"id"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	HotelID   int     `json:"hotel_id"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// HotelFacility is a single named amenity of a hotel.
type HotelFacility struct {
	Facility string `json:"facility"`
}

// Hotel represents a bookable hotel as returned by the remote API.
type Hotel struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Rating        float64         `json:"rating"`
	PricePerNight float64         `json:"price_per_night"`
	ImageURL      string          `json:"image_url"`
	Locations     []HotelLocation `json:"hotel_locations"`
	Facilities    []HotelFacility `json:"hotel_facilities"`
}

// ItemID returns the provider-assigned hotel identifier.
func (h Hotel) ItemID() int { return h.ID }

// RentalLocation is a city/country entry attached to a rental offer.
type RentalLocation struct {
	ID       int    `json:"id"`
	City     string `json:"city"`
	Country  string `json:"country"`
	RentalID int    `json:"rental_id"`
}

// Rental represents a bookable car rental as returned by the remote API.
type Rental struct {
	ID           int              `json:"id"`
	CompanyName  string           `json:"company_name"`
	CarModel     string           `json:"car_model"`
	PricePerDay  float64          `json:"price_per_day"`
	Availability string           `json:"availability"`
	ImageURL     string           `json:"image_url"`
	Locations    []RentalLocation `json:"rental_locations"`
}

// ItemID returns the provider-assigned rental identifier.
func (r Rental) ItemID() int { return r.ID }
