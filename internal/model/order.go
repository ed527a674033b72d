package model

import "net/url"

// OrderKind tags which catalog an order was booked from.
type OrderKind string

const (
	OrderKindFlight OrderKind = "FLIGHT"
	OrderKindHotel  OrderKind = "HOTEL"
	OrderKindRental OrderKind = "RENTAL"
)

// Valid reports whether the kind is one of the known catalogs.
func (k OrderKind) Valid() bool {
	switch k {
	case OrderKindFlight, OrderKindHotel, OrderKindRental:
		return true
	}
	return false
}

// OrderStatus is the lifecycle state of an order.
// Orders start pending; success and cancelled are terminal in practice
// but no transition rule is enforced.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusSuccess   OrderStatus = "success"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Terminal reports whether the status is an allowed transition target.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusSuccess || s == OrderStatusCancelled
}

// Order is a user's booking of a single inventory item.
type Order struct {
	ID           string      `json:"id"`
	Kind         OrderKind   `json:"type"`
	Title        string      `json:"title"`
	Subtitle     string      `json:"subtitle"`
	PricePerUnit float64     `json:"pricePerUnit"`
	TotalPrice   float64     `json:"totalPrice"`
	DateRange    string      `json:"dateRange"`
	DurationInfo string      `json:"durationInfo,omitempty"`
	Status       OrderStatus `json:"status"`
	Image        string      `json:"image"`
}

// MemberLevel is the loyalty tier shown on the profile page.
type MemberLevel string

const (
	MemberLevelClassic  MemberLevel = "Classic"
	MemberLevelSilver   MemberLevel = "Silver"
	MemberLevelGold     MemberLevel = "Gold"
	MemberLevelPlatinum MemberLevel = "Platinum"
)

// UserProfile is the single local user identity.
type UserProfile struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Avatar      string      `json:"avatar"`
	MemberLevel MemberLevel `json:"memberLevel"`
}

const avatarBaseURL = "https://api.dicebear.com/9.x/avataaars/svg?seed="

// AvatarURL derives the avatar image reference from a display name.
// The avatar is never set independently of the name.
func AvatarURL(name string) string {
	return avatarBaseURL + url.QueryEscape(name)
}

// DefaultProfile returns the identity seeded on first use, before the user
// has ever edited their profile.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:        "Carlos Sirait",
		Email:       "carlos@students.undip.ac.id",
		Avatar:      AvatarURL("Rizky"),
		MemberLevel: MemberLevelGold,
	}
}
