package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// allowedTransitions is the forward transition table. Cancelled is
// reachable from any non-terminal state; delivered and cancelled are
// terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered, StatusCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether target is reachable from s.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// PaymentMethod is the checkout payment selector.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCOD  PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentCOD
}

// GeoPoint is an optional delivery coordinate captured at checkout.
type GeoPoint struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// OrderItem is a snapshot of a cart line at order time. Name and Price
// are copied from the product, not referenced, so later catalog edits
// never change historical orders.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Name      string             `json:"name" bson:"name"`
	Price     float64            `json:"price" bson:"price"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Size      string             `json:"size" bson:"size"`
	Color     string             `json:"color" bson:"color"`
}

// Order is a placed order with its immutable line snapshot.
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id"`
	Items           []OrderItem        `json:"items" bson:"items"`
	Subtotal        float64            `json:"subtotal" bson:"subtotal"`
	Shipping        float64            `json:"shipping" bson:"shipping"`
	Tax             float64            `json:"tax" bson:"tax"`
	Total           float64            `json:"total" bson:"total"`
	Status          OrderStatus        `json:"status" bson:"status"`
	ShippingAddress string             `json:"shipping_address" bson:"shipping_address"`
	PaymentMethod   PaymentMethod      `json:"payment_method" bson:"payment_method"`
	Coordinates     *GeoPoint          `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	TrackingID      string             `json:"tracking_id" bson:"tracking_id"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// OrderWithBuyer is an order joined with the buyer's display fields,
// used by the admin listings.
type OrderWithBuyer struct {
	Order      `bson:",inline"`
	BuyerName  string `json:"buyer_name" bson:"buyer_name"`
	BuyerEmail string `json:"buyer_email" bson:"buyer_email"`
}
