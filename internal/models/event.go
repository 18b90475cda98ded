package models

import "time"

// Product event types.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// ProductEvent announces a completed catalog mutation.
type ProductEvent struct {
	Type       string    `json:"type"`
	ProductID  int       `json:"product_id"`
	Product    Product   `json:"product"`
	OccurredAt time.Time `json:"occurred_at"`
	Source     string    `json:"source,omitempty"` // instance that performed the mutation
}
