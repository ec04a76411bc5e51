package entity

import "time"

// Event types recorded by the catalog aggregates. Payload fields are
// exported so the dispatcher can marshal them onto the broker.

type ProductCreated struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	At        time.Time `json:"at"`
}

func (e ProductCreated) EventName() string     { return "catalog.product.created" }
func (e ProductCreated) OccurredAt() time.Time { return e.At }

type CategoryCreated struct {
	CategoryID string    `json:"category_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	ParentID   *string   `json:"parent_id,omitempty"`
	At         time.Time `json:"at"`
}

func (e CategoryCreated) EventName() string     { return "catalog.category.created" }
func (e CategoryCreated) OccurredAt() time.Time { return e.At }

type CategoryDeleted struct {
	CategoryID string    `json:"category_id"`
	Slug       string    `json:"slug"`
	At         time.Time `json:"at"`
}

func (e CategoryDeleted) EventName() string     { return "catalog.category.deleted" }
func (e CategoryDeleted) OccurredAt() time.Time { return e.At }
