package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrItemNotFound   = errors.New("order item not found")
	ErrOptimisticLock = errors.New("order has been modified by another transaction")
)

type OrderStatus int

const (
	Pending OrderStatus = iota
	Finalized
	Cancelled
)

func (s OrderStatus) String() string {
	switch s {
	case Pending:
		return "PENDING"
	case Finalized:
		return "FINALIZED"
	case Cancelled:
		return "CANCELLED"
	}
	return "UNKNOWN"
}

// Terminal reports whether no further transition may leave this status.
func (s OrderStatus) Terminal() bool {
	return s == Finalized || s == Cancelled
}

type Order struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Status     OrderStatus
	Items      []Item
	TotalCents int64
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Item struct {
	ID             uuid.UUID
	Quantity       int
	Flavor         string
	Size           string
	UnitPriceCents int64
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	Create(order *Order) error
	Find(id uuid.UUID) (*Order, error)
	Update(order *Order) error
	FindByOwner(ownerID uuid.UUID) ([]Order, error)
	FindAll() ([]Order, error)
}
