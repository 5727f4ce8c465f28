package model

import "github.com/google/uuid"

type UserRegistered struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

func (e UserRegistered) Type() string { return "UserRegistered" }

type UserLoggedIn struct {
	UserID uuid.UUID
}

func (e UserLoggedIn) Type() string { return "UserLoggedIn" }

type OrderCreated struct {
	OrderID uuid.UUID
	OwnerID uuid.UUID
}

func (e OrderCreated) Type() string { return "OrderCreated" }

type ItemAddedToOrder struct {
	OrderID uuid.UUID
	ItemID  uuid.UUID
}

func (e ItemAddedToOrder) Type() string { return "ItemAddedToOrder" }

type ItemRemovedFromOrder struct {
	OrderID uuid.UUID
	ItemID  uuid.UUID
}

func (e ItemRemovedFromOrder) Type() string { return "ItemRemovedFromOrder" }

type OrderFinalized struct {
	OrderID    uuid.UUID
	TotalCents int64
}

func (e OrderFinalized) Type() string { return "OrderFinalized" }

type OrderCancelled struct {
	OrderID uuid.UUID
}

func (e OrderCancelled) Type() string { return "OrderCancelled" }
