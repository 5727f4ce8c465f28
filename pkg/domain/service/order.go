package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"pizzeria/pkg/domain/model"
)

var (
	ErrOrderClosed     = errors.New("order is no longer open for changes")
	ErrInvalidQuantity = errors.New("item quantity must be a positive integer")
	ErrNegativePrice   = errors.New("item unit price cannot be negative")
	ErrNotAllowed      = errors.New("user is not allowed to access this order")
)

type OrderService interface {
	Create(actor *model.User) (*model.Order, error)
	Get(actor *model.User, orderID uuid.UUID) (*model.Order, error)
	AddItem(actor *model.User, orderID uuid.UUID, quantity int, flavor, size string, unitPriceCents int64) (uuid.UUID, *model.Order, error)
	RemoveItem(actor *model.User, orderID, itemID uuid.UUID) (*model.Order, error)
	Finalize(actor *model.User, orderID uuid.UUID) (*model.Order, error)
	Cancel(actor *model.User, orderID uuid.UUID) (*model.Order, error)
	ListOwnOrders(actor *model.User) ([]model.Order, error)
	ListOrders(actor *model.User) ([]model.Order, error)
}

func NewOrderService(repo model.OrderRepository, dispatcher EventDispatcher) OrderService {
	return &orderService{repo: repo, dispatcher: dispatcher}
}

type orderService struct {
	repo       model.OrderRepository
	dispatcher EventDispatcher
}

func (s *orderService) Create(actor *model.User) (*model.Order, error) {
	orderID, err := s.repo.NextID()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &model.Order{
		ID:        orderID,
		OwnerID:   actor.ID,
		Status:    model.Pending,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(order); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.OrderCreated{OrderID: orderID, OwnerID: actor.ID})
	return order, nil
}

func (s *orderService) Get(actor *model.User, orderID uuid.UUID) (*model.Order, error) {
	return s.findForActor(actor, orderID)
}

func (s *orderService) AddItem(actor *model.User, orderID uuid.UUID, quantity int, flavor, size string, unitPriceCents int64) (uuid.UUID, *model.Order, error) {
	if quantity <= 0 {
		return uuid.Nil, nil, ErrInvalidQuantity
	}
	if unitPriceCents < 0 {
		return uuid.Nil, nil, ErrNegativePrice
	}

	order, err := s.findForActor(actor, orderID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if order.Status != model.Pending {
		return uuid.Nil, nil, ErrOrderClosed
	}

	itemID, err := s.repo.NextID()
	if err != nil {
		return uuid.Nil, nil, err
	}

	order.Items = append(order.Items, model.Item{
		ID:             itemID,
		Quantity:       quantity,
		Flavor:         flavor,
		Size:           size,
		UnitPriceCents: unitPriceCents,
	})
	s.recalculateTotal(order)

	if err := s.updateOrder(order); err != nil {
		return uuid.Nil, nil, err
	}

	_ = s.dispatcher.Dispatch(model.ItemAddedToOrder{OrderID: orderID, ItemID: itemID})
	return itemID, order, nil
}

func (s *orderService) RemoveItem(actor *model.User, orderID, itemID uuid.UUID) (*model.Order, error) {
	order, err := s.findForActor(actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.Pending {
		return nil, ErrOrderClosed
	}

	itemIndex := -1
	for i, item := range order.Items {
		if item.ID == itemID {
			itemIndex = i
			break
		}
	}
	if itemIndex == -1 {
		return nil, model.ErrItemNotFound
	}

	order.Items = append(order.Items[:itemIndex], order.Items[itemIndex+1:]...)
	s.recalculateTotal(order)

	if err := s.updateOrder(order); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ItemRemovedFromOrder{OrderID: orderID, ItemID: itemID})
	return order, nil
}

func (s *orderService) Finalize(actor *model.User, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.findForActor(actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, ErrOrderClosed
	}

	order.Status = model.Finalized
	if err := s.updateOrder(order); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.OrderFinalized{OrderID: orderID, TotalCents: order.TotalCents})
	return order, nil
}

func (s *orderService) Cancel(actor *model.User, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.findForActor(actor, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, ErrOrderClosed
	}

	order.Status = model.Cancelled
	if err := s.updateOrder(order); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.OrderCancelled{OrderID: orderID})
	return order, nil
}

func (s *orderService) ListOwnOrders(actor *model.User) ([]model.Order, error) {
	return s.repo.FindByOwner(actor.ID)
}

func (s *orderService) ListOrders(actor *model.User) ([]model.Order, error) {
	if !actor.Admin {
		return nil, ErrNotAllowed
	}
	return s.repo.FindAll()
}

// findForActor resolves the order before checking access, so a missing order
// reports not-found regardless of who asks.
func (s *orderService) findForActor(actor *model.User, orderID uuid.UUID) (*model.Order, error) {
	order, err := s.repo.Find(orderID)
	if err != nil {
		return nil, err
	}
	if !actor.Admin && actor.ID != order.OwnerID {
		return nil, ErrNotAllowed
	}
	return order, nil
}

func (s *orderService) recalculateTotal(order *model.Order) {
	var total int64
	for _, item := range order.Items {
		total += int64(item.Quantity) * item.UnitPriceCents
	}
	order.TotalCents = total
}

func (s *orderService) updateOrder(order *model.Order) error {
	order.Version++
	order.UpdatedAt = time.Now().UTC()
	return s.repo.Update(order)
}
