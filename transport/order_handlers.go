package transport

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"pizzeria/pkg/domain/model"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Create(actor(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":  "order created",
		"order_id": order.ID.String(),
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "ID", model.ErrOrderNotFound)
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.orders.Get(actor(r), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"item_count": len(order.Items),
		"order":      toOrderPayload(order),
	})
}

type addItemRequest struct {
	Quantity       int    `json:"quantity"`
	Flavor         string `json:"flavor"`
	Size           string `json:"size"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "ID", model.ErrOrderNotFound)
	if err != nil {
		writeError(w, err)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errBadRequest)
		return
	}

	itemID, order, err := h.orders.AddItem(actor(r), orderID, req.Quantity, req.Flavor, req.Size, req.UnitPriceCents)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"item_id":     itemID.String(),
		"total_cents": order.TotalCents,
	})
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "ID", model.ErrOrderNotFound)
	if err != nil {
		writeError(w, err)
		return
	}
	itemID, err := pathID(r, "itemID", model.ErrItemNotFound)
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.orders.RemoveItem(actor(r), orderID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_cents":     order.TotalCents,
		"remaining_items": len(order.Items),
	})
}

func (h *Handler) finalizeOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.Finalize)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.Cancel)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op func(*model.User, uuid.UUID) (*model.Order, error)) {
	orderID, err := pathID(r, "ID", model.ErrOrderNotFound)
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := op(actor(r), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order": toOrderPayload(order),
	})
}

func (h *Handler) listOwnOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOwnOrders(actor(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": toOrderPayloads(orders),
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(actor(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": toOrderPayloads(orders),
	})
}

// pathID parses a uuid path variable; a malformed id cannot refer to any
// stored record, so it reports the caller's not-found error.
func pathID(r *http.Request, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}
