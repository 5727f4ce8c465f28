package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"pizzeria/pkg/domain/model"
	"pizzeria/pkg/domain/service"
)

var errBadRequest = errors.New("invalid request body")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrPasswordTooShort):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotAllowed):
		status = http.StatusForbidden
	case errors.Is(err, model.ErrOrderNotFound),
		errors.Is(err, model.ErrItemNotFound),
		errors.Is(err, model.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrEmailTaken),
		errors.Is(err, service.ErrOrderClosed),
		errors.Is(err, model.ErrOptimisticLock):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

type orderPayload struct {
	ID         string        `json:"id"`
	OwnerID    string        `json:"owner_id"`
	Status     string        `json:"status"`
	TotalCents int64         `json:"total_cents"`
	Items      []itemPayload `json:"items"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

type itemPayload struct {
	ID             string `json:"id"`
	Quantity       int    `json:"quantity"`
	Flavor         string `json:"flavor"`
	Size           string `json:"size"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

func toOrderPayload(order *model.Order) orderPayload {
	items := make([]itemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, itemPayload{
			ID:             item.ID.String(),
			Quantity:       item.Quantity,
			Flavor:         item.Flavor,
			Size:           item.Size,
			UnitPriceCents: item.UnitPriceCents,
		})
	}
	return orderPayload{
		ID:         order.ID.String(),
		OwnerID:    order.OwnerID.String(),
		Status:     order.Status.String(),
		TotalCents: order.TotalCents,
		Items:      items,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

func toOrderPayloads(orders []model.Order) []orderPayload {
	payloads := make([]orderPayload, 0, len(orders))
	for i := range orders {
		payloads = append(payloads, toOrderPayload(&orders[i]))
	}
	return payloads
}
