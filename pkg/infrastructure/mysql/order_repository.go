package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"pizzeria/pkg/domain/model"
)

func NewOrderRepository(db *sqlx.DB) model.OrderRepository {
	return &orderRepository{db: db}
}

type orderRepository struct {
	db *sqlx.DB
}

type orderRow struct {
	ID         string    `db:"id"`
	OwnerID    string    `db:"owner_id"`
	Status     int       `db:"status"`
	TotalCents int64     `db:"total_cents"`
	Version    int       `db:"version"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type itemRow struct {
	ID             string `db:"id"`
	OrderID        string `db:"order_id"`
	Quantity       int    `db:"quantity"`
	Flavor         string `db:"flavor"`
	Size           string `db:"size"`
	UnitPriceCents int64  `db:"unit_price_cents"`
}

func (r *orderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *orderRepository) Create(order *model.Order) error {
	const query = `
		INSERT INTO orders (id, owner_id, status, total_cents, version, created_at, updated_at)
		VALUES (:id, :owner_id, :status, :total_cents, :version, :created_at, :updated_at)`

	_, err := r.db.NamedExec(query, toOrderRow(order))
	return errors.Wrap(err, "insert order")
}

func (r *orderRepository) Find(id uuid.UUID) (*model.Order, error) {
	var row orderRow
	if err := r.db.Get(&row, `SELECT * FROM orders WHERE id = ?`, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "select order")
	}

	order, err := fromOrderRow(&row)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Update persists the order header and rewrites its item set in one
// transaction, guarded by the version column so that racing mutations of the
// same order cannot overwrite each other's totals.
func (r *orderRepository) Update(order *model.Order) error {
	return withTx(r.db, func(tx *sqlx.Tx) error {
		const query = `
			UPDATE orders
			SET status = ?, total_cents = ?, version = ?, updated_at = ?
			WHERE id = ? AND version = ?`

		res, err := tx.Exec(query,
			int(order.Status), order.TotalCents, order.Version, order.UpdatedAt,
			order.ID.String(), order.Version-1,
		)
		if err != nil {
			return errors.Wrap(err, "update order")
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "update order rows affected")
		}
		if affected == 0 {
			var exists int
			if err := tx.Get(&exists, `SELECT 1 FROM orders WHERE id = ?`, order.ID.String()); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return model.ErrOrderNotFound
				}
				return errors.Wrap(err, "check order existence")
			}
			return model.ErrOptimisticLock
		}

		if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, order.ID.String()); err != nil {
			return errors.Wrap(err, "delete order items")
		}

		const insertItem = `
			INSERT INTO order_items (id, order_id, quantity, flavor, size, unit_price_cents)
			VALUES (:id, :order_id, :quantity, :flavor, :size, :unit_price_cents)`
		for _, item := range order.Items {
			if _, err := tx.NamedExec(insertItem, toItemRow(order.ID, &item)); err != nil {
				return errors.Wrap(err, "insert order item")
			}
		}

		return nil
	})
}

func (r *orderRepository) FindByOwner(ownerID uuid.UUID) ([]model.Order, error) {
	return r.list(`SELECT * FROM orders WHERE owner_id = ? ORDER BY created_at`, ownerID.String())
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	return r.list(`SELECT * FROM orders ORDER BY created_at`)
}

func (r *orderRepository) list(query string, args ...interface{}) ([]model.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select orders")
	}

	orders := make([]model.Order, 0, len(rows))
	for i := range rows {
		order, err := fromOrderRow(&rows[i])
		if err != nil {
			return nil, err
		}
		if err := r.loadItems(order); err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (r *orderRepository) loadItems(order *model.Order) error {
	var rows []itemRow
	err := r.db.Select(&rows, `SELECT * FROM order_items WHERE order_id = ?`, order.ID.String())
	if err != nil {
		return errors.Wrap(err, "select order items")
	}

	for i := range rows {
		item, err := fromItemRow(&rows[i])
		if err != nil {
			return err
		}
		order.Items = append(order.Items, *item)
	}
	return nil
}

func toOrderRow(order *model.Order) *orderRow {
	return &orderRow{
		ID:         order.ID.String(),
		OwnerID:    order.OwnerID.String(),
		Status:     int(order.Status),
		TotalCents: order.TotalCents,
		Version:    order.Version,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

func fromOrderRow(row *orderRow) (*model.Order, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse order id")
	}
	ownerID, err := uuid.Parse(row.OwnerID)
	if err != nil {
		return nil, errors.Wrap(err, "parse order owner id")
	}
	return &model.Order{
		ID:         id,
		OwnerID:    ownerID,
		Status:     model.OrderStatus(row.Status),
		TotalCents: row.TotalCents,
		Version:    row.Version,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func toItemRow(orderID uuid.UUID, item *model.Item) *itemRow {
	return &itemRow{
		ID:             item.ID.String(),
		OrderID:        orderID.String(),
		Quantity:       item.Quantity,
		Flavor:         item.Flavor,
		Size:           item.Size,
		UnitPriceCents: item.UnitPriceCents,
	}
}

func fromItemRow(row *itemRow) (*model.Item, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, errors.Wrap(err, "parse item id")
	}
	return &model.Item{
		ID:             id,
		Quantity:       row.Quantity,
		Flavor:         row.Flavor,
		Size:           row.Size,
		UnitPriceCents: row.UnitPriceCents,
	}, nil
}
