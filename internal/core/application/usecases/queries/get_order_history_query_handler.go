package queries

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler reads an order's audit trail straight from
// the command and snapshot tables, bypassing aggregate reconstruction.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderHistoryQueryHandler creates a handler for audit trail queries.
func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when the order
// does not exist; an existing order always has at least its creation entry.
func (h GetOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderHistoryQuery,
) ([]GetOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]GetOrderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.command_id,
			c.command_type,
			c.actor_id,
			c.payload,
			c.undoes,
			s.status,
			c.executed_at
		FROM order_commands c
		JOIN order_snapshots s
			ON s.order_id = c.order_id AND s.command_id = c.command_id
		WHERE c.order_id = ?
		ORDER BY c.command_id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetOrderHistoryQueryResponse
		var actorID uuid.UUID

		err = rows.Scan(
			&entry.CommandID,
			&entry.Type,
			&actorID,
			&entry.Payload,
			&entry.Undoes,
			&entry.StatusAfter,
			&entry.ExecutedAt,
		)
		if err != nil {
			return nil, err
		}

		actor, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.Actor = actor

		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, errs.NewObjectNotFoundError("orderId", query.OrderID())
	}

	return entries, nil
}
