// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The aggregate is stored across four tables: the order
// row itself, its items, and the command and snapshot tables that make up
// the audit history.
package orderrepo

import (
	"encoding/json"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;index"`
	WaiterID      uuid.UUID `gorm:"type:uuid;index"`
	TableNumber   int
	Status        string `gorm:"type:varchar(32);index"`
	Version       int64
	RoutedVersion int64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items     []ItemDTO     `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	Commands  []CommandDTO  `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
	Snapshots []SnapshotDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one line of an order. ItemIndex preserves the original
// position so routing assignments stay stable across round trips.
type ItemDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemIndex      int       `gorm:"primaryKey"`
	ProductID      int64
	Quantity       int
	UnitPriceCents int64
	Extras         string `gorm:"type:jsonb"`
}

// TableName specifies the database table name for order items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// CommandDTO is one entry of an order's command log. CommandID equals the
// aggregate version the command produced.
type CommandDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CommandID   int64     `gorm:"primaryKey;column:command_id"`
	CommandType string    `gorm:"type:varchar(32)"`
	ActorID     uuid.UUID `gorm:"type:uuid"`
	Payload     string
	Undoes      int64
	ExecutedAt  time.Time
}

// TableName specifies the database table name for order commands.
func (CommandDTO) TableName() string {
	return "order_commands"
}

// SnapshotDTO is the memento captured by a command: the status and item
// list the command left behind, serialized as JSON.
type SnapshotDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CommandID int64     `gorm:"primaryKey;column:command_id"`
	Status    string    `gorm:"type:varchar(32)"`
	Items     string    `gorm:"type:jsonb"`
	Version   int64
	TakenAt   time.Time
}

// TableName specifies the database table name for order snapshots.
func (SnapshotDTO) TableName() string {
	return "order_snapshots"
}

// itemJSON is the JSON shape items take inside snapshot blobs and the
// extras column.
type itemJSON struct {
	ProductID      int64          `json:"product_id"`
	Quantity       int            `json:"quantity"`
	UnitPriceCents int64          `json:"unit_price_cents"`
	Extras         map[string]any `json:"extras,omitempty"`
}

func encodeExtras(extras order.Extras) (string, error) {
	if len(extras) == 0 {
		return "{}", nil
	}

	raw := make(map[string]any, len(extras))
	for key, value := range extras {
		raw[key] = value.Raw()
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeExtras(data string) (order.Extras, error) {
	if data == "" || data == "{}" {
		return nil, nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, err
	}
	return order.NewExtras(raw)
}

func encodeItems(items []order.Item) (string, error) {
	blobs := make([]itemJSON, 0, len(items))
	for _, item := range items {
		blob := itemJSON{
			ProductID:      item.ProductID(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
		}
		if extras := item.Extras(); len(extras) > 0 {
			blob.Extras = make(map[string]any, len(extras))
			for key, value := range extras {
				blob.Extras[key] = value.Raw()
			}
		}
		blobs = append(blobs, blob)
	}

	data, err := json.Marshal(blobs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeItems(data string) ([]order.Item, error) {
	var blobs []itemJSON
	if err := json.Unmarshal([]byte(data), &blobs); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(blobs))
	for _, blob := range blobs {
		extras, err := order.NewExtras(blob.Extras)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(blob.ProductID, blob.Quantity, blob.UnitPriceCents, extras)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// fromDomain converts an order domain aggregate to its database
// representation, including the full command and snapshot history.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	orderID := aggregate.ID().Bytes()

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for idx, item := range aggregate.Items() {
		extras, err := encodeExtras(item.Extras())
		if err != nil {
			return OrderDTO{}, err
		}
		items = append(items, ItemDTO{
			OrderID:        orderID,
			ItemIndex:      idx,
			ProductID:      item.ProductID(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPriceCents(),
			Extras:         extras,
		})
	}

	history := aggregate.History()
	commands := make([]CommandDTO, 0, len(history))
	snapshots := make([]SnapshotDTO, 0, len(history))
	for _, entry := range history {
		commands = append(commands, CommandDTO{
			OrderID:     orderID,
			CommandID:   entry.Command.ID,
			CommandType: entry.Command.Type.String(),
			ActorID:     entry.Command.Actor.Bytes(),
			Payload:     entry.Command.Payload,
			Undoes:      entry.Command.Undoes,
			ExecutedAt:  entry.Command.ExecutedAt,
		})

		snapshotItems, err := encodeItems(entry.Snapshot.Items)
		if err != nil {
			return OrderDTO{}, err
		}
		snapshots = append(snapshots, SnapshotDTO{
			OrderID:   orderID,
			CommandID: entry.Snapshot.CommandID,
			Status:    entry.Snapshot.Status.String(),
			Items:     snapshotItems,
			Version:   entry.Snapshot.Version,
			TakenAt:   entry.Snapshot.TakenAt,
		})
	}

	return OrderDTO{
		ID:            orderID,
		CustomerID:    aggregate.CustomerID().Bytes(),
		WaiterID:      aggregate.WaiterID().Bytes(),
		TableNumber:   aggregate.TableNumber(),
		Status:        aggregate.Status().String(),
		Version:       aggregate.Version(),
		RoutedVersion: aggregate.RoutedVersion(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
		Items:         items,
		Commands:      commands,
		Snapshots:     snapshots,
	}, nil
}

// toDomain converts database DTOs back into an order aggregate. Commands
// and snapshots are paired by command id to rebuild the history; they are
// written together, so an unpaired command means corrupted storage.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	waiterID, err := kernel.UUIDFromBytes(dto.WaiterID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromLabel(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		extras, extrasErr := decodeExtras(itemDTO.Extras)
		if extrasErr != nil {
			return nil, extrasErr
		}
		item, itemErr := order.NewItem(
			itemDTO.ProductID, itemDTO.Quantity, itemDTO.UnitPriceCents, extras)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	snapshotsByID := make(map[int64]SnapshotDTO, len(dto.Snapshots))
	for _, snapshot := range dto.Snapshots {
		snapshotsByID[snapshot.CommandID] = snapshot
	}

	history := make([]order.HistoryEntry, 0, len(dto.Commands))
	for _, cmd := range dto.Commands {
		actor, actorErr := kernel.UUIDFromBytes(cmd.ActorID[:])
		if actorErr != nil {
			return nil, actorErr
		}

		snapshotDTO, ok := snapshotsByID[cmd.CommandID]
		if !ok {
			return nil, errs.NewValueIsRequiredError("snapshot for command")
		}
		snapshotStatus, statusErr := order.StatusFromLabel(snapshotDTO.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		snapshotItems, itemsErr := decodeItems(snapshotDTO.Items)
		if itemsErr != nil {
			return nil, itemsErr
		}

		history = append(history, order.HistoryEntry{
			Command: order.Command{
				ID:         cmd.CommandID,
				Type:       order.CommandTypeFromName(cmd.CommandType),
				Actor:      actor,
				Payload:    cmd.Payload,
				Undoes:     cmd.Undoes,
				ExecutedAt: cmd.ExecutedAt,
			},
			Snapshot: order.Snapshot{
				OrderID:   id,
				Status:    snapshotStatus,
				Items:     snapshotItems,
				Version:   snapshotDTO.Version,
				CommandID: snapshotDTO.CommandID,
				TakenAt:   snapshotDTO.TakenAt,
			},
		})
	}

	return order.RestoreOrder(
		id,
		customerID,
		waiterID,
		dto.TableNumber,
		items,
		status,
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.RoutedVersion,
		history,
	)
}
