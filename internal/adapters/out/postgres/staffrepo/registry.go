package staffrepo

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormActorRegistry implements ports.ActorRegistry against the staff table.
type GormActorRegistry struct {
	db *gorm.DB
}

// NewGormActorRegistry creates a registry over the given connection.
func NewGormActorRegistry(db *gorm.DB) *GormActorRegistry {
	return &GormActorRegistry{db: db}
}

// Resolve returns the staff record for the given id, or an error wrapping
// ports.ErrUnknownActor when no such staff member exists.
func (r *GormActorRegistry) Resolve(ctx context.Context, id kernel.UUID) (ports.Actor, error) {
	if err := id.Validate(); err != nil {
		return ports.Actor{}, err
	}

	var dto StaffDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Actor{}, fmt.Errorf("%w: %s", ports.ErrUnknownActor, id)
		}
		return ports.Actor{}, fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}

	actorID, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Actor{}, err
	}

	return ports.Actor{
		ID:   actorID,
		Name: dto.Name,
		Role: ports.Role(dto.Role),
	}, nil
}

// Register inserts or updates a staff member. Used by the composition root
// to seed the directory from configuration.
func (r *GormActorRegistry) Register(ctx context.Context, actor ports.Actor) error {
	if err := actor.ID.Validate(); err != nil {
		return err
	}

	dto := StaffDTO{
		ID:   actor.ID.Bytes(),
		Name: actor.Name,
		Role: string(actor.Role),
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "role"}),
		}).
		Create(&dto).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}
	return nil
}
