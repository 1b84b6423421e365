// Package menusource loads the menu from the products table. It is the
// authoritative MenuSource the caching proxy sits in front of.
package menusource

import (
	"context"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/ports"

	"gorm.io/gorm"
)

// ProductDTO represents the database structure for menu products.
type ProductDTO struct {
	ID          int64 `gorm:"primaryKey"`
	Name        string
	Description string
	Category    string `gorm:"type:varchar(32);index"`
	PriceCents  int64
	Available   bool
}

// TableName specifies the database table name for products.
func (ProductDTO) TableName() string {
	return "products"
}

// GormMenuSource implements ports.MenuSource against the products table.
type GormMenuSource struct {
	db *gorm.DB
}

// NewGormMenuSource creates a source over the given connection.
func NewGormMenuSource(db *gorm.DB) *GormMenuSource {
	return &GormMenuSource{db: db}
}

// Load fetches every product and groups them into categories in the order
// they first appear, products sorted by name within a category.
func (s *GormMenuSource) Load(ctx context.Context) (menu.Menu, error) {
	var dtos []ProductDTO
	err := s.db.WithContext(ctx).Order("category, name").Find(&dtos).Error
	if err != nil {
		return menu.Menu{}, fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}

	loaded := menu.Menu{LoadedAt: time.Now()}
	index := make(map[string]int)
	for _, dto := range dtos {
		product := menu.Product{
			ID:          dto.ID,
			Name:        dto.Name,
			Description: dto.Description,
			Category:    dto.Category,
			PriceCents:  dto.PriceCents,
			Available:   dto.Available,
		}

		pos, ok := index[dto.Category]
		if !ok {
			pos = len(loaded.Categories)
			index[dto.Category] = pos
			loaded.Categories = append(loaded.Categories, menu.Category{Name: dto.Category})
		}
		loaded.Categories[pos].Products = append(loaded.Categories[pos].Products, product)
	}

	return loaded, nil
}

// Seed inserts products when the table is empty. Used by local development
// setups so a fresh database serves a usable menu.
func (s *GormMenuSource) Seed(ctx context.Context, products []menu.Product) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&ProductDTO{}).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}
	if count > 0 {
		return nil
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, ProductDTO{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			PriceCents:  p.PriceCents,
			Available:   p.Available,
		})
	}
	if len(dtos) == 0 {
		return nil
	}

	if err := s.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return fmt.Errorf("%w: %v", ports.ErrStorageUnavailable, err)
	}
	return nil
}
