package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrMenuCategoryNotFound = errors.New("menu category not found")
	ErrMenuItemNotFound     = errors.New("menu item not found")
)

type MenuCategory struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`

	// No gorm default tag: a default would make gorm omit explicit false
	// values on insert.
	IsActive bool       `gorm:"not null"`
	Items    []MenuItem `gorm:"foreignKey:CategoryID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type MenuItem struct {
	ID          uint         `gorm:"primaryKey"`
	CategoryID  uint         `gorm:"not null;index"`
	Category    MenuCategory `gorm:"foreignKey:CategoryID"`
	Name        string       `gorm:"not null"`
	Description string

	Price           float64 `gorm:"type:decimal(10,2);not null"`
	IsAvailable     bool    `gorm:"not null"`
	PreparationTime int     // minutes, 0 means unset
	ImageKey        string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type MenuDAO struct {
	db *gorm.DB
}

func NewMenuDAO(db *gorm.DB) *MenuDAO {
	return &MenuDAO{
		db: db,
	}
}

func (d *MenuDAO) FindActiveCategories(ctx context.Context) ([]MenuCategory, error) {
	var categories []MenuCategory

	result := d.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("menu_items.id")
		}).
		Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

func (d *MenuDAO) FindAvailableItemsByIDs(ctx context.Context, ids []uint) ([]MenuItem, error) {
	var items []MenuItem

	result := d.db.WithContext(ctx).
		Where("id IN ? AND is_available = ?", ids, true).
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

func (d *MenuDAO) FindCategoryByID(ctx context.Context, categoryID uint) (MenuCategory, error) {
	var category MenuCategory

	result := d.db.WithContext(ctx).First(&category, categoryID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return MenuCategory{}, ErrMenuCategoryNotFound
		}

		return MenuCategory{}, result.Error
	}

	return category, nil
}

func (d *MenuDAO) InsertCategory(ctx context.Context, category MenuCategory) (MenuCategory, error) {
	result := d.db.WithContext(ctx).Create(&category)
	if result.Error != nil {
		return MenuCategory{}, result.Error
	}

	return category, nil
}

func (d *MenuDAO) DeleteCategory(ctx context.Context, categoryID uint) error {
	result := d.db.WithContext(ctx).Delete(&MenuCategory{}, categoryID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMenuCategoryNotFound
	}

	return nil
}

func (d *MenuDAO) FindItemByID(ctx context.Context, itemID uint) (MenuItem, error) {
	var item MenuItem

	result := d.db.WithContext(ctx).First(&item, itemID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return MenuItem{}, ErrMenuItemNotFound
		}

		return MenuItem{}, result.Error
	}

	return item, nil
}

func (d *MenuDAO) InsertItem(ctx context.Context, item MenuItem) (MenuItem, error) {
	result := d.db.WithContext(ctx).Create(&item)
	if result.Error != nil {
		return MenuItem{}, result.Error
	}

	return item, nil
}

func (d *MenuDAO) UpdateItem(ctx context.Context, item MenuItem) (MenuItem, error) {
	result := d.db.WithContext(ctx).Save(&item)
	if result.Error != nil {
		return MenuItem{}, result.Error
	}

	return item, nil
}

func (d *MenuDAO) DeleteItem(ctx context.Context, itemID uint) error {
	result := d.db.WithContext(ctx).Delete(&MenuItem{}, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMenuItemNotFound
	}

	return nil
}
