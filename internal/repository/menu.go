package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tableside/cafe-ordering-api/internal/domain"
	"github.com/tableside/cafe-ordering-api/internal/repository/dao"
)

var (
	ErrMenuCategoryNotFound = dao.ErrMenuCategoryNotFound
	ErrMenuItemNotFound     = dao.ErrMenuItemNotFound
)

type MenuDAO interface {
	FindActiveCategories(ctx context.Context) ([]dao.MenuCategory, error)
	FindAvailableItemsByIDs(ctx context.Context, ids []uint) ([]dao.MenuItem, error)
	FindCategoryByID(ctx context.Context, categoryID uint) (dao.MenuCategory, error)
	InsertCategory(ctx context.Context, category dao.MenuCategory) (dao.MenuCategory, error)
	DeleteCategory(ctx context.Context, categoryID uint) error
	FindItemByID(ctx context.Context, itemID uint) (dao.MenuItem, error)
	InsertItem(ctx context.Context, item dao.MenuItem) (dao.MenuItem, error)
	UpdateItem(ctx context.Context, item dao.MenuItem) (dao.MenuItem, error)
	DeleteItem(ctx context.Context, itemID uint) error
}

type MenuRepository struct {
	dao MenuDAO
}

func NewMenuRepository(dao MenuDAO) *MenuRepository {
	return &MenuRepository{
		dao: dao,
	}
}

func menuItemDAOToDomain(i dao.MenuItem) domain.MenuItem {
	return domain.MenuItem{
		ID:              i.ID,
		CategoryID:      i.CategoryID,
		Name:            i.Name,
		Description:     i.Description,
		Price:           i.Price,
		IsAvailable:     i.IsAvailable,
		PreparationTime: i.PreparationTime,
		ImageKey:        i.ImageKey,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

func menuItemDomainToDAO(i domain.MenuItem) dao.MenuItem {
	return dao.MenuItem{
		ID:              i.ID,
		CategoryID:      i.CategoryID,
		Name:            i.Name,
		Description:     i.Description,
		Price:           i.Price,
		IsAvailable:     i.IsAvailable,
		PreparationTime: i.PreparationTime,
		ImageKey:        i.ImageKey,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

func menuCategoryDAOToDomain(c dao.MenuCategory) domain.MenuCategory {
	items := make([]domain.MenuItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = menuItemDAOToDomain(item)
	}

	return domain.MenuCategory{
		ID:        c.ID,
		Name:      c.Name,
		IsActive:  c.IsActive,
		Items:     items,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *MenuRepository) FindActiveCategories(ctx context.Context) ([]domain.MenuCategory, error) {
	categoriesDAO, err := r.dao.FindActiveCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveCategories -> %w", err)
	}

	categories := make([]domain.MenuCategory, len(categoriesDAO))
	for i, c := range categoriesDAO {
		categories[i] = menuCategoryDAOToDomain(c)
	}

	return categories, nil
}

func (r *MenuRepository) FindAvailableItemsByIDs(ctx context.Context, ids []uint) ([]domain.MenuItem, error) {
	itemsDAO, err := r.dao.FindAvailableItemsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAvailableItemsByIDs -> %w", err)
	}

	items := make([]domain.MenuItem, len(itemsDAO))
	for i, item := range itemsDAO {
		items[i] = menuItemDAOToDomain(item)
	}

	return items, nil
}

func (r *MenuRepository) CreateCategory(ctx context.Context, category domain.MenuCategory) (domain.MenuCategory, error) {
	created, err := r.dao.InsertCategory(ctx, dao.MenuCategory{
		Name:     category.Name,
		IsActive: category.IsActive,
	})
	if err != nil {
		return domain.MenuCategory{}, fmt.Errorf("r.dao.InsertCategory -> %w", err)
	}

	return menuCategoryDAOToDomain(created), nil
}

func (r *MenuRepository) DeleteCategory(ctx context.Context, categoryID uint) error {
	if err := r.dao.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, dao.ErrMenuCategoryNotFound) {
			return ErrMenuCategoryNotFound
		}

		return fmt.Errorf("r.dao.DeleteCategory -> %w", err)
	}

	return nil
}

func (r *MenuRepository) FindCategoryByID(ctx context.Context, categoryID uint) (domain.MenuCategory, error) {
	category, err := r.dao.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, dao.ErrMenuCategoryNotFound) {
			return domain.MenuCategory{}, ErrMenuCategoryNotFound
		}

		return domain.MenuCategory{}, fmt.Errorf("r.dao.FindCategoryByID -> %w", err)
	}

	return menuCategoryDAOToDomain(category), nil
}

func (r *MenuRepository) FindItemByID(ctx context.Context, itemID uint) (domain.MenuItem, error) {
	item, err := r.dao.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, dao.ErrMenuItemNotFound) {
			return domain.MenuItem{}, ErrMenuItemNotFound
		}

		return domain.MenuItem{}, fmt.Errorf("r.dao.FindItemByID -> %w", err)
	}

	return menuItemDAOToDomain(item), nil
}

func (r *MenuRepository) CreateItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	itemDAO := menuItemDomainToDAO(item)
	itemDAO.ID = 0

	created, err := r.dao.InsertItem(ctx, itemDAO)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("r.dao.InsertItem -> %w", err)
	}

	return menuItemDAOToDomain(created), nil
}

func (r *MenuRepository) UpdateItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	updated, err := r.dao.UpdateItem(ctx, menuItemDomainToDAO(item))
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("r.dao.UpdateItem -> %w", err)
	}

	return menuItemDAOToDomain(updated), nil
}

func (r *MenuRepository) DeleteItem(ctx context.Context, itemID uint) error {
	if err := r.dao.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, dao.ErrMenuItemNotFound) {
			return ErrMenuItemNotFound
		}

		return fmt.Errorf("r.dao.DeleteItem -> %w", err)
	}

	return nil
}
