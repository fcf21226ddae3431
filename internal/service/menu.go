package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tableside/cafe-ordering-api/internal/domain"
	"github.com/tableside/cafe-ordering-api/internal/repository"
)

var (
	ErrMenuCategoryNotFound = repository.ErrMenuCategoryNotFound
	ErrMenuItemNotFound     = repository.ErrMenuItemNotFound
)

type MenuRepository interface {
	FindActiveCategories(ctx context.Context) ([]domain.MenuCategory, error)
	FindCategoryByID(ctx context.Context, categoryID uint) (domain.MenuCategory, error)
	CreateCategory(ctx context.Context, category domain.MenuCategory) (domain.MenuCategory, error)
	DeleteCategory(ctx context.Context, categoryID uint) error
	FindItemByID(ctx context.Context, itemID uint) (domain.MenuItem, error)
	CreateItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)
	UpdateItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error)
	DeleteItem(ctx context.Context, itemID uint) error
}

// TableResolver is the slice of the session manager the catalog needs:
// menu fetches create the table on first sight.
type TableResolver interface {
	ResolveTable(ctx context.Context, tableNumber int) (domain.Table, error)
}

// MenuService is the read-side catalog plus its thin admin CRUD.
type MenuService struct {
	repo          MenuRepository
	tables        TableResolver
	publicBaseURL string
}

func NewMenuService(repo MenuRepository, tables TableResolver, publicBaseURL string) *MenuService {
	return &MenuService{
		repo:          repo,
		tables:        tables,
		publicBaseURL: publicBaseURL,
	}
}

// GetMenu resolves (or creates) the table and returns all active categories
// with their items, available or not; rendering unavailable items is the
// caller's choice.
func (s *MenuService) GetMenu(ctx context.Context, tableNumber int) (domain.MenuView, error) {
	table, err := s.tables.ResolveTable(ctx, tableNumber)
	if err != nil {
		return domain.MenuView{}, err
	}

	categories, err := s.repo.FindActiveCategories(ctx)
	if err != nil {
		return domain.MenuView{}, fmt.Errorf("s.repo.FindActiveCategories -> %w", err)
	}

	for ci := range categories {
		for ii := range categories[ci].Items {
			categories[ci].Items[ii].ImageURL = s.imageURL(categories[ci].Items[ii].ImageKey)
		}
	}

	return domain.MenuView{
		TableNumber: table.TableNumber,
		Categories:  categories,
	}, nil
}

// imageURL derives the public URL for a stored image key. Uploads are
// handled elsewhere; the catalog only points at the bucket.
func (s *MenuService) imageURL(imageKey string) string {
	if imageKey == "" {
		return ""
	}

	return fmt.Sprintf("%s/menu-images/%s", s.publicBaseURL, imageKey)
}

func (s *MenuService) AddCategory(ctx context.Context, name string) (domain.MenuCategory, error) {
	created, err := s.repo.CreateCategory(ctx, domain.MenuCategory{
		Name:     name,
		IsActive: true,
	})
	if err != nil {
		return domain.MenuCategory{}, fmt.Errorf("s.repo.CreateCategory -> %w", err)
	}

	return created, nil
}

func (s *MenuService) DeleteCategory(ctx context.Context, categoryID uint) error {
	if err := s.repo.DeleteCategory(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrMenuCategoryNotFound) {
			return ErrMenuCategoryNotFound
		}

		return fmt.Errorf("s.repo.DeleteCategory -> %w", err)
	}

	return nil
}

func (s *MenuService) AddMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	if _, err := s.repo.FindCategoryByID(ctx, item.CategoryID); err != nil {
		if errors.Is(err, repository.ErrMenuCategoryNotFound) {
			return domain.MenuItem{}, ErrMenuCategoryNotFound
		}

		return domain.MenuItem{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("s.repo.CreateItem -> %w", err)
	}

	return created, nil
}

func (s *MenuService) UpdateMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	existing, err := s.repo.FindItemByID(ctx, item.ID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return domain.MenuItem{}, ErrMenuItemNotFound
		}

		return domain.MenuItem{}, fmt.Errorf("s.repo.FindItemByID -> %w", err)
	}

	if item.CategoryID != 0 && item.CategoryID != existing.CategoryID {
		if _, err = s.repo.FindCategoryByID(ctx, item.CategoryID); err != nil {
			if errors.Is(err, repository.ErrMenuCategoryNotFound) {
				return domain.MenuItem{}, ErrMenuCategoryNotFound
			}

			return domain.MenuItem{}, fmt.Errorf("s.repo.FindCategoryByID -> %w", err)
		}
		existing.CategoryID = item.CategoryID
	}

	existing.Name = item.Name
	existing.Description = item.Description
	existing.Price = item.Price
	existing.IsAvailable = item.IsAvailable
	existing.PreparationTime = item.PreparationTime
	existing.ImageKey = item.ImageKey

	updated, err := s.repo.UpdateItem(ctx, existing)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("s.repo.UpdateItem -> %w", err)
	}

	return updated, nil
}

func (s *MenuService) DeleteMenuItem(ctx context.Context, itemID uint) error {
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return ErrMenuItemNotFound
		}

		return fmt.Errorf("s.repo.DeleteItem -> %w", err)
	}

	return nil
}
