package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tableside/cafe-ordering-api/internal/domain"
	"github.com/tableside/cafe-ordering-api/internal/repository/dao"
)

var (
	ErrTableNotFound = dao.ErrTableNotFound
	ErrTableExists   = dao.ErrTableExists
)

type TableDAO interface {
	FindByNumber(ctx context.Context, tableNumber int) (dao.Table, error)
	Insert(ctx context.Context, table dao.Table) (dao.Table, error)
	FindAll(ctx context.Context) ([]dao.Table, error)
}

type TableRepository struct {
	dao TableDAO
}

func NewTableRepository(dao TableDAO) *TableRepository {
	return &TableRepository{
		dao: dao,
	}
}

func tableDAOToDomain(t dao.Table) domain.Table {
	return domain.Table{
		ID:          t.ID,
		TableNumber: t.TableNumber,
		QRCodeURL:   t.QRCodeURL,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (r *TableRepository) FindByNumber(ctx context.Context, tableNumber int) (domain.Table, error) {
	table, err := r.dao.FindByNumber(ctx, tableNumber)
	if err != nil {
		if errors.Is(err, dao.ErrTableNotFound) {
			return domain.Table{}, ErrTableNotFound
		}

		return domain.Table{}, fmt.Errorf("r.dao.FindByNumber -> %w", err)
	}

	return tableDAOToDomain(table), nil
}

func (r *TableRepository) Create(ctx context.Context, table domain.Table) (domain.Table, error) {
	created, err := r.dao.Insert(ctx, dao.Table{
		TableNumber: table.TableNumber,
		QRCodeURL:   table.QRCodeURL,
		IsActive:    table.IsActive,
	})
	if err != nil {
		if errors.Is(err, dao.ErrTableExists) {
			return domain.Table{}, ErrTableExists
		}

		return domain.Table{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return tableDAOToDomain(created), nil
}

func (r *TableRepository) FindAll(ctx context.Context) ([]domain.Table, error) {
	tablesDAO, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	tables := make([]domain.Table, len(tablesDAO))
	for i, t := range tablesDAO {
		tables[i] = tableDAOToDomain(t)
	}

	return tables, nil
}
