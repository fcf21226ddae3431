package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrTableNotFound = errors.New("table not found")
	ErrTableExists   = errors.New("table already exists")
)

type Table struct {
	ID          uint   `gorm:"primaryKey"`
	TableNumber int    `gorm:"uniqueIndex;not null"`
	QRCodeURL string `gorm:"not null"`

	// No gorm default tag: a default would make gorm omit explicit false
	// values on insert.
	IsActive bool `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TableDAO struct {
	db *gorm.DB
}

func NewTableDAO(db *gorm.DB) *TableDAO {
	return &TableDAO{
		db: db,
	}
}

func (d *TableDAO) FindByNumber(ctx context.Context, tableNumber int) (Table, error) {
	var table Table

	result := d.db.WithContext(ctx).First(&table, "table_number = ?", tableNumber)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Table{}, ErrTableNotFound
		}

		return Table{}, result.Error
	}

	return table, nil
}

func (d *TableDAO) Insert(ctx context.Context, table Table) (Table, error) {
	result := d.db.WithContext(ctx).Create(&table)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Table{}, ErrTableExists
		}

		return Table{}, result.Error
	}

	return table, nil
}

func (d *TableDAO) FindAll(ctx context.Context) ([]Table, error) {
	var tables []Table

	result := d.db.WithContext(ctx).Order("table_number").Find(&tables)
	if result.Error != nil {
		return nil, result.Error
	}

	return tables, nil
}

// isUniqueViolation classifies postgres unique constraint errors so callers
// can tell a lost insert race from a genuine storage failure.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
