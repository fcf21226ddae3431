package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTableSessionNotFound = errors.New("table session not found")
	ErrGuestSessionNotFound = errors.New("guest session not found")
	ErrActiveSessionExists  = errors.New("active table session already exists")
	ErrGuestTokenExists     = errors.New("guest token already exists")
)

type TableSession struct {
	ID string `gorm:"primaryKey"`

	// Partial unique index: at most one active session per table.
	TableID uint   `gorm:"not null;index:idx_table_sessions_one_active,unique,where:status = 'active'"`
	Table   Table  `gorm:"foreignKey:TableID"`
	Status  string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type GuestSession struct {
	ID string `gorm:"primaryKey"`

	TableSessionID string       `gorm:"not null;index"`
	TableSession   TableSession `gorm:"foreignKey:TableSessionID"`
	GuestToken     string       `gorm:"uniqueIndex;not null"`
	Status         string       `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

func (d *SessionDAO) FindActiveTableSession(ctx context.Context, tableID uint) (TableSession, error) {
	var session TableSession

	result := d.db.WithContext(ctx).
		Where("table_id = ? AND status = ?", tableID, "active").
		Order("created_at DESC").
		First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return TableSession{}, ErrTableSessionNotFound
		}

		return TableSession{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) InsertTableSession(ctx context.Context, session TableSession) (TableSession, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return TableSession{}, ErrActiveSessionExists
		}

		return TableSession{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindLatestActiveGuestSession(ctx context.Context, tableSessionID string) (GuestSession, error) {
	var session GuestSession

	result := d.db.WithContext(ctx).
		Where("table_session_id = ? AND status = ?", tableSessionID, "active").
		Order("created_at DESC").
		First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return GuestSession{}, ErrGuestSessionNotFound
		}

		return GuestSession{}, result.Error
	}

	return session, nil
}

// FindGuestSessionByToken looks the token up globally. Tokens are unique
// across the system, so a returning guest is found even after the table
// turned over.
func (d *SessionDAO) FindGuestSessionByToken(ctx context.Context, token string) (GuestSession, error) {
	var session GuestSession

	result := d.db.WithContext(ctx).First(&session, "guest_token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return GuestSession{}, ErrGuestSessionNotFound
		}

		return GuestSession{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) InsertGuestSession(ctx context.Context, session GuestSession) (GuestSession, error) {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return GuestSession{}, ErrGuestTokenExists
		}

		return GuestSession{}, result.Error
	}

	return session, nil
}

// ReattachGuestSession rewrites the session's owning table session and
// reactivates it, keeping the token's row unique.
func (d *SessionDAO) ReattachGuestSession(ctx context.Context, sessionID, tableSessionID string) (GuestSession, error) {
	result := d.db.WithContext(ctx).
		Model(&GuestSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"table_session_id": tableSessionID,
			"status":           "active",
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return GuestSession{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GuestSession{}, ErrGuestSessionNotFound
	}

	var session GuestSession
	if err := d.db.WithContext(ctx).First(&session, "id = ?", sessionID).Error; err != nil {
		return GuestSession{}, err
	}

	return session, nil
}

func (d *SessionDAO) CompleteTableSessions(ctx context.Context, tableID uint) error {
	result := d.db.WithContext(ctx).
		Model(&TableSession{}).
		Where("table_id = ? AND status = ?", tableID, "active").
		Updates(map[string]interface{}{
			"status":     "completed",
			"updated_at": time.Now(),
		})

	return result.Error
}

// CompleteGuestSessionsForTable completes guest sessions under any session
// of the table, not only the active one. Clearing a table must not leave a
// stray active guest token behind.
func (d *SessionDAO) CompleteGuestSessionsForTable(ctx context.Context, tableID uint) error {
	sessionIDs := d.db.WithContext(ctx).Model(&TableSession{}).Select("id").Where("table_id = ?", tableID)

	result := d.db.WithContext(ctx).
		Model(&GuestSession{}).
		Where("table_session_id IN (?)", sessionIDs).
		Updates(map[string]interface{}{
			"status":     "completed",
			"updated_at": time.Now(),
		})

	return result.Error
}
