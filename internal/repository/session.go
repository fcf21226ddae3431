package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tableside/cafe-ordering-api/internal/domain"
	"github.com/tableside/cafe-ordering-api/internal/repository/dao"
)

var (
	ErrTableSessionNotFound = dao.ErrTableSessionNotFound
	ErrGuestSessionNotFound = dao.ErrGuestSessionNotFound
	ErrActiveSessionExists  = dao.ErrActiveSessionExists
	ErrGuestTokenExists     = dao.ErrGuestTokenExists
)

type SessionDAO interface {
	FindActiveTableSession(ctx context.Context, tableID uint) (dao.TableSession, error)
	InsertTableSession(ctx context.Context, session dao.TableSession) (dao.TableSession, error)
	FindLatestActiveGuestSession(ctx context.Context, tableSessionID string) (dao.GuestSession, error)
	FindGuestSessionByToken(ctx context.Context, token string) (dao.GuestSession, error)
	InsertGuestSession(ctx context.Context, session dao.GuestSession) (dao.GuestSession, error)
	ReattachGuestSession(ctx context.Context, sessionID, tableSessionID string) (dao.GuestSession, error)
	CompleteTableSessions(ctx context.Context, tableID uint) error
	CompleteGuestSessionsForTable(ctx context.Context, tableID uint) error
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func tableSessionDAOToDomain(s dao.TableSession) domain.TableSession {
	return domain.TableSession{
		ID:        s.ID,
		TableID:   s.TableID,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func guestSessionDAOToDomain(s dao.GuestSession) domain.GuestSession {
	return domain.GuestSession{
		ID:             s.ID,
		TableSessionID: s.TableSessionID,
		GuestToken:     s.GuestToken,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (r *SessionRepository) FindActiveTableSession(ctx context.Context, tableID uint) (domain.TableSession, error) {
	session, err := r.dao.FindActiveTableSession(ctx, tableID)
	if err != nil {
		if errors.Is(err, dao.ErrTableSessionNotFound) {
			return domain.TableSession{}, ErrTableSessionNotFound
		}

		return domain.TableSession{}, fmt.Errorf("r.dao.FindActiveTableSession -> %w", err)
	}

	return tableSessionDAOToDomain(session), nil
}

func (r *SessionRepository) CreateTableSession(ctx context.Context, tableID uint) (domain.TableSession, error) {
	created, err := r.dao.InsertTableSession(ctx, dao.TableSession{
		TableID: tableID,
		Status:  domain.SessionStatusActive,
	})
	if err != nil {
		if errors.Is(err, dao.ErrActiveSessionExists) {
			return domain.TableSession{}, ErrActiveSessionExists
		}

		return domain.TableSession{}, fmt.Errorf("r.dao.InsertTableSession -> %w", err)
	}

	return tableSessionDAOToDomain(created), nil
}

func (r *SessionRepository) FindLatestActiveGuestSession(ctx context.Context, tableSessionID string) (domain.GuestSession, error) {
	session, err := r.dao.FindLatestActiveGuestSession(ctx, tableSessionID)
	if err != nil {
		if errors.Is(err, dao.ErrGuestSessionNotFound) {
			return domain.GuestSession{}, ErrGuestSessionNotFound
		}

		return domain.GuestSession{}, fmt.Errorf("r.dao.FindLatestActiveGuestSession -> %w", err)
	}

	return guestSessionDAOToDomain(session), nil
}

func (r *SessionRepository) FindGuestSessionByToken(ctx context.Context, token string) (domain.GuestSession, error) {
	session, err := r.dao.FindGuestSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, dao.ErrGuestSessionNotFound) {
			return domain.GuestSession{}, ErrGuestSessionNotFound
		}

		return domain.GuestSession{}, fmt.Errorf("r.dao.FindGuestSessionByToken -> %w", err)
	}

	return guestSessionDAOToDomain(session), nil
}

func (r *SessionRepository) CreateGuestSession(ctx context.Context, tableSessionID, guestToken string) (domain.GuestSession, error) {
	created, err := r.dao.InsertGuestSession(ctx, dao.GuestSession{
		TableSessionID: tableSessionID,
		GuestToken:     guestToken,
		Status:         domain.SessionStatusActive,
	})
	if err != nil {
		if errors.Is(err, dao.ErrGuestTokenExists) {
			return domain.GuestSession{}, ErrGuestTokenExists
		}

		return domain.GuestSession{}, fmt.Errorf("r.dao.InsertGuestSession -> %w", err)
	}

	return guestSessionDAOToDomain(created), nil
}

func (r *SessionRepository) ReattachGuestSession(ctx context.Context, sessionID, tableSessionID string) (domain.GuestSession, error) {
	session, err := r.dao.ReattachGuestSession(ctx, sessionID, tableSessionID)
	if err != nil {
		if errors.Is(err, dao.ErrGuestSessionNotFound) {
			return domain.GuestSession{}, ErrGuestSessionNotFound
		}

		return domain.GuestSession{}, fmt.Errorf("r.dao.ReattachGuestSession -> %w", err)
	}

	return guestSessionDAOToDomain(session), nil
}

func (r *SessionRepository) CompleteTableSessions(ctx context.Context, tableID uint) error {
	if err := r.dao.CompleteTableSessions(ctx, tableID); err != nil {
		return fmt.Errorf("r.dao.CompleteTableSessions -> %w", err)
	}

	return nil
}

func (r *SessionRepository) CompleteGuestSessionsForTable(ctx context.Context, tableID uint) error {
	if err := r.dao.CompleteGuestSessionsForTable(ctx, tableID); err != nil {
		return fmt.Errorf("r.dao.CompleteGuestSessionsForTable -> %w", err)
	}

	return nil
}
