package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tableside/cafe-ordering-api/internal/domain"
	"github.com/tableside/cafe-ordering-api/internal/repository"
)

var (
	ErrTableNotFound      = repository.ErrTableNotFound
	ErrInvalidTableNumber = errors.New("invalid table number")
)

type SessionTableRepository interface {
	FindByNumber(ctx context.Context, tableNumber int) (domain.Table, error)
	Create(ctx context.Context, table domain.Table) (domain.Table, error)
	FindAll(ctx context.Context) ([]domain.Table, error)
}

type SessionRepository interface {
	FindActiveTableSession(ctx context.Context, tableID uint) (domain.TableSession, error)
	CreateTableSession(ctx context.Context, tableID uint) (domain.TableSession, error)
	FindLatestActiveGuestSession(ctx context.Context, tableSessionID string) (domain.GuestSession, error)
	FindGuestSessionByToken(ctx context.Context, token string) (domain.GuestSession, error)
	CreateGuestSession(ctx context.Context, tableSessionID, guestToken string) (domain.GuestSession, error)
	ReattachGuestSession(ctx context.Context, sessionID, tableSessionID string) (domain.GuestSession, error)
	CompleteTableSessions(ctx context.Context, tableID uint) error
	CompleteGuestSessionsForTable(ctx context.Context, tableID uint) error
}

// SessionService owns the table-session and guest-session lifecycle: one
// active table session per table, one active guest session per guest token
// within that table session.
type SessionService struct {
	repo   SessionRepository
	tables SessionTableRepository
}

func NewSessionService(repo SessionRepository, tables SessionTableRepository) *SessionService {
	return &SessionService{
		repo:   repo,
		tables: tables,
	}
}

// ResolveTable finds the table by its client-facing number, creating it on
// first sight. "Not found" triggers creation; any other lookup error is
// fatal to the calling operation.
func (s *SessionService) ResolveTable(ctx context.Context, tableNumber int) (domain.Table, error) {
	if tableNumber <= 0 {
		return domain.Table{}, ErrInvalidTableNumber
	}

	table, err := s.tables.FindByNumber(ctx, tableNumber)
	if err == nil {
		return table, nil
	}
	if !errors.Is(err, repository.ErrTableNotFound) {
		return domain.Table{}, fmt.Errorf("s.tables.FindByNumber -> %w", err)
	}

	created, err := s.tables.Create(ctx, domain.Table{
		TableNumber: tableNumber,
		QRCodeURL:   fmt.Sprintf("https://cafe-ordering.com/qr/table%d", tableNumber),
		IsActive:    true,
	})
	if err != nil {
		// Lost a create race; the winner's row is the table.
		if errors.Is(err, repository.ErrTableExists) {
			return s.tables.FindByNumber(ctx, tableNumber)
		}

		return domain.Table{}, fmt.Errorf("s.tables.Create -> %w", err)
	}

	zap.L().Info("created table on first sight", zap.Int("table_number", tableNumber))

	return created, nil
}

// ResolveTableSession returns the table's current active session, creating
// one when the table has none.
func (s *SessionService) ResolveTableSession(ctx context.Context, table domain.Table) (domain.TableSession, error) {
	session, err := s.repo.FindActiveTableSession(ctx, table.ID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, repository.ErrTableSessionNotFound) {
		return domain.TableSession{}, fmt.Errorf("s.repo.FindActiveTableSession -> %w", err)
	}

	created, err := s.repo.CreateTableSession(ctx, table.ID)
	if err != nil {
		// A concurrent request created the active session first; use it.
		if errors.Is(err, repository.ErrActiveSessionExists) {
			return s.repo.FindActiveTableSession(ctx, table.ID)
		}

		return domain.TableSession{}, fmt.Errorf("s.repo.CreateTableSession -> %w", err)
	}

	return created, nil
}

// ResolveGuestSession binds a diner to the table session. A supplied token is
// looked up globally: an active session on the same table session is reused,
// a stale one is reattached, an unknown token gets a fresh session. Without a
// token the latest active guest session is reused or a server token minted.
func (s *SessionService) ResolveGuestSession(ctx context.Context, tableSession domain.TableSession, guestToken string) (domain.GuestSession, error) {
	if guestToken == "" {
		session, err := s.repo.FindLatestActiveGuestSession(ctx, tableSession.ID)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, repository.ErrGuestSessionNotFound) {
			return domain.GuestSession{}, fmt.Errorf("s.repo.FindLatestActiveGuestSession -> %w", err)
		}

		created, err := s.repo.CreateGuestSession(ctx, tableSession.ID, NewGuestToken())
		if err != nil {
			return domain.GuestSession{}, fmt.Errorf("s.repo.CreateGuestSession -> %w", err)
		}

		return created, nil
	}

	session, err := s.repo.FindGuestSessionByToken(ctx, guestToken)
	if err != nil {
		if !errors.Is(err, repository.ErrGuestSessionNotFound) {
			return domain.GuestSession{}, fmt.Errorf("s.repo.FindGuestSessionByToken -> %w", err)
		}

		created, createErr := s.repo.CreateGuestSession(ctx, tableSession.ID, guestToken)
		if createErr != nil {
			return domain.GuestSession{}, fmt.Errorf("s.repo.CreateGuestSession -> %w", createErr)
		}

		return created, nil
	}

	if !session.NeedsReattach(tableSession.ID) {
		return session, nil
	}

	reattached, err := s.repo.ReattachGuestSession(ctx, session.ID, tableSession.ID)
	if err != nil {
		return domain.GuestSession{}, fmt.Errorf("s.repo.ReattachGuestSession -> %w", err)
	}

	zap.L().Info("reattached guest session",
		zap.String("guest_session_id", session.ID),
		zap.String("table_session_id", tableSession.ID))

	return reattached, nil
}

// FindGuestSessionByToken exposes the global token lookup for read paths.
func (s *SessionService) FindGuestSessionByToken(ctx context.Context, guestToken string) (domain.GuestSession, error) {
	session, err := s.repo.FindGuestSessionByToken(ctx, guestToken)
	if err != nil {
		if errors.Is(err, repository.ErrGuestSessionNotFound) {
			return domain.GuestSession{}, repository.ErrGuestSessionNotFound
		}

		return domain.GuestSession{}, fmt.Errorf("s.repo.FindGuestSessionByToken -> %w", err)
	}

	return session, nil
}

// EndTableSession completes the table's active sessions and every guest
// session ever attached to this table, clearing it for the next party.
func (s *SessionService) EndTableSession(ctx context.Context, tableNumber int) error {
	if tableNumber <= 0 {
		return ErrInvalidTableNumber
	}

	table, err := s.tables.FindByNumber(ctx, tableNumber)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return ErrTableNotFound
		}

		return fmt.Errorf("s.tables.FindByNumber -> %w", err)
	}

	if err = s.repo.CompleteTableSessions(ctx, table.ID); err != nil {
		return fmt.Errorf("s.repo.CompleteTableSessions -> %w", err)
	}

	if err = s.repo.CompleteGuestSessionsForTable(ctx, table.ID); err != nil {
		return fmt.Errorf("s.repo.CompleteGuestSessionsForTable -> %w", err)
	}

	zap.L().Info("ended table session", zap.Int("table_number", tableNumber))

	return nil
}

func (s *SessionService) ListTables(ctx context.Context) ([]domain.Table, error) {
	tables, err := s.tables.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.tables.FindAll -> %w", err)
	}

	return tables, nil
}

// NewGuestToken mints a server-side token for diners that arrive without one.
func NewGuestToken() string {
	return "guest_" + uuid.NewString()
}
