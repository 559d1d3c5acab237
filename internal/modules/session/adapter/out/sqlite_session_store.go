package out

import (
	"context"
	"database/sql"
	"errors"

	"lockedin/internal/modules/session/domain"
	sessionout "lockedin/internal/modules/session/port/out"
	apperrors "lockedin/internal/platform/errors"
	"lockedin/internal/platform/sqlite"
)

const sessionColumns = `id, goal_id, start_time, end_time, duration_minutes, status, notes`

type SQLiteSessionStore struct {
	db *sqlite.DB
}

func NewSQLiteSessionStore(db *sqlite.DB) sessionout.SessionStore {
	return &SQLiteSessionStore{db: db}
}

func (s *SQLiteSessionStore) Insert(ctx context.Context, session domain.FocusSession) error {
	_, err := s.db.Conn(ctx).ExecContext(ctx,
		`INSERT INTO focus_sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.GoalID,
		sqlite.Millis(session.StartTime),
		sqlite.NullMillis(session.EndTime),
		sqlite.NullFloat(session.DurationMinutes),
		string(session.Status),
		session.Notes,
	)
	if sqlite.IsUniqueViolation(err) {
		return apperrors.ErrActiveSessionExists
	}
	return apperrors.Persistence("insert session", err)
}

func (s *SQLiteSessionStore) Update(ctx context.Context, session domain.FocusSession) error {
	res, err := s.db.Conn(ctx).ExecContext(ctx, `
UPDATE focus_sessions SET end_time = ?, duration_minutes = ?, status = ?, notes = ?
WHERE id = ?`,
		sqlite.NullMillis(session.EndTime),
		sqlite.NullFloat(session.DurationMinutes),
		string(session.Status),
		session.Notes,
		session.ID,
	)
	if err != nil {
		return apperrors.Persistence("update session", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Persistence("rows affected", err)
	}
	if n == 0 {
		return apperrors.NotFound("session", session.ID)
	}
	return nil
}

func (s *SQLiteSessionStore) FindByID(ctx context.Context, id string) (domain.FocusSession, error) {
	row := s.db.Conn(ctx).QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM focus_sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FocusSession{}, apperrors.NotFound("session", id)
	}
	return session, apperrors.Persistence("find session", err)
}

func (s *SQLiteSessionStore) FindActive(ctx context.Context) (domain.FocusSession, error) {
	row := s.db.Conn(ctx).QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM focus_sessions WHERE status = 'active' LIMIT 1`)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.FocusSession{}, apperrors.ErrNoActiveSession
	}
	return session, apperrors.Persistence("find active session", err)
}

func (s *SQLiteSessionStore) ListByGoal(ctx context.Context, goalID string) ([]domain.FocusSession, error) {
	return s.list(ctx, "list goal sessions",
		`SELECT `+sessionColumns+` FROM focus_sessions WHERE goal_id = ? ORDER BY start_time DESC`, goalID)
}

func (s *SQLiteSessionStore) RecentCompleted(ctx context.Context, limit int) ([]domain.FocusSession, error) {
	return s.list(ctx, "list recent sessions",
		`SELECT `+sessionColumns+` FROM focus_sessions WHERE status = 'completed' ORDER BY start_time DESC LIMIT ?`, limit)
}

func (s *SQLiteSessionStore) list(ctx context.Context, op, query string, args ...any) ([]domain.FocusSession, error) {
	rows, err := s.db.Conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	defer rows.Close()

	out := []domain.FocusSession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, apperrors.Persistence(op, err)
		}
		out = append(out, session)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence(op, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (domain.FocusSession, error) {
	var (
		session  domain.FocusSession
		start    int64
		end      sql.NullInt64
		duration sql.NullFloat64
		status   string
	)
	if err := row.Scan(&session.ID, &session.GoalID, &start, &end, &duration, &status, &session.Notes); err != nil {
		return domain.FocusSession{}, err
	}
	session.StartTime = sqlite.FromMillis(start)
	session.EndTime = sqlite.FromNullMillis(end)
	session.DurationMinutes = sqlite.FromNullFloat(duration)
	session.Status = domain.Status(status)
	return session, nil
}
