package out

import (
	"context"
	"database/sql"
	"errors"

	"lockedin/internal/modules/analytics/domain"
	analyticsout "lockedin/internal/modules/analytics/port/out"
	apperrors "lockedin/internal/platform/errors"
	"lockedin/internal/platform/sqlite"
)

type SQLiteProgressStore struct {
	db *sqlite.DB
}

func NewSQLiteProgressStore(db *sqlite.DB) analyticsout.ProgressStore {
	return &SQLiteProgressStore{db: db}
}

func (s *SQLiteProgressStore) Ensure(ctx context.Context, p domain.DailyProgress) error {
	const stmt = `
INSERT INTO daily_progress (id, date, streak_count, total_minutes, goals_worked_on)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(date) DO NOTHING`
	_, err := s.db.Conn(ctx).ExecContext(ctx, stmt, p.ID, p.Date, p.StreakCount, p.TotalMinutes, p.GoalsWorkedOn)
	return apperrors.Persistence("ensure daily progress", err)
}

func (s *SQLiteProgressStore) FindByDate(ctx context.Context, date string) (domain.DailyProgress, error) {
	row := s.db.Conn(ctx).QueryRowContext(ctx,
		`SELECT id, date, streak_count, total_minutes, goals_worked_on FROM daily_progress WHERE date = ?`, date)
	p, err := scanProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DailyProgress{}, apperrors.NotFound("daily progress", date)
	}
	if err != nil {
		return domain.DailyProgress{}, apperrors.Persistence("select daily progress", err)
	}
	return p, nil
}

func (s *SQLiteProgressStore) Save(ctx context.Context, p domain.DailyProgress) error {
	const stmt = `
INSERT INTO daily_progress (id, date, streak_count, total_minutes, goals_worked_on)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(date) DO UPDATE SET
  streak_count = excluded.streak_count,
  total_minutes = excluded.total_minutes,
  goals_worked_on = excluded.goals_worked_on`
	_, err := s.db.Conn(ctx).ExecContext(ctx, stmt, p.ID, p.Date, p.StreakCount, p.TotalMinutes, p.GoalsWorkedOn)
	return apperrors.Persistence("save daily progress", err)
}

func (s *SQLiteProgressStore) ListUpTo(ctx context.Context, date string) ([]domain.DailyProgress, error) {
	rows, err := s.db.Conn(ctx).QueryContext(ctx,
		`SELECT id, date, streak_count, total_minutes, goals_worked_on FROM daily_progress WHERE date <= ? ORDER BY date DESC`, date)
	if err != nil {
		return nil, apperrors.Persistence("list daily progress", err)
	}
	defer rows.Close()

	var out []domain.DailyProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, apperrors.Persistence("scan daily progress", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence("list daily progress", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgress(row scanner) (domain.DailyProgress, error) {
	var p domain.DailyProgress
	err := row.Scan(&p.ID, &p.Date, &p.StreakCount, &p.TotalMinutes, &p.GoalsWorkedOn)
	return p, err
}
