package out

import (
	"context"
	"time"

	"lockedin/internal/modules/analytics/domain"
	analyticsout "lockedin/internal/modules/analytics/port/out"
	apperrors "lockedin/internal/platform/errors"
	"lockedin/internal/platform/sqlite"
)

// SQLiteSessionReader is a read model over the focus_sessions table.
type SQLiteSessionReader struct {
	db *sqlite.DB
}

func NewSQLiteSessionReader(db *sqlite.DB) analyticsout.SessionReader {
	return &SQLiteSessionReader{db: db}
}

func (r *SQLiteSessionReader) CompletedBetween(ctx context.Context, from, to time.Time) ([]domain.CompletedSession, error) {
	const query = `
SELECT goal_id, start_time, COALESCE(duration_minutes, 0)
FROM focus_sessions
WHERE status = 'completed' AND start_time >= ? AND start_time < ?
ORDER BY start_time ASC`
	rows, err := r.db.Conn(ctx).QueryContext(ctx, query, sqlite.Millis(from), sqlite.Millis(to))
	if err != nil {
		return nil, apperrors.Persistence("list completed sessions", err)
	}
	defer rows.Close()

	var out []domain.CompletedSession
	for rows.Next() {
		var (
			s     domain.CompletedSession
			start int64
		)
		if err := rows.Scan(&s.GoalID, &start, &s.DurationMinutes); err != nil {
			return nil, apperrors.Persistence("scan completed session", err)
		}
		s.StartTime = sqlite.FromMillis(start)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence("list completed sessions", err)
	}
	return out, nil
}

func (r *SQLiteSessionReader) DistinctGoalsBetween(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.db.Conn(ctx).QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT goal_id) FROM focus_sessions WHERE start_time >= ? AND start_time < ?`,
		sqlite.Millis(from), sqlite.Millis(to),
	).Scan(&n)
	if err != nil {
		return 0, apperrors.Persistence("count goals worked on", err)
	}
	return n, nil
}
