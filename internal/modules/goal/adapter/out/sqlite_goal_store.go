package out

import (
	"context"
	"database/sql"
	"errors"

	"lockedin/internal/modules/goal/domain"
	goalout "lockedin/internal/modules/goal/port/out"
	apperrors "lockedin/internal/platform/errors"
	"lockedin/internal/platform/sqlite"
)

const goalColumns = `id, title, description, target_hours, hours_logged, deadline, status, color, efficiency, created_at, updated_at`

type SQLiteGoalStore struct {
	db *sqlite.DB
}

func NewSQLiteGoalStore(db *sqlite.DB) goalout.GoalStore {
	return &SQLiteGoalStore{db: db}
}

func (s *SQLiteGoalStore) Insert(ctx context.Context, goal domain.Goal) error {
	const stmt = `
INSERT INTO goals (` + goalColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.Conn(ctx).ExecContext(ctx, stmt,
		goal.ID,
		goal.Title,
		goal.Description,
		goal.TargetHours,
		goal.HoursLogged,
		sqlite.NullMillis(goal.Deadline),
		string(goal.Status),
		goal.Color,
		sqlite.NullFloat(goal.Efficiency),
		sqlite.Millis(goal.CreatedAt),
		sqlite.NullMillis(goal.UpdatedAt),
	)
	if sqlite.IsUniqueViolation(err) {
		return apperrors.ErrDuplicateTitle
	}
	return apperrors.Persistence("insert goal", err)
}

func (s *SQLiteGoalStore) Update(ctx context.Context, goal domain.Goal) error {
	const stmt = `
UPDATE goals SET
  title = ?,
  description = ?,
  target_hours = ?,
  hours_logged = ?,
  deadline = ?,
  status = ?,
  color = ?,
  efficiency = ?,
  updated_at = ?
WHERE id = ?`
	res, err := s.db.Conn(ctx).ExecContext(ctx, stmt,
		goal.Title,
		goal.Description,
		goal.TargetHours,
		goal.HoursLogged,
		sqlite.NullMillis(goal.Deadline),
		string(goal.Status),
		goal.Color,
		sqlite.NullFloat(goal.Efficiency),
		sqlite.NullMillis(goal.UpdatedAt),
		goal.ID,
	)
	if sqlite.IsUniqueViolation(err) {
		return apperrors.ErrDuplicateTitle
	}
	if err != nil {
		return apperrors.Persistence("update goal", err)
	}
	return requireRow(res, "goal", goal.ID)
}

func (s *SQLiteGoalStore) FindByID(ctx context.Context, id string) (domain.Goal, error) {
	row := s.db.Conn(ctx).QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Goal{}, apperrors.NotFound("goal", id)
	}
	if err != nil {
		return domain.Goal{}, apperrors.Persistence("select goal", err)
	}
	return goal, nil
}

func (s *SQLiteGoalStore) FindByTitle(ctx context.Context, title string) (domain.Goal, error) {
	row := s.db.Conn(ctx).QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE title = ?`, title)
	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Goal{}, apperrors.NotFound("goal with title", title)
	}
	if err != nil {
		return domain.Goal{}, apperrors.Persistence("select goal by title", err)
	}
	return goal, nil
}

func (s *SQLiteGoalStore) List(ctx context.Context, activeOnly bool) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals`
	if activeOnly {
		query += ` WHERE status = 'active'`
	}
	query += ` ORDER BY created_at DESC, title ASC`
	rows, err := s.db.Conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Persistence("list goals", err)
	}
	defer rows.Close()

	var goals []domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, apperrors.Persistence("scan goal", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence("list goals", err)
	}
	return goals, nil
}

func (s *SQLiteGoalStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.Conn(ctx).ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return apperrors.Persistence("delete goal", err)
	}
	return requireRow(res, "goal", id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(row scanner) (domain.Goal, error) {
	var (
		goal       domain.Goal
		status     string
		deadline   sql.NullInt64
		efficiency sql.NullFloat64
		createdAt  int64
		updatedAt  sql.NullInt64
	)
	err := row.Scan(
		&goal.ID,
		&goal.Title,
		&goal.Description,
		&goal.TargetHours,
		&goal.HoursLogged,
		&deadline,
		&status,
		&goal.Color,
		&efficiency,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Goal{}, err
	}
	goal.Status = domain.Status(status)
	goal.Deadline = sqlite.FromNullMillis(deadline)
	goal.Efficiency = sqlite.FromNullFloat(efficiency)
	goal.CreatedAt = sqlite.FromMillis(createdAt)
	goal.UpdatedAt = sqlite.FromNullMillis(updatedAt)
	return goal, nil
}

func requireRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Persistence("rows affected", err)
	}
	if n == 0 {
		return apperrors.NotFound(entity, id)
	}
	return nil
}
