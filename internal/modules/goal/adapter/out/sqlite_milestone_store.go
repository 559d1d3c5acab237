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

const milestoneColumns = `id, goal_id, title, completed, completed_at, order_index`

type SQLiteMilestoneStore struct {
	db *sqlite.DB
}

func NewSQLiteMilestoneStore(db *sqlite.DB) goalout.MilestoneStore {
	return &SQLiteMilestoneStore{db: db}
}

func (s *SQLiteMilestoneStore) Insert(ctx context.Context, m domain.Milestone) error {
	_, err := s.db.Conn(ctx).ExecContext(ctx,
		`INSERT INTO milestones (`+milestoneColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.GoalID, m.Title, m.Completed, sqlite.NullMillis(m.CompletedAt), m.OrderIndex,
	)
	return apperrors.Persistence("insert milestone", err)
}

func (s *SQLiteMilestoneStore) Update(ctx context.Context, m domain.Milestone) error {
	res, err := s.db.Conn(ctx).ExecContext(ctx,
		`UPDATE milestones SET title = ?, completed = ?, completed_at = ?, order_index = ? WHERE id = ?`,
		m.Title, m.Completed, sqlite.NullMillis(m.CompletedAt), m.OrderIndex, m.ID,
	)
	if err != nil {
		return apperrors.Persistence("update milestone", err)
	}
	return requireRow(res, "milestone", m.ID)
}

func (s *SQLiteMilestoneStore) FindByID(ctx context.Context, id string) (domain.Milestone, error) {
	row := s.db.Conn(ctx).QueryRowContext(ctx, `SELECT `+milestoneColumns+` FROM milestones WHERE id = ?`, id)
	m, err := scanMilestone(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Milestone{}, apperrors.NotFound("milestone", id)
	}
	if err != nil {
		return domain.Milestone{}, apperrors.Persistence("select milestone", err)
	}
	return m, nil
}

func (s *SQLiteMilestoneStore) ListByGoal(ctx context.Context, goalID string) ([]domain.Milestone, error) {
	rows, err := s.db.Conn(ctx).QueryContext(ctx,
		`SELECT `+milestoneColumns+` FROM milestones WHERE goal_id = ? ORDER BY order_index ASC, id ASC`, goalID)
	if err != nil {
		return nil, apperrors.Persistence("list milestones", err)
	}
	defer rows.Close()

	var out []domain.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, apperrors.Persistence("scan milestone", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence("list milestones", err)
	}
	return out, nil
}

func (s *SQLiteMilestoneStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.Conn(ctx).ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return apperrors.Persistence("delete milestone", err)
	}
	return requireRow(res, "milestone", id)
}

func scanMilestone(row scanner) (domain.Milestone, error) {
	var (
		m           domain.Milestone
		completedAt sql.NullInt64
	)
	if err := row.Scan(&m.ID, &m.GoalID, &m.Title, &m.Completed, &completedAt, &m.OrderIndex); err != nil {
		return domain.Milestone{}, err
	}
	m.CompletedAt = sqlite.FromNullMillis(completedAt)
	return m, nil
}
