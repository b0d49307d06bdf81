package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrLeaveNotFound = errors.New("leave entry not found")

type Repo interface {
	AddDaily(ctx context.Context, companyId int, l DailyLeave) (int, error)
	AddWeekly(ctx context.Context, companyId int, l WeeklyLeave) (int, error)
	FindDailyForRange(ctx context.Context, companyId int, from time.Time, to time.Time) ([]DailyLeave, error)
	FindWeeklyForRange(ctx context.Context, companyId int, from time.Time, to time.Time, category Category) ([]WeeklyLeave, error)
	DeleteDaily(ctx context.Context, companyId int, id int) (bool, error)
	DeleteWeekly(ctx context.Context, companyId int, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) AddDaily(ctx context.Context, companyId int, l DailyLeave) (int, error) {
	query := `INSERT INTO leave_daily (company_id, member_id, date, hours) VALUES ($1, $2, $3, $4) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query, companyId, l.MemberId, l.Date, l.Hours).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store daily leave: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) AddWeekly(ctx context.Context, companyId int, l WeeklyLeave) (int, error) {
	query := `INSERT INTO leave_weekly (company_id, member_id, week_start, hours, category)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query, companyId, l.MemberId, l.WeekStart, l.Hours, string(l.Category)).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not store weekly leave: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) FindDailyForRange(ctx context.Context, companyId int, from time.Time, to time.Time) ([]DailyLeave, error) {
	query := `SELECT id, company_id, member_id, date, hours
				FROM leave_daily WHERE company_id = $1 AND date >= $2 AND date <= $3 ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, companyId, from, to)
	if err != nil {
		err := fmt.Errorf("could not query daily leave: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]DailyLeave, 0)
	for rows.Next() {
		var l DailyLeave
		if err := rows.Scan(&l.Id, &l.CompanyId, &l.MemberId, &l.Date, &l.Hours); err != nil {
			return nil, fmt.Errorf("could not scan daily leave row: %w", err)
		}
		entries = append(entries, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily leave rows iteration failed: %w", err)
	}
	return entries, nil
}

func (r *RepoImpl) FindWeeklyForRange(
	ctx context.Context,
	companyId int,
	from time.Time,
	to time.Time,
	category Category,
) ([]WeeklyLeave, error) {
	query := `SELECT id, company_id, member_id, week_start, hours, category
				FROM leave_weekly
				WHERE company_id = $1 AND week_start >= $2 AND week_start <= $3 AND category = $4
				ORDER BY week_start`

	rows, err := r.db.QueryContext(ctx, query, companyId, from, to, string(category))
	if err != nil {
		err := fmt.Errorf("could not query weekly leave: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]WeeklyLeave, 0)
	for rows.Next() {
		var l WeeklyLeave
		var cat string
		if err := rows.Scan(&l.Id, &l.CompanyId, &l.MemberId, &l.WeekStart, &l.Hours, &cat); err != nil {
			return nil, fmt.Errorf("could not scan weekly leave row: %w", err)
		}
		l.Category = Category(cat)
		entries = append(entries, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("weekly leave rows iteration failed: %w", err)
	}
	return entries, nil
}

func (r *RepoImpl) DeleteDaily(ctx context.Context, companyId int, id int) (bool, error) {
	return r.delete(ctx, `DELETE FROM leave_daily WHERE company_id = $1 AND id = $2`, companyId, id)
}

func (r *RepoImpl) DeleteWeekly(ctx context.Context, companyId int, id int) (bool, error) {
	return r.delete(ctx, `DELETE FROM leave_weekly WHERE company_id = $1 AND id = $2`, companyId, id)
}

func (r *RepoImpl) delete(ctx context.Context, query string, companyId int, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, companyId, id)
	if err != nil {
		err := fmt.Errorf("could not delete leave entry: %w", err)
		log.Error(err)
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	return rows > 0, nil
}
