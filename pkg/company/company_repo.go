package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrCompanyNotFound = errors.New("company not found")

type Repo interface {
	Create(ctx context.Context, c Company) (int, error)
	GetByUid(ctx context.Context, uid string) (Company, error)
	Get(ctx context.Context, id int) (Company, error)
	Update(ctx context.Context, c Company) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Create(ctx context.Context, c Company) (int, error) {
	query := `INSERT INTO company (uid, name, default_weekly_capacity) VALUES ($1, $2, $3) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query, c.Uid, c.Name, c.DefaultWeeklyCapacity).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not create company: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetByUid(ctx context.Context, uid string) (Company, error) {
	query := `SELECT id, uid, name, default_weekly_capacity FROM company WHERE uid = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, uid))
}

func (r *RepoImpl) Get(ctx context.Context, id int) (Company, error) {
	query := `SELECT id, uid, name, default_weekly_capacity FROM company WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *RepoImpl) Update(ctx context.Context, c Company) (bool, error) {
	query := `UPDATE company SET name = $1, default_weekly_capacity = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, c.Name, c.DefaultWeeklyCapacity, c.Id)
	if err != nil {
		err := fmt.Errorf("could not update company: %w", err)
		log.Error(err)
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	return rows > 0, nil
}

func (r *RepoImpl) scanOne(row *sql.Row) (Company, error) {
	var c Company
	err := row.Scan(&c.Id, &c.Uid, &c.Name, &c.DefaultWeeklyCapacity)
	if errors.Is(err, sql.ErrNoRows) {
		return Company{}, ErrCompanyNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan company: %w", err)
		log.Error(err)
		return Company{}, err
	}
	return c, nil
}
