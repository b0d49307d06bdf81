package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrProjectNotFound = errors.New("project not found")

type Repo interface {
	Create(ctx context.Context, companyId int, p Project) (int, error)
	Get(ctx context.Context, companyId int, id int) (Project, error)
	GetAll(ctx context.Context, companyId int) ([]Project, error)
	Delete(ctx context.Context, companyId int, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Create(ctx context.Context, companyId int, p Project) (int, error) {
	query := `INSERT INTO project (company_id, name, code) VALUES ($1, $2, $3) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query, companyId, p.Name, p.Code).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not create project: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, companyId int, id int) (Project, error) {
	query := `SELECT id, company_id, name, code FROM project WHERE company_id = $1 AND id = $2`

	var p Project
	err := r.db.QueryRowContext(ctx, query, companyId, id).Scan(&p.Id, &p.CompanyId, &p.Name, &p.Code)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrProjectNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan project: %w", err)
		log.Error(err)
		return Project{}, err
	}
	return p, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, companyId int) ([]Project, error) {
	query := `SELECT id, company_id, name, code FROM project WHERE company_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, companyId)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	projects := make([]Project, 0)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.Id, &p.CompanyId, &p.Name, &p.Code); err != nil {
			return nil, fmt.Errorf("could not scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("project rows iteration failed: %w", err)
	}
	return projects, nil
}

func (r *RepoImpl) Delete(ctx context.Context, companyId int, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM project WHERE company_id = $1 AND id = $2`, companyId, id)
	if err != nil {
		err := fmt.Errorf("could not delete project: %w", err)
		log.Error(err)
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	return rows > 0, nil
}
