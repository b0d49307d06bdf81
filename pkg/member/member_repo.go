package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrMemberNotFound = errors.New("member not found")

type Repo interface {
	Create(ctx context.Context, companyId int, m Member) (int, error)
	Get(ctx context.Context, companyId int, id int) (Member, error)
	GetByUid(ctx context.Context, companyId int, uid string) (Member, error)
	GetAll(ctx context.Context, companyId int) ([]Member, error)
	GetAllByType(ctx context.Context, companyId int, memberType Type) ([]Member, error)
	Update(ctx context.Context, companyId int, m Member) (bool, error)
	Delete(ctx context.Context, companyId int, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const memberColumns = `id, uid, company_id, display_name, email, member_type, weekly_capacity`

func (r *RepoImpl) Create(ctx context.Context, companyId int, m Member) (int, error) {
	query := `INSERT INTO member (uid, company_id, display_name, email, member_type, weekly_capacity)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		m.Uid,
		companyId,
		m.DisplayName,
		m.Email,
		string(m.Type),
		m.WeeklyCapacity,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not create member: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, companyId int, id int) (Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM member WHERE company_id = $1 AND id = $2`, memberColumns)
	return scanMember(r.db.QueryRowContext(ctx, query, companyId, id))
}

func (r *RepoImpl) GetByUid(ctx context.Context, companyId int, uid string) (Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM member WHERE company_id = $1 AND uid = $2`, memberColumns)
	return scanMember(r.db.QueryRowContext(ctx, query, companyId, uid))
}

func (r *RepoImpl) GetAll(ctx context.Context, companyId int) ([]Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM member WHERE company_id = $1 ORDER BY display_name`, memberColumns)
	rows, err := r.db.QueryContext(ctx, query, companyId)
	if err != nil {
		err := fmt.Errorf("could not query members: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

func (r *RepoImpl) GetAllByType(ctx context.Context, companyId int, memberType Type) ([]Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM member WHERE company_id = $1 AND member_type = $2 ORDER BY display_name`, memberColumns)
	rows, err := r.db.QueryContext(ctx, query, companyId, string(memberType))
	if err != nil {
		err := fmt.Errorf("could not query members by type: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

func (r *RepoImpl) Update(ctx context.Context, companyId int, m Member) (bool, error) {
	query := `UPDATE member SET display_name = $1, email = $2, member_type = $3, weekly_capacity = $4
				WHERE company_id = $5 AND id = $6`
	result, err := r.db.ExecContext(ctx, query,
		m.DisplayName,
		m.Email,
		string(m.Type),
		m.WeeklyCapacity,
		companyId,
		m.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update member: %w", err)
		log.Error(err)
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	return rows > 0, nil
}

func (r *RepoImpl) Delete(ctx context.Context, companyId int, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM member WHERE company_id = $1 AND id = $2`, companyId, id)
	if err != nil {
		err := fmt.Errorf("could not delete member: %w", err)
		log.Error(err)
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	return rows > 0, nil
}

func scanMember(row *sql.Row) (Member, error) {
	var m Member
	var memberType string
	err := row.Scan(&m.Id, &m.Uid, &m.CompanyId, &m.DisplayName, &m.Email, &memberType, &m.WeeklyCapacity)
	if errors.Is(err, sql.ErrNoRows) {
		return Member{}, ErrMemberNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan member: %w", err)
		log.Error(err)
		return Member{}, err
	}
	m.Type = Type(memberType)
	return m, nil
}

func scanMembers(rows *sql.Rows) ([]Member, error) {
	members := make([]Member, 0)
	for rows.Next() {
		var m Member
		var memberType string
		if err := rows.Scan(&m.Id, &m.Uid, &m.CompanyId, &m.DisplayName, &m.Email, &memberType, &m.WeeklyCapacity); err != nil {
			return nil, fmt.Errorf("could not scan member row: %w", err)
		}
		m.Type = Type(memberType)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("member rows iteration failed: %w", err)
	}
	return members, nil
}
