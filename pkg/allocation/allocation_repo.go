package allocation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/staffpad/staffpad/pkg/member"
)

var ErrAllocationNotFound = errors.New("allocation not found")

type Repo interface {
	// FindForRange returns allocations with hours > 0 whose week start falls
	// inside [from, to], for all members of the company.
	FindForRange(ctx context.Context, companyId int, from time.Time, to time.Time) ([]Allocation, error)
	// FindForRangeByType is FindForRange restricted to one member type.
	FindForRangeByType(ctx context.Context, companyId int, from time.Time, to time.Time, memberType member.Type) ([]Allocation, error)
	// Upsert stores hours for (member, project, week), replacing an existing
	// row. Hours <= 0 removes the row.
	Upsert(ctx context.Context, companyId int, a Allocation) (Allocation, error)
	Delete(ctx context.Context, companyId int, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const allocationSelect = `
	SELECT a.id, a.company_id, a.member_id, a.project_id, a.week_start, a.hours, m.member_type
	FROM allocation a
	JOIN member m ON m.id = a.member_id
	WHERE a.company_id = $1 AND a.hours > 0 AND a.week_start >= $2 AND a.week_start <= $3`

func (r *RepoImpl) FindForRange(ctx context.Context, companyId int, from time.Time, to time.Time) ([]Allocation, error) {
	rows, err := r.db.QueryContext(ctx, allocationSelect+` ORDER BY a.week_start`, companyId, from, to)
	if err != nil {
		err := fmt.Errorf("could not query allocations: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanAllocations(rows)
}

func (r *RepoImpl) FindForRangeByType(
	ctx context.Context,
	companyId int,
	from time.Time,
	to time.Time,
	memberType member.Type,
) ([]Allocation, error) {
	rows, err := r.db.QueryContext(ctx,
		allocationSelect+` AND m.member_type = $4 ORDER BY a.week_start`,
		companyId, from, to, string(memberType),
	)
	if err != nil {
		err := fmt.Errorf("could not query allocations by member type: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()
	return scanAllocations(rows)
}

func (r *RepoImpl) Upsert(ctx context.Context, companyId int, a Allocation) (Allocation, error) {
	if a.Hours <= 0 {
		_, err := r.db.ExecContext(ctx,
			`DELETE FROM allocation WHERE company_id = $1 AND member_id = $2 AND project_id = $3 AND week_start = $4`,
			companyId, a.MemberId, a.ProjectId, a.WeekStart,
		)
		if err != nil {
			err := fmt.Errorf("could not clear allocation: %w", err)
			log.Error(err)
			return Allocation{}, err
		}
		a.Id = 0
		a.CompanyId = companyId
		return a, nil
	}

	query := `INSERT INTO allocation (company_id, member_id, project_id, week_start, hours)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (company_id, member_id, project_id, week_start)
				DO UPDATE SET hours = EXCLUDED.hours
				RETURNING id`

	var id int
	err := r.db.QueryRowContext(ctx, query, companyId, a.MemberId, a.ProjectId, a.WeekStart, a.Hours).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not upsert allocation: %w", err)
		log.Error(err)
		return Allocation{}, err
	}
	a.Id = id
	a.CompanyId = companyId
	return a, nil
}

func (r *RepoImpl) Delete(ctx context.Context, companyId int, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM allocation WHERE company_id = $1 AND id = $2`, companyId, id)
	if err != nil {
		err := fmt.Errorf("could not delete allocation: %w", err)
		log.Error(err)
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}
	return rows > 0, nil
}

func scanAllocations(rows *sql.Rows) ([]Allocation, error) {
	allocations := make([]Allocation, 0)
	for rows.Next() {
		var a Allocation
		var memberType string
		if err := rows.Scan(&a.Id, &a.CompanyId, &a.MemberId, &a.ProjectId, &a.WeekStart, &a.Hours, &memberType); err != nil {
			return nil, fmt.Errorf("could not scan allocation row: %w", err)
		}
		a.MemberType = member.Type(memberType)
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("allocation rows iteration failed: %w", err)
	}
	return allocations, nil
}
