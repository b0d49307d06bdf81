package leave

import (
	"context"
	"testing"
	"time"

	"github.com/staffpad/staffpad/pkg/company"
	"github.com/staffpad/staffpad/pkg/week"
	"github.com/stretchr/testify/assert"
)

func leaveCtx() context.Context {
	return company.WithCompany(context.Background(), company.Company{Id: 1, DefaultWeeklyCapacity: 40})
}

func TestServiceImpl_RecordWeeklyLeave_NormalizesWeekStart(t *testing.T) {
	service := NewService(NewStubRepo(), nil)
	ctx := leaveCtx()

	// given a week date that is a Thursday
	thursday := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	// when
	created, err := service.RecordWeeklyLeave(ctx, 1, thursday, 8, Other)

	// then the stored entry is Monday-aligned
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), created.WeekStart)
}

func TestServiceImpl_RecordWeeklyLeave_RejectsInvalid(t *testing.T) {
	service := NewService(NewStubRepo(), nil)
	ctx := leaveCtx()
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := service.RecordWeeklyLeave(ctx, 1, monday, 0, Other)
	assert.Error(t, err)

	_, err = service.RecordWeeklyLeave(ctx, 1, monday, 8, Annual)
	assert.Error(t, err, "annual leave is day-granular and must not be stored weekly")
}

func TestServiceImpl_TotalHoursForWeek(t *testing.T) {
	service := NewService(NewStubRepo(), nil)
	ctx := leaveCtx()
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// given 8h annual leave on Wednesday, 4h other leave, 8h holiday
	_, err := service.RecordAnnualLeave(ctx, 1, monday.AddDate(0, 0, 2), 8)
	assert.NoError(t, err)
	_, err = service.RecordWeeklyLeave(ctx, 1, monday, 4, Other)
	assert.NoError(t, err)
	_, err = service.RecordWeeklyLeave(ctx, 1, monday, 8, Holiday)
	assert.NoError(t, err)
	// and leave of another member in the same week
	_, err = service.RecordAnnualLeave(ctx, 2, monday, 8)
	assert.NoError(t, err)

	// when
	total, err := service.TotalHoursForWeek(ctx, 1, week.FromDate(monday))

	// then
	assert.NoError(t, err)
	assert.Equal(t, 20.0, total)
}
