package google

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/staffpad/staffpad/pkg/company"
	"github.com/staffpad/staffpad/pkg/leave"
	"github.com/staffpad/staffpad/pkg/member"
	"github.com/staffpad/staffpad/pkg/week"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type CalendarItem struct {
	ID      string
	Summary string
}

// ImportResult summarizes one holiday import run.
type ImportResult struct {
	// Events is the number of all-day holiday events found in the range.
	Events int
	// Rows is the number of weekly leave rows written, one per member per
	// affected week.
	Rows int
}

type Service interface {
	ListCalendars(ctx context.Context) ([]CalendarItem, error)

	// ImportHolidays reads all-day events from the holiday calendar and
	// records them as office-holiday leave for every member of the current
	// company. An empty calendarId falls back to the configured one.
	ImportHolidays(ctx context.Context, calendarId string, from time.Time, to time.Time) (ImportResult, error)
}

type MemberLister interface {
	GetAllMembers(ctx context.Context) ([]member.Member, error)
}

type LeaveRecorder interface {
	RecordWeeklyLeave(ctx context.Context, memberId int, weekDate time.Time, hours float64, category leave.Category) (leave.WeeklyLeave, error)
}

type ServiceImpl struct {
	auth              *GoogleAuth
	members           MemberLister
	leave             LeaveRecorder
	defaultCalendarId string
}

func NewService(auth *GoogleAuth, members MemberLister, leaveRecorder LeaveRecorder, defaultCalendarId string) *ServiceImpl {
	return &ServiceImpl{
		auth:              auth,
		members:           members,
		leave:             leaveRecorder,
		defaultCalendarId: defaultCalendarId,
	}
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	googleService, err := s.prepareGoogleService(ctx)
	if err != nil {
		return nil, err
	}
	calendars, err := googleService.CalendarList.List().Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %w", err)
		log.Error(err)
		return nil, err
	}
	var items []CalendarItem
	for _, cal := range calendars.Items {
		items = append(items, CalendarItem{ID: cal.Id, Summary: cal.Summary})
	}
	return items, nil
}

func (s *ServiceImpl) ImportHolidays(ctx context.Context, calendarId string, from time.Time, to time.Time) (ImportResult, error) {
	currentCompany, err := company.CurrentCompany(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to get current company: %w", err)
	}
	if calendarId == "" {
		calendarId = s.defaultCalendarId
	}
	if calendarId == "" {
		return ImportResult{}, fmt.Errorf("no holiday calendar configured")
	}

	googleService, err := s.prepareGoogleService(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	events, err := googleService.Events.List(calendarId).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve events from Google Calendar: %w", err)
		log.Error(err)
		return ImportResult{}, err
	}

	hoursPerDay := currentCompany.DefaultWeeklyCapacity / 5
	if hoursPerDay <= 0 {
		hoursPerDay = 8
	}

	result := ImportResult{}
	weekHours := make(map[week.Key]float64)
	for _, event := range events.Items {
		days, err := allDayEventDays(event)
		if err != nil {
			log.Warnf("skipping malformed holiday event %q: %v", event.Summary, err)
			continue
		}
		if days == nil {
			// timed events are meetings, not holidays
			log.Debugf("skipping non-all-day event %q in holiday calendar", event.Summary)
			continue
		}
		result.Events++
		for _, day := range days {
			weekHours[week.FromDate(day)] += hoursPerDay
		}
	}
	if len(weekHours) == 0 {
		return result, nil
	}

	members, err := s.members.GetAllMembers(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to load members: %w", err)
	}
	for key, hours := range weekHours {
		for _, m := range members {
			if _, err := s.leave.RecordWeeklyLeave(ctx, m.Id, key.Start(), hours, leave.Holiday); err != nil {
				return result, fmt.Errorf("failed to record holiday for member %d week %s: %w", m.Id, key, err)
			}
			result.Rows++
		}
	}
	return result, nil
}

// allDayEventDays returns the working days (Monday to Friday) an all-day
// event covers, or nil for timed events. Google encodes all-day events with
// a Date and an exclusive end Date.
func allDayEventDays(event *gcal.Event) ([]time.Time, error) {
	if event.Start == nil || event.Start.Date == "" {
		return nil, nil
	}
	start, err := time.Parse("2006-01-02", event.Start.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", event.Start.Date, err)
	}
	end := start.AddDate(0, 0, 1)
	if event.End != nil && event.End.Date != "" {
		end, err = time.Parse("2006-01-02", event.End.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", event.End.Date, err)
		}
	}
	var days []time.Time
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		days = append(days, day)
	}
	return days, nil
}

func (s *ServiceImpl) prepareGoogleService(ctx context.Context) (*gcal.Service, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current company: %w", err)
	}
	client, err := s.auth.getClient(ctx, companyId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %w", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("company is unauthenticated with Google, authentication is required")
		return nil, ErrUnauthenticated
	}
	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to create Calendar client: %w", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}
