package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/staffpad/staffpad/internal/cache"
	"github.com/staffpad/staffpad/internal/event_bus"
	"github.com/staffpad/staffpad/pkg/company"
	"github.com/staffpad/staffpad/pkg/member"
	"github.com/staffpad/staffpad/pkg/week"
)

// CachedService serves breakdowns through a read-through cache keyed by
// (company, member set, window). The inner service is pure, so cached and
// fresh results are indistinguishable; allocation and leave change events
// drop every cached window of the affected company.
type CachedService struct {
	inner Service
	cache *cache.Cache[BreakdownMap]
}

func NewCachedService(inner Service, ttl time.Duration, eventBus *event_bus.EventBus) *CachedService {
	s := &CachedService{
		inner: inner,
		cache: cache.New[BreakdownMap](ttl),
	}
	if eventBus != nil {
		event_bus.SubscribeTyped[event_bus.AllocationUpdated](
			eventBus,
			event_bus.AllocationUpdatedEvent,
			func(e event_bus.EventT[event_bus.AllocationUpdated]) error {
				log.Debugf("allocation changed, invalidating schedule cache for company %d", e.Data.CompanyId)
				s.cache.InvalidatePrefix(companyPrefix(e.Data.CompanyId))
				return nil
			},
		)
		event_bus.SubscribeTyped[event_bus.LeaveUpdated](
			eventBus,
			event_bus.LeaveUpdatedEvent,
			func(e event_bus.EventT[event_bus.LeaveUpdated]) error {
				log.Debugf("leave changed, invalidating schedule cache for company %d", e.Data.CompanyId)
				s.cache.InvalidatePrefix(companyPrefix(e.Data.CompanyId))
				return nil
			},
		)
	}
	return s
}

func (s *CachedService) MemberBreakdowns(
	ctx context.Context,
	members []member.Member,
	startDate time.Time,
	weeks int,
) (BreakdownMap, error) {
	companyId, err := company.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current company: %w", err)
	}

	key := cacheKey(companyId, members, startDate, weeks)
	return s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (BreakdownMap, error) {
		return s.inner.MemberBreakdowns(ctx, members, startDate, weeks)
	})
}

func cacheKey(companyId int, members []member.Member, startDate time.Time, weeks int) string {
	uids := make([]string, 0, len(members))
	for _, m := range members {
		uids = append(uids, m.Uid)
	}
	// Sorted so caller-side roster ordering does not fragment the cache.
	sort.Strings(uids)
	return fmt.Sprintf("%s%s|%s|%d", companyPrefix(companyId), strings.Join(uids, ","), week.FromDate(startDate), weeks)
}

func companyPrefix(companyId int) string {
	return fmt.Sprintf("%d|", companyId)
}
