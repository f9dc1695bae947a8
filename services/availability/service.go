package availability

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	availabilityRepo "solecare/database/repository/availability"
	"solecare/utils"
)

const dateLayout = "2006-01-02"

// DefaultAvailabilityService backs the calendar against the availability
// collection.
type DefaultAvailabilityService struct {
	Repo availabilityRepo.AvailabilityRepository
	// Now allows tests to pin the clock; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AvailableDates lists dates with at least one open slot, excluding all past
// dates. "Past" is decided at local midnight so today stays bookable until
// the day rolls over.
func (s *DefaultAvailabilityService) AvailableDates(ctx context.Context) ([]string, error) {
	days, err := s.Repo.GetAllDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability: %w", err)
	}

	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var dates []string
	for _, day := range days {
		if len(day.Times) == 0 {
			continue
		}
		d, err := time.ParseInLocation(dateLayout, day.Date, now.Location())
		if err != nil {
			utils.GetLogger().Warn("availability: skipping malformed date",
				zap.String("date", day.Date), zap.Error(err))
			continue
		}
		if d.Before(midnight) {
			continue
		}
		dates = append(dates, day.Date)
	}
	return dates, nil
}

func (s *DefaultAvailabilityService) AvailableTimes(ctx context.Context, date string) ([]string, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	times, err := s.Repo.GetTimes(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch times for %s: %w", date, err)
	}
	return times, nil
}

func (s *DefaultAvailabilityService) SetDay(ctx context.Context, date string, times []string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	return s.Repo.SetDay(ctx, date, times)
}

func (s *DefaultAvailabilityService) AddSlot(ctx context.Context, date, slotTime string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	return s.Repo.AddSlot(ctx, date, slotTime)
}

func (s *DefaultAvailabilityService) RemoveSlot(ctx context.Context, date, slotTime string) error {
	return s.Repo.RemoveSlot(ctx, date, slotTime)
}
