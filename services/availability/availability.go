package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	bookingRepo "maidly/database/repository/booking"
	timeslotRepo "maidly/database/repository/timeslot"
	"maidly/models"
	"maidly/services/calendar"
	"maidly/utils"
)

// Service answers capacity and conflict questions. It owns no state beyond
// the capacity counters managed through the timeslot repository.
type Service struct {
	Slots       timeslotRepo.TimeSlotRepository
	Bookings    bookingRepo.BookingRepository
	Calendar    calendar.Port
	Cache       *redis.Client
	TimeSlots   []string // the bookable slot keys, e.g. "10:00-12:00"
	HorizonDays int
}

// HasSlotCapacity reports whether (date, timeSlot) can take one more booking.
// A missing availability record means the slot was never booked: full default
// capacity, so available.
func (s *Service) HasSlotCapacity(ctx context.Context, date, timeSlot string) (bool, error) {
	slot, err := s.Slots.GetByDateSlot(ctx, date, timeSlot)
	if err != nil {
		return false, err
	}
	if slot == nil {
		return true, nil
	}
	if slot.Blocked {
		return false, nil
	}
	return slot.BookedCount < slot.TotalCapacity, nil
}

// AvailableDates lists dates over the horizon with at least one open slot
// record. A date with no records is not listed.
//
// The per-date check confirms open slot records, not per-cleaner capacity;
// kept as-is for compatibility with existing clients.
func (s *Service) AvailableDates(ctx context.Context) ([]string, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, utils.AvailableDatesCacheKey).Result(); err == nil {
			var dates []string
			if err := json.Unmarshal([]byte(cached), &dates); err == nil {
				return dates, nil
			}
		}
	}

	today := time.Now()
	from := today.Format(utils.DateLayout)
	to := today.AddDate(0, 0, s.HorizonDays).Format(utils.DateLayout)

	slots, err := s.Slots.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to scan slot availability: %w", err)
	}

	// Index recorded slots; a date is listed only when at least one recorded
	// slot for it is open. Records under retired slot keys are ignored.
	bookable := make(map[string]bool, len(s.TimeSlots))
	for _, key := range s.TimeSlots {
		bookable[key] = true
	}
	recorded := make(map[string][]models.TimeSlotAvailability)
	for _, slot := range slots {
		if !bookable[slot.TimeSlot] {
			continue
		}
		recorded[slot.Date] = append(recorded[slot.Date], slot)
	}

	var dates []string
	for d := 0; d < s.HorizonDays; d++ {
		date := today.AddDate(0, 0, d).Format(utils.DateLayout)
		if s.dateHasOpenSlot(recorded[date]) {
			dates = append(dates, date)
		}
	}

	if s.Cache != nil {
		payload, err := json.Marshal(dates)
		if err == nil {
			if err := s.Cache.Set(ctx, utils.AvailableDatesCacheKey, payload, utils.AvailableDatesCacheTTL).Err(); err != nil {
				logger.Warn("failed to cache available dates", zap.Error(err))
			}
		}
	}
	return dates, nil
}

// dateHasOpenSlot requires an existing, open slot record. Unrecorded slot
// keys do not count, so a date with no records is never listed even though
// has-slot-capacity would admit a booking there (lazy capacity). Kept as-is
// for compatibility with existing clients.
func (s *Service) dateHasOpenSlot(daySlots []models.TimeSlotAvailability) bool {
	for _, slot := range daySlots {
		if !slot.Blocked && slot.BookedCount < slot.TotalCapacity {
			return true
		}
	}
	return false
}

// CheckCleanerConflict reports whether the cleaner is busy during
// [start, end). Calendar-integrated cleaners are checked against their
// external calendar; the rest against existing bookings for the same
// date/slot. A failing calendar read degrades to the booking query.
func (s *Service) CheckCleanerConflict(ctx context.Context, cleaner *models.Cleaner, start, end time.Time, date, timeSlot string) (bool, error) {
	logger := utils.GetLogger()

	if cleaner.CalendarIntegration && cleaner.CalendarRef != "" && s.Calendar != nil {
		events, err := s.Calendar.ListEvents(ctx, cleaner.CalendarRef, start, end)
		if err == nil {
			return len(events) > 0, nil
		}
		logger.Warn("calendar conflict check failed, falling back to booking lookup",
			zap.String("cleanerID", cleaner.ID), zap.Error(err))
	}

	count, err := s.Bookings.CountByCleanerDateSlot(ctx, cleaner.ID, date, timeSlot)
	if err != nil {
		return false, fmt.Errorf("cleaner conflict lookup failed: %w", err)
	}
	return count > 0, nil
}
