package services

import (
	"sort"
	"time"

	"github.com/tembea/local_guide/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var weekdayOrder = map[string]int{
	"Monday":    0,
	"Tuesday":   1,
	"Wednesday": 2,
	"Thursday":  3,
	"Friday":    4,
	"Saturday":  5,
	"Sunday":    6,
}

// SlotInput is one recurring weekly window submitted by a guide.
type SlotInput struct {
	DayOfWeek   string
	StartMinute int
	EndMinute   int
}

// AvailabilityStore owns each guide's recurring weekly schedule. It knows
// nothing about bookings: instance-level conflicts are the matching engine's
// concern.
type AvailabilityStore struct {
	db *gorm.DB
}

func NewAvailabilityStore(db *gorm.DB) *AvailabilityStore {
	return &AvailabilityStore{db: db}
}

// GetSchedule returns the guide's current recurring schedule ordered by
// weekday then start time. Empty if none has been set.
func (s *AvailabilityStore) GetSchedule(guideID uuid.UUID) ([]models.AvailabilitySlot, error) {
	var slots []models.AvailabilitySlot
	if err := s.db.Where("guide_id = ?", guideID).Find(&slots).Error; err != nil {
		return nil, err
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return weekdayOrder[slots[i].DayOfWeek] < weekdayOrder[slots[j].DayOfWeek]
		}
		return slots[i].StartMinute < slots[j].StartMinute
	})
	return slots, nil
}

// SetSchedule validates the submitted slots and replaces the guide's stored
// schedule wholesale in one transaction. Last write wins; existing bookings
// are never touched, schedule changes are prospective only.
func (s *AvailabilityStore) SetSchedule(guideID uuid.UUID, inputs []SlotInput) ([]models.AvailabilitySlot, error) {
	if err := validateSchedule(inputs); err != nil {
		return nil, err
	}

	slots := make([]models.AvailabilitySlot, 0, len(inputs))
	for _, in := range inputs {
		slots = append(slots, models.AvailabilitySlot{
			ID:          uuid.New(),
			GuideID:     guideID,
			DayOfWeek:   in.DayOfWeek,
			StartMinute: in.StartMinute,
			EndMinute:   in.EndMinute,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guide_id = ?", guideID).Delete(&models.AvailabilitySlot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetSchedule(guideID)
}

// IsAvailable reports whether [startMinute, startMinute+durationHours*60) on
// the given date is fully contained in one recurring slot for that weekday.
func (s *AvailabilityStore) IsAvailable(guideID uuid.UUID, date time.Time, startMinute, durationHours int) (bool, error) {
	if durationHours <= 0 || startMinute < 0 {
		return false, nil
	}
	endMinute := startMinute + durationHours*60
	if endMinute > 24*60 {
		return false, nil
	}

	var count int64
	err := s.db.Model(&models.AvailabilitySlot{}).
		Where("guide_id = ? AND day_of_week = ? AND start_minute <= ? AND end_minute >= ?",
			guideID, date.Weekday().String(), startMinute, endMinute).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func validateSchedule(inputs []SlotInput) error {
	byDay := make(map[string][]SlotInput)
	for _, in := range inputs {
		if _, ok := weekdayOrder[in.DayOfWeek]; !ok {
			return ErrInvalidSchedule
		}
		if in.StartMinute < 0 || in.EndMinute > 24*60 || in.StartMinute >= in.EndMinute {
			return ErrInvalidSchedule
		}
		byDay[in.DayOfWeek] = append(byDay[in.DayOfWeek], in)
	}

	for _, daySlots := range byDay {
		sort.Slice(daySlots, func(i, j int) bool { return daySlots[i].StartMinute < daySlots[j].StartMinute })
		for i := 1; i < len(daySlots); i++ {
			if daySlots[i].StartMinute < daySlots[i-1].EndMinute {
				return ErrInvalidSchedule
			}
		}
	}
	return nil
}
