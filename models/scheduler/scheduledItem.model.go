package scheduler

import (
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Item types
const (
	ItemRecorded = "recorded"
	ItemLive     = "live"
)

// The six fixed daily time slots
const (
	Slot1 = "slot_1"
	Slot2 = "slot_2"
	Slot3 = "slot_3"
	Slot4 = "slot_4"
	Slot5 = "slot_5"
	Slot6 = "slot_6"
)

// SlotStartHours maps each slot to the local hour its window opens.
// Used by the reminder job to anchor reminder lead times.
var SlotStartHours = map[string]int{
	Slot1: 8,
	Slot2: 10,
	Slot3: 12,
	Slot4: 14,
	Slot5: 16,
	Slot6: 18,
}

// ValidSlot reports whether s is one of the six fixed slots
func ValidSlot(s string) bool {
	_, ok := SlotStartHours[s]
	return ok
}

// SlotNumber extracts the numeric suffix of a slot id ("slot_4" -> 4).
// Slots order by this number, not by the identifier string.
func SlotNumber(slotID string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(slotID, "slot_"))
	if err != nil {
		return 0
	}
	return n
}

// ScheduledItem is a single learning unit (one lesson or live session)
// assigned to a date and slot for a learner. Created by weekly plan
// generation, mutated only by mark-completed, never deleted.
type ScheduledItem struct {
	gorm.Model
	ScheduledCourseID uint       `json:"scheduled_course_id" gorm:"index;not null"`
	ItemID            string     `json:"item_id" gorm:"size:64;uniqueIndex;not null"` // Stable public identifier
	Title             string     `json:"title"`
	ModuleTitle       string     `json:"module_title"`
	Date              time.Time  `json:"date" gorm:"index;not null"`
	SlotID            string     `json:"slot_id" gorm:"size:16;not null"` // slot_1..slot_6
	LessonNumber      int        `json:"lesson_number" gorm:"default:0"`
	TotalLessons      int        `json:"total_lessons" gorm:"default:0"`
	Type              string     `json:"type" gorm:"default:'recorded'"` // recorded, live
	IsCompleted       bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt       *time.Time `json:"completed_at"`
	ReminderSent      bool       `json:"reminder_sent" gorm:"default:false"`
}
