package scheduler

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotNumber(t *testing.T) {
	assert.Equal(t, 1, SlotNumber(Slot1))
	assert.Equal(t, 4, SlotNumber(Slot4))
	assert.Equal(t, 6, SlotNumber(Slot6))
	assert.Equal(t, 0, SlotNumber("not_a_slot"))
}

func TestSlotNumberOrdersNumerically(t *testing.T) {
	slots := []string{"slot_10", Slot2, Slot1}
	sort.Slice(slots, func(i, j int) bool {
		return SlotNumber(slots[i]) < SlotNumber(slots[j])
	})

	// slot_10 sorts after slot_2, unlike the lexical order
	assert.Equal(t, []string{"slot_1", "slot_2", "slot_10"}, slots)
}

func TestValidSlot(t *testing.T) {
	for _, slot := range []string{Slot1, Slot2, Slot3, Slot4, Slot5, Slot6} {
		assert.True(t, ValidSlot(slot))
	}
	assert.False(t, ValidSlot("slot_7"))
	assert.False(t, ValidSlot(""))
	assert.False(t, ValidSlot("SLOT_1"))
}

func TestSlotStartHoursAscending(t *testing.T) {
	prev := -1
	for n := 1; n <= 6; n++ {
		var slot string
		switch n {
		case 1:
			slot = Slot1
		case 2:
			slot = Slot2
		case 3:
			slot = Slot3
		case 4:
			slot = Slot4
		case 5:
			slot = Slot5
		case 6:
			slot = Slot6
		}
		hour := SlotStartHours[slot]
		assert.Greater(t, hour, prev)
		prev = hour
	}
}
