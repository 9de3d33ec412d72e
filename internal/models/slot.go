package models

// SlotKind determines which HourRecord variant a slot accepts.
type SlotKind string

const (
	SlotPreCollege   SlotKind = "pre-college"
	SlotBusToCollege SlotKind = "bus-to-college"
	SlotCollegeHour  SlotKind = "college-hour"
	SlotBreak        SlotKind = "break"
	SlotBusReturn    SlotKind = "bus-return"
	SlotEvening      SlotKind = "evening"
	SlotRegular      SlotKind = "regular"
)

// Slot is a trackable hour-sized unit of a day.
type Slot struct {
	Time  string   `json:"time"` // HH:MM format
	Label string   `json:"label"`
	Kind  SlotKind `json:"kind"`
}

// AcceptsRecord reports whether any data is collected for the slot.
func (s Slot) AcceptsRecord() bool {
	return s.Kind != SlotBreak
}

// IsCollegeHour reports whether the slot collects subject attendance.
func (s Slot) IsCollegeHour() bool {
	return s.Kind == SlotCollegeHour
}
