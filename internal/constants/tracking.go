package constants

const (
	// Attendance
	AttendanceThreshold    = 75 // minimum percentage of attended classes
	AttendanceWarningLevel = 65 // below the threshold but not yet critical

	// Productivity
	MaxProductivityLevel = 10
	RecentActivityLimit  = 5

	// Health
	HealthHistoryLimit = 7

	// Roster
	MinSemesterNumber     = 1
	MaxSemesterNumber     = 8
	DefaultUnitsPerCourse = 5

	// Default bus slot times used when the profile leaves them unset
	DefaultBusToCollegeStart = "06:45"
	DefaultBusReturnStart    = "15:50"

	// LastTrackedHour caps non-college day slot generation.
	LastTrackedHour = 23

	// SemesterSelectorCurrent selects the semester whose window contains today.
	SemesterSelectorCurrent = "current"
)

// ProductivityLevels are the admissible per-hour effort ratings.
var ProductivityLevels = []int{1, 2, 5, 10}

// Onboarding defaults for a fresh schedule profile.
const (
	DefaultWakeUpTime         = "04:00"
	DefaultBusToCollegeEnd    = "07:45"
	DefaultPrepTimeStart      = "05:00"
	DefaultPrepTimeEnd        = "06:45"
	DefaultCollegeStart       = "08:00"
	DefaultCollegeEnd         = "15:40"
	DefaultBusReturnEnd       = "17:10"
	DefaultRefreshTimeStart   = "17:10"
	DefaultRefreshTimeEnd     = "18:00"
	DefaultActiveEveningStart = "18:00"
	DefaultActiveEveningEnd   = "22:00"
	DefaultUsualSleepTime     = "23:00"
)
