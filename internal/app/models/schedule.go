package models

// ScheduleEntry represents one slot of a published timetable.
// Entries are produced and validated entirely by the backend; the
// dashboard only displays them.
type ScheduleEntry struct {
	ID           int64  `json:"id"`
	CourseCode   string `json:"course_code"`
	CourseName   string `json:"course_name"`
	RoomNumber   string `json:"room_number"`
	Day          string `json:"day"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	InstructorID int64  `json:"instructor_id"`
	Section      string `json:"section"`
	Semester     int    `json:"semester"`
}
