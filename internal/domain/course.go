package domain

// Course lifecycle status as reported by the course service.
const (
	CourseStatusActive = "active"
	CourseStatusEnded  = "ended"
)

// Course represents a course as returned by the course service.
type Course struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	TeacherID   string `json:"teacher_id"`
	TeacherName string `json:"teacher_name"`
	DateInit    string `json:"date_init"` // yyyy-MM-dd
	DateEnd     string `json:"date_end"`  // yyyy-MM-dd
	Quota       int    `json:"quota"`
	Enrolled    bool   `json:"enrolled"`
	Favorite    bool   `json:"favorite"`
	Status      string `json:"status"`
}

// CanEnroll reports whether the enroll control should be enabled: there must
// be remaining quota and the student must not already be enrolled.
func (c Course) CanEnroll() bool {
	return !c.Enrolled && c.Quota > 0
}
