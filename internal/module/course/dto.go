package course

// CreateCourseRequest is the payload for creating a course (teacher role).
type CreateCourseRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category" validate:"required"`
	DateInit    string `json:"date_init" validate:"required,datetime=2006-01-02"`
	DateEnd     string `json:"date_end" validate:"required,datetime=2006-01-02"`
	Quota       int    `json:"quota" validate:"required,min=1,max=500"`
}

// UpdateCourseRequest is the payload for editing a course's descriptive
// fields. It never changes enrollment or dates, which keeps the mutation's
// effect on cached lists fully known (a field-level patch).
type UpdateCourseRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=120"`
	Description string `json:"description" validate:"max=2000"`
}
