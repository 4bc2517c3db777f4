package task

// CreateTaskRequest is the payload for creating a task or exam in a course
// (teacher role). Kind selects which sub-list the new work belongs to.
type CreateTaskRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=task exam"`
	Title       string `json:"title" validate:"required,min=3,max=120"`
	Description string `json:"description" validate:"max=2000"`
	DueDate     string `json:"due_date" validate:"required,datetime=2006-01-02"`
	MaxScore    int    `json:"max_score" validate:"required,min=1,max=100"`
}

// GradeRequest is the payload for grading a submission (teacher role).
type GradeRequest struct {
	Score   float64 `json:"score" validate:"min=0,max=100"`
	Comment string  `json:"comment" validate:"max=2000"`
}
