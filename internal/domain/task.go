package domain

// Kinds of course work. Tasks and exams share a shape but are listed and
// paginated independently.
const (
	WorkKindTask = "task"
	WorkKindExam = "exam"
)

// Task is a task or exam belonging to a course.
type Task struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"` // yyyy-MM-dd
	MaxScore    int    `json:"max_score"`
}

// Submission is a student's answer to a task or exam. Score is nil until the
// submission has been graded.
type Submission struct {
	ID          string   `json:"id"`
	TaskID      string   `json:"task_id"`
	StudentID   string   `json:"student_id"`
	StudentName string   `json:"student_name"`
	FileURL     string   `json:"file_url"`
	SubmittedAt string   `json:"submitted_at"`
	Score       *float64 `json:"score"`
	Comment     string   `json:"comment"`
}

// Graded reports whether the submission has received a score.
func (s Submission) Graded() bool {
	return s.Score != nil
}
