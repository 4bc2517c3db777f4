package domain

// Review is a student's course review.
type Review struct {
	ID         string `json:"id"`
	CourseID   string `json:"course_id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	CreatedAt  string `json:"created_at"`
}

// GeneratedFeedback is the AI service's suggested feedback for a submission.
// The suggestion is a draft for the teacher to edit, never sent to the
// student automatically.
type GeneratedFeedback struct {
	SubmissionID string `json:"submission_id"`
	Text         string `json:"text"`
}
