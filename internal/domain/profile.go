package domain

// User roles as reported by the profile service. The client only uses the
// role to decide which actions to offer; enforcement happens server-side.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// Profile is the authenticated user's profile.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	AvatarURL string `json:"avatar_url"`
	About     string `json:"about"`
}

// IsTeacher reports whether the profile belongs to a teacher account.
func (p Profile) IsTeacher() bool {
	return p.Role == RoleTeacher
}
