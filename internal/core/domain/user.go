package domain

import "time"

const (
	RoleHost  = "HOST"
	RoleGuest = "GUEST"
)

// User is the internal identity record behind an external-auth subject.
// Users are provisioned lazily on first authenticated action and never
// deleted by this core. Role is informational only — ownership, not role,
// gates property mutations.
type User struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
