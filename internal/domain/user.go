package domain

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// DisplayName falls back to the username when no display name was registered.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Session is the persisted authentication slice.
type Session struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}

// Credentials is a login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is a register request body.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}
