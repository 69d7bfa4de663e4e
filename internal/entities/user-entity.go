package entities

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

type UserStatus string

const (
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
)

func (s UserStatus) IsValid() bool {
	return s == UserStatusPending || s == UserStatusActive
}

// User id doubles as the username. Password holds a bcrypt hash; rows that
// predate hashing may still carry a literal and are compared as such.
type User struct {
	ID       string     `json:"id"`
	Password string     `json:"password"`
	Role     Role       `json:"role"`
	Status   UserStatus `json:"status"`
}
