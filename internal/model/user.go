package model

// Role is the account role assigned at creation. The upstream API never
// changes a role after the user exists.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"` // set only on create
	Role     Role   `json:"role,omitempty"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// Student is the role-specific sub-record for a student user. StudentID is
// the external display code, distinct from the row ID.
type Student struct {
	ID        int64  `json:"id,omitempty"`
	UserID    int64  `json:"user_id,omitempty"`
	StudentID string `json:"student_id,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IDNumber  string `json:"id_number,omitempty"`
	Address   string `json:"address,omitempty"`
}

type Teacher struct {
	ID         int64  `json:"id,omitempty"`
	UserID     int64  `json:"user_id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
	Department string `json:"department,omitempty"`
	IDNumber   string `json:"id_number,omitempty"`
}

// UserAndInfo pairs a user with its role-specific sub-record. Exactly one of
// Student/Teacher is set for those roles; admins carry neither.
type UserAndInfo struct {
	User    User     `json:"user"`
	Student *Student `json:"student,omitempty"`
	Teacher *Teacher `json:"teacher,omitempty"`
}

// CreateUserRequest always transmits both sub-objects; the one that does not
// match User.Role stays empty and the server ignores it.
type CreateUserRequest struct {
	User    User    `json:"user"`
	Student Student `json:"student"`
	Teacher Teacher `json:"teacher"`
}
