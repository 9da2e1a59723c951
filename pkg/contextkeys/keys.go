package contextkeys

type contextKey string

const (
	UserIDKey         contextKey = "UserID"
	UserRoleKey       contextKey = "UserRole"
	UserDepartmentKey contextKey = "UserDepartment"
)
