package transport

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaskRequest carries the due date and time separately, as entered by the user.
type TaskRequest struct {
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	DueTime     string `json:"dueTime"`
	Priority    string `json:"priority"`
}
