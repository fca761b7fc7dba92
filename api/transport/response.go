package transport

import (
	"time"

	"github.com/fastygo/taskboard/domain"
)

// StatusResponse is the body of acknowledgements and of every error.
type StatusResponse struct {
	Status bool   `json:"status"`
	Msg    string `json:"msg"`
}

func NewSuccess(msg string) StatusResponse {
	return StatusResponse{Status: true, Msg: msg}
}

func NewError(msg string) StatusResponse {
	return StatusResponse{Status: false, Msg: msg}
}

// Account is the outbound view of an account. It has no password field.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewAccount(a *domain.Account) Account {
	return Account{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

type Task struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewTask(t *domain.Task) Task {
	return Task{
		ID:          t.ID,
		Owner:       t.OwnerID,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTasks never returns nil so an empty list encodes as [].
func NewTasks(tasks []domain.Task) []Task {
	out := make([]Task, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTask(&tasks[i]))
	}
	return out
}

type LoginResponse struct {
	Token   string  `json:"token"`
	Account Account `json:"account"`
	Status  bool    `json:"status"`
	Msg     string  `json:"msg"`
}

type ProfileResponse struct {
	Account Account `json:"account"`
	Status  bool    `json:"status"`
	Msg     string  `json:"msg"`
}

type TaskListResponse struct {
	Tasks  []Task `json:"tasks"`
	Status bool   `json:"status"`
	Msg    string `json:"msg"`
}

type TaskResponse struct {
	Task   Task   `json:"task"`
	Status bool   `json:"status"`
	Msg    string `json:"msg"`
}

// HealthResponse reports dependency reachability.
type HealthResponse struct {
	Status    bool            `json:"status"`
	Msg       string          `json:"msg,omitempty"`
	Services  map[string]bool `json:"services"`
	Timestamp time.Time       `json:"timestamp"`
}
