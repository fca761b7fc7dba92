package domain

import (
	"fmt"
	"strings"
	"time"
)

// Priority ranks a task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority accepts the three priorities case-insensitively.
func ParsePriority(value string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return PriorityHigh, true
	case "medium":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	default:
		return "", false
	}
}

// Task represents an account-owned to-do item.
type Task struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t *Task) Touch() {
	if t == nil {
		return
	}
	t.UpdatedAt = time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = t.UpdatedAt
	}
}

// OwnedBy reports whether accountID owns the task.
func (t *Task) OwnedBy(accountID string) bool {
	return t != nil && accountID != "" && t.OwnerID == accountID
}

var (
	dateLayouts = []string{"2006-01-02"}
	timeLayouts = []string{"15:04", "15:04:05", "15:04:05.000"}
)

// CombineDue joins a date and a time of day into a single instant in loc.
// A full RFC3339 timestamp in date is accepted as is.
func CombineDue(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	if ts, err := time.Parse(time.RFC3339, date); err == nil {
		return ts, nil
	}

	for _, dl := range dateLayouts {
		for _, tl := range timeLayouts {
			if ts, err := time.ParseInLocation(dl+"T"+tl, date+"T"+clock, loc); err == nil {
				return ts, nil
			}
		}
	}
	return time.Time{}, fmt.Errorf("cannot combine date %q and time %q", date, clock)
}
