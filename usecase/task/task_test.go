package task

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository/boltdb"
)

func newTestUseCase(t *testing.T) *UseCase {
	t.Helper()
	db, err := boltdb.Open(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db.Store().Tasks, time.UTC, nil)
}

func validInput() Input {
	return Input{Description: "buy milk", DueDate: "2025-01-01", DueTime: "10:00", Priority: "High"}
}

func TestCreateTask(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()
	owner := domain.NewID()

	task, err := uc.CreateTask(ctx, owner, validInput())
	require.NoError(t, err)
	assert.Equal(t, owner, task.OwnerID)
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.True(t, task.DueDate.Equal(time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)))

	tasks, err := uc.ListTasks(ctx, owner)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)

	others, err := uc.ListTasks(ctx, domain.NewID())
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestCreateTaskValidation(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()
	owner := domain.NewID()

	cases := []struct {
		name   string
		mutate func(*Input)
		want   *domain.Error
	}{
		{"no description", func(in *Input) { in.Description = " " }, ErrMissingDescription},
		{"no date", func(in *Input) { in.DueDate = "" }, ErrMissingSchedule},
		{"no time", func(in *Input) { in.DueTime = "" }, ErrMissingSchedule},
		{"no priority", func(in *Input) { in.Priority = "" }, ErrMissingSchedule},
		{"bad date", func(in *Input) { in.DueDate = "2025-13-45" }, ErrInvalidSchedule},
		{"bad time", func(in *Input) { in.DueTime = "25:99" }, ErrInvalidSchedule},
		{"bad priority", func(in *Input) { in.Priority = "Urgent" }, ErrInvalidPriority},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := uc.CreateTask(ctx, owner, in)
			assert.Equal(t, tc.want, err)
		})
	}
}

func TestCreateTaskUsesLocation(t *testing.T) {
	db, err := boltdb.Open(filepath.Join(t.TempDir(), "tz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	loc := time.FixedZone("UTC+3", 3*60*60)
	uc := New(db.Store().Tasks, loc, nil)

	task, err := uc.CreateTask(context.Background(), domain.NewID(), validInput())
	require.NoError(t, err)
	assert.True(t, task.DueDate.Equal(time.Date(2025, 1, 1, 7, 0, 0, 0, time.UTC)))
}

func TestGetTask(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()
	owner, stranger := domain.NewID(), domain.NewID()

	task, err := uc.CreateTask(ctx, owner, validInput())
	require.NoError(t, err)

	got, err := uc.GetTask(ctx, owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got.Description)

	_, err = uc.GetTask(ctx, owner, "nope")
	assert.Equal(t, ErrInvalidID, err)

	_, err = uc.GetTask(ctx, owner, domain.NewID())
	assert.Equal(t, ErrNoTask, err)

	leaked, err := uc.GetTask(ctx, stranger, task.ID)
	assert.Equal(t, ErrReadForbidden, err)
	assert.Nil(t, leaked)
}

func TestUpdateTask(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()
	owner, stranger := domain.NewID(), domain.NewID()

	task, err := uc.CreateTask(ctx, owner, validInput())
	require.NoError(t, err)

	in := Input{Description: "buy oat milk", DueDate: "2025-01-02", DueTime: "09:30"}
	updated, err := uc.UpdateTask(ctx, owner, task.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", updated.Description)
	assert.Equal(t, domain.PriorityHigh, updated.Priority)
	assert.Equal(t, owner, updated.OwnerID)

	in.Priority = "low"
	updated, err = uc.UpdateTask(ctx, owner, task.ID, in)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, updated.Priority)

	_, err = uc.UpdateTask(ctx, stranger, task.ID, in)
	assert.Equal(t, ErrUpdateForbidden, err)

	_, err = uc.UpdateTask(ctx, owner, domain.NewID(), in)
	assert.Equal(t, ErrTaskMissing, err)

	_, err = uc.UpdateTask(ctx, owner, task.ID, Input{Description: "x"})
	assert.Equal(t, ErrInvalidSchedule, err)

	_, err = uc.UpdateTask(ctx, owner, "bad-id", in)
	assert.Equal(t, ErrInvalidID, err)

	_, err = uc.UpdateTask(ctx, owner, task.ID, Input{DueDate: "2025-01-02", DueTime: "09:30"})
	assert.Equal(t, ErrMissingDescription, err)
}

func TestDeleteTask(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()
	owner, stranger := domain.NewID(), domain.NewID()

	task, err := uc.CreateTask(ctx, owner, validInput())
	require.NoError(t, err)

	assert.Equal(t, ErrDeleteForbidden, uc.DeleteTask(ctx, stranger, task.ID))
	assert.Equal(t, ErrInvalidID, uc.DeleteTask(ctx, owner, "123"))

	require.NoError(t, uc.DeleteTask(ctx, owner, task.ID))

	err = uc.DeleteTask(ctx, owner, task.ID)
	assert.Equal(t, ErrTaskMissing, err)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}
