package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	DueDate     string `json:"dueDate" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00,futuredate"`
}

func TestCheck_Valid(t *testing.T) {
	req := sampleRequest{
		Title:   "write report",
		Status:  "in-progress",
		DueDate: time.Now().Add(time.Hour).Format(time.RFC3339),
	}
	require.Nil(t, Check(req))
}

func TestCheck_CollectsEveryViolation(t *testing.T) {
	req := sampleRequest{
		Status:  "archived",
		DueDate: "tomorrow",
	}

	violations := Check(req)
	require.Len(t, violations, 3)

	byField := map[string]string{}
	for _, v := range violations {
		byField[v.Field] = v.Message
	}
	require.Equal(t, "Title is required", byField["title"])
	require.Equal(t, "Invalid status value", byField["status"])
	require.Equal(t, "Invalid date format", byField["dueDate"])
}

func TestCheck_FieldNamesComeFromJSONTags(t *testing.T) {
	violations := Check(sampleRequest{Title: "x", DueDate: "nonsense"})
	require.Len(t, violations, 1)
	require.Equal(t, "dueDate", violations[0].Field)
}

func TestCheck_FutureDate(t *testing.T) {
	past := sampleRequest{
		Title:   "x",
		DueDate: time.Now().Add(-time.Second).Format(time.RFC3339),
	}
	violations := Check(past)
	require.Len(t, violations, 1)
	require.Equal(t, "Due date must be in the future", violations[0].Message)

	// Strictly after now: even a near boundary passes when in the future.
	future := sampleRequest{
		Title:   "x",
		DueDate: time.Now().Add(2 * time.Second).Format(time.RFC3339),
	}
	require.Nil(t, Check(future))
}

func TestCheck_MaxLength(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 't'
	}

	violations := Check(sampleRequest{Title: string(long)})
	require.Len(t, violations, 1)
	require.Equal(t, "Title cannot exceed 100 characters", violations[0].Message)
}
