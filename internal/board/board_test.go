package board

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minipm/internal/client"
)

func TestGroup(t *testing.T) {
	tasks := []client.Task{
		{ID: "1", Status: "todo"},
		{ID: "2", Status: "DONE"},
		{ID: "3", Status: "in_progress"},
		{ID: "4", Status: "blocked"},
		{ID: "5", Status: "Todo"},
	}
	cols := Group(tasks)

	ids := func(c Column) []string {
		out := []string{}
		for _, t := range c.Tasks {
			out = append(out, t.ID)
		}
		return out
	}
	got := map[string][]string{}
	for _, c := range cols {
		got[c.Title] = ids(c)
	}
	want := map[string][]string{
		"To Do":       {"1", "5"},
		"In Progress": {"3"},
		"Done":        {"2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Group mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "todo", cols[0].Status)
}

func TestGroup_EmptyColumnsAreNotNil(t *testing.T) {
	for _, c := range Group(nil) {
		assert.NotNil(t, c.Tasks)
		assert.Empty(t, c.Tasks)
	}
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		status, next, prev string
	}{
		{"todo", "in_progress", ""},
		{"in_progress", "done", "todo"},
		{"done", "", "in_progress"},
		{"IN_PROGRESS", "done", "todo"},
		{"weird", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.next, Next(tt.status))
			assert.Equal(t, tt.prev, Prev(tt.status))
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.True(t, IsOverdue(&past, now))
	assert.False(t, IsOverdue(&future, now))
	assert.False(t, IsOverdue(&now, now), "due exactly now is not overdue")
	assert.False(t, IsOverdue(nil, now))
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -1)
	tasks := []client.Task{
		{Status: "todo", DueDate: &past},
		{Status: "in_progress"},
		{Status: "done", DueDate: &past},
		{Status: "archived"},
	}
	assert.Equal(t, Summary{Total: 3, Todo: 1, InProgress: 1, Done: 1, Overdue: 1}, Summarize(tasks, now))
}

func TestParseDue(t *testing.T) {
	got, err := ParseDue(" 2026-07-04 ")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-04T23:59:59Z", got.Format(time.RFC3339))

	got, err = ParseDue("2026-07-04T09:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 7, got.UTC().Hour())

	got, err = ParseDue("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseDue("tomorrow")
	assert.Error(t, err)
}
