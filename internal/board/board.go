// Package board arranges tasks into the three kanban columns and computes
// the moves between them.
package board

import (
	"strings"
	"time"

	"minipm/internal/client"
	"minipm/internal/types"
)

// Column is one kanban column.
type Column struct {
	Status string
	Title  string
	Tasks  []client.Task
}

// Columns lists the board's statuses and titles in display order.
var Columns = []struct {
	Status string
	Title  string
}{
	{"todo", "To Do"},
	{"in_progress", "In Progress"},
	{"done", "Done"},
}

// Normalize lowercases a status so "TODO" and "todo" land in one column.
func Normalize(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// Group splits tasks into the board columns, keeping their order. Tasks
// whose status matches no column are left off the board.
func Group(tasks []client.Task) []Column {
	cols := make([]Column, len(Columns))
	index := make(map[string]int, len(Columns))
	for i, c := range Columns {
		cols[i] = Column{Status: c.Status, Title: c.Title, Tasks: []client.Task{}}
		index[c.Status] = i
	}
	for _, t := range tasks {
		if i, ok := index[Normalize(t.Status)]; ok {
			cols[i].Tasks = append(cols[i].Tasks, t)
		}
	}
	return cols
}

// Next returns the status after status, or "" from the last column or an
// unknown status.
func Next(status string) string {
	s := Normalize(status)
	for i, c := range Columns {
		if c.Status == s && i+1 < len(Columns) {
			return Columns[i+1].Status
		}
	}
	return ""
}

// Prev returns the status before status, or "" from the first column.
func Prev(status string) string {
	s := Normalize(status)
	for i, c := range Columns {
		if c.Status == s && i > 0 {
			return Columns[i-1].Status
		}
	}
	return ""
}

// IsOverdue reports whether due is set and strictly before now.
func IsOverdue(due *time.Time, now time.Time) bool {
	return due != nil && due.Before(now)
}

// Summary counts the tasks on a board.
type Summary struct {
	Total      int
	Todo       int
	InProgress int
	Done       int
	Overdue    int
}

// Summarize counts tasks per column and overdue tasks that are not done.
func Summarize(tasks []client.Task, now time.Time) Summary {
	var s Summary
	for _, t := range tasks {
		switch Normalize(t.Status) {
		case "todo":
			s.Todo++
		case "in_progress":
			s.InProgress++
		case "done":
			s.Done++
		default:
			continue
		}
		s.Total++
		if Normalize(t.Status) != "done" && IsOverdue(t.DueDate, now) {
			s.Overdue++
		}
	}
	return s
}

// ParseDue reads a due date typed by a user. A bare date (YYYY-MM-DD) means
// the end of that day in UTC; full RFC 3339 timestamps are kept. An empty
// string yields nil.
func ParseDue(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if d, err := time.Parse("2006-01-02", s); err == nil {
		t := types.EndOfDay(d)
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
