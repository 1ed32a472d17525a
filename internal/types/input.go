package types

import "time"

// Apply copies every provided field of in onto p and validates the result.
// Fields left nil keep their current value.
func (in ProjectInput) Apply(p *Project) error {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		st, err := ParseProjectStatus(*in.Status)
		if err != nil {
			return err
		}
		p.Status = st
	}
	if in.DueDate != nil {
		d := DateOnly(*in.DueDate)
		p.DueDate = &d
	}
	return p.Validate()
}

// Apply copies every provided field of in onto t and validates the result.
func (in TaskInput) Apply(t *Task) error {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		st, err := ParseTaskStatus(*in.Status)
		if err != nil {
			return err
		}
		t.Status = st
	}
	if in.Priority != nil {
		p, err := ParsePriority(*in.Priority)
		if err != nil {
			return err
		}
		t.Priority = p
	}
	if in.Assignee != nil {
		t.Assignee = *in.Assignee
	}
	if in.DueDate != nil {
		d := in.DueDate.UTC()
		t.DueDate = &d
	}
	return t.Validate()
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndOfDay turns a calendar date into the last second of that day in UTC,
// the instant a date-only task due date stands for.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}
