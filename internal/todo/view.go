package todo

// Filter selects a subset of the todo list.
type Filter string

const (
	FilterToday     Filter = "today"
	FilterUpcoming  Filter = "upcoming"
	FilterCompleted Filter = "completed"
	FilterAll       Filter = "all"
)

// ParseFilter returns the filter named by s, or FilterAll for anything else.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterToday, FilterUpcoming, FilterCompleted:
		return Filter(s)
	default:
		return FilterAll
	}
}

// Filtered returns the todos matching f relative to today.
func Filtered(todos []Todo, f Filter, today string) []Todo {
	out := []Todo{}
	for _, t := range todos {
		switch f {
		case FilterToday:
			if !t.Done && t.DueDate == today {
				out = append(out, t)
			}
		case FilterUpcoming:
			if !t.Done && t.DueDate > today {
				out = append(out, t)
			}
		case FilterCompleted:
			if t.Done {
				out = append(out, t)
			}
		default:
			out = append(out, t)
		}
	}
	return out
}

// Stats are the summary counts shown above the list.
type Stats struct {
	TodayTasks   int `json:"todayTasks"`
	Completed    int `json:"completed"`
	HighPriority int `json:"highPriority"`
}

// Summarize recomputes the counts from the full list.
func Summarize(todos []Todo, today string) Stats {
	var s Stats
	for _, t := range todos {
		if t.DueDate == today && !t.Done {
			s.TodayTasks++
		}
		if t.Done {
			s.Completed++
		}
		if !t.Done && t.Priority == PriorityHigh {
			s.HighPriority++
		}
	}
	return s
}

// IsToday reports whether t is due today.
func IsToday(t Todo, today string) bool {
	return t.DueDate == today
}

// IsOverdue reports whether t is open and past due.
func IsOverdue(t Todo, today string) bool {
	return !t.Done && t.DueDate < today
}
