package todo

import (
	"strings"

	"github.com/paul-mannino/go-fuzzywuzzy"
)

// matchThreshold is the minimum fuzzy ratio for a search hit.
const matchThreshold = 70

// Search returns the todos whose text fuzzy-matches query.
func Search(todos []Todo, query string) []Todo {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	matches := []Todo{}
	for _, t := range todos {
		if fuzzy.Ratio(strings.ToLower(t.Text), query) >= matchThreshold {
			matches = append(matches, t)
		}
	}
	return matches
}
