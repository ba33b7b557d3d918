package todo

import (
	"testing"

	"github.com/matryer/is"
)

func TestSearch(t *testing.T) {
	is := is.New(t)

	todos := []Todo{
		{Text: "Drink water"},
		{Text: "Write the quarterly report"},
		{Text: "Call the dentist"},
	}

	hits := Search(todos, "drink water")
	is.Equal(len(hits), 1)
	is.Equal(hits[0].Text, "Drink water")

	hits = Search(todos, "Drink watr") // close enough to clear the threshold
	is.Equal(len(hits), 1)

	is.Equal(len(Search(todos, "zzzzzz")), 0)
	is.Equal(Search(todos, "   "), nil) // blank queries match nothing
}
