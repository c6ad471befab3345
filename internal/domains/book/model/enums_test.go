package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want BookStatus
		ok   bool
	}{
		{"AVAILABLE", StatusAvailable, true},
		{"borrowed", StatusBorrowed, true},
		{" Reserved ", StatusReserved, true},
		{"unavailable", StatusUnavailable, true},
		{"lost", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStatus(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseCategory_AcceptsDash(t *testing.T) {
	got, ok := ParseCategory("non-fiction")
	assert.True(t, ok)
	assert.Equal(t, CategoryNonFiction, got)

	_, ok = ParseCategory("poetry")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusAvailable, StatusBorrowed))
	assert.False(t, CanTransition(StatusBorrowed, StatusBorrowed))
	assert.False(t, CanTransition(StatusReserved, StatusBorrowed))

	for _, from := range Statuses() {
		assert.True(t, CanTransition(from, StatusAvailable), from)
		assert.True(t, CanTransition(from, StatusUnavailable), from)
	}

	assert.False(t, CanTransition(StatusAvailable, BookStatus("LOST")))
}

func TestDescriptions(t *testing.T) {
	assert.Equal(t, "Available for borrowing", StatusDescription(StatusAvailable))
	assert.Equal(t, "Currently borrowed", StatusDescription(StatusBorrowed))
	assert.Equal(t, "Unknown status", StatusDescription("LOST"))

	assert.Equal(t, "Non-fiction", CategoryDescription(CategoryNonFiction))
	assert.Equal(t, "Unknown category", CategoryDescription("POETRY"))

	assert.Len(t, Categories(), 6)
	assert.Len(t, Statuses(), 4)
}
