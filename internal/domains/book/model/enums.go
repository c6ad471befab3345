package model

import "catalog-backend/internal/shared/utils"

// BookStatus is the lending state of a book.
type BookStatus string

const (
	StatusAvailable   BookStatus = "AVAILABLE"
	StatusBorrowed    BookStatus = "BORROWED"
	StatusReserved    BookStatus = "RESERVED"
	StatusUnavailable BookStatus = "UNAVAILABLE"
)

var statusDescriptions = map[BookStatus]string{
	StatusAvailable:   "Available for borrowing",
	StatusBorrowed:    "Currently borrowed",
	StatusReserved:    "Reserved",
	StatusUnavailable: "Not available",
}

// Statuses lists every status in declaration order.
func Statuses() []BookStatus {
	return []BookStatus{StatusAvailable, StatusBorrowed, StatusReserved, StatusUnavailable}
}

func (s BookStatus) IsValid() bool {
	_, ok := statusDescriptions[s]
	return ok
}

func (s BookStatus) String() string {
	return string(s)
}

// StatusDescription returns the human-readable description of s.
func StatusDescription(s BookStatus) string {
	if d, ok := statusDescriptions[s]; ok {
		return d
	}
	return "Unknown status"
}

// ParseStatus accepts any letter case and '-' in place of '_'.
func ParseStatus(s string) (BookStatus, bool) {
	status := BookStatus(utils.NormalizeTag(s))
	return status, status.IsValid()
}

// CanTransition reports whether a book in status from may move to status to.
// Only borrowing is guarded; every other valid target is always reachable.
func CanTransition(from, to BookStatus) bool {
	if !to.IsValid() {
		return false
	}
	if to == StatusBorrowed {
		return from == StatusAvailable
	}
	return true
}

// BookCategory is the genre a book is filed under.
type BookCategory string

const (
	CategoryFiction    BookCategory = "FICTION"
	CategoryNonFiction BookCategory = "NON_FICTION"
	CategoryScience    BookCategory = "SCIENCE"
	CategoryTechnology BookCategory = "TECHNOLOGY"
	CategoryHistory    BookCategory = "HISTORY"
	CategoryBiography  BookCategory = "BIOGRAPHY"
)

var categoryDescriptions = map[BookCategory]string{
	CategoryFiction:    "Fiction",
	CategoryNonFiction: "Non-fiction",
	CategoryScience:    "Science",
	CategoryTechnology: "Technology",
	CategoryHistory:    "History",
	CategoryBiography:  "Biography",
}

func Categories() []BookCategory {
	return []BookCategory{
		CategoryFiction,
		CategoryNonFiction,
		CategoryScience,
		CategoryTechnology,
		CategoryHistory,
		CategoryBiography,
	}
}

func (c BookCategory) IsValid() bool {
	_, ok := categoryDescriptions[c]
	return ok
}

func (c BookCategory) String() string {
	return string(c)
}

func CategoryDescription(c BookCategory) string {
	if d, ok := categoryDescriptions[c]; ok {
		return d
	}
	return "Unknown category"
}

func ParseCategory(s string) (BookCategory, bool) {
	category := BookCategory(utils.NormalizeTag(s))
	return category, category.IsValid()
}
