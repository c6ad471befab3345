package utils

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE wildcards so s matches literally.
// Postgres uses backslash as the default escape character.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern builds a %s% pattern matching s anywhere in a column.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
