package review

import "regexp"

var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// IsValidIdentifier reports whether the name conforms to lower_snake_case:
// non-empty, starting with a lowercase letter or underscore, with only
// lowercase letters, digits and underscores after that. Function and
// variable names are held to the same predicate.
func IsValidIdentifier(name string) bool {
	return identPattern.MatchString(name)
}
