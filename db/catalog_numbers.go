package db

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var catalogNumberPattern = regexp.MustCompile(`^([[:upper:]]*)([[:digit:]]*)([[:upper:]]*)(.*)$`)

// CatalogRank turns a catalog number into a key that sorts numerically,
// so "95-0" < "110-0" < "110-SA" < "395-0". Numbers without digits rank as 0.
func CatalogRank(catalogNumber string) string {
	submatches := catalogNumberPattern.FindStringSubmatch(strings.TrimSpace(catalogNumber))
	prefix := submatches[1]
	suffix := submatches[3]
	rest := submatches[4]
	number, err := strconv.Atoi(submatches[2])
	if err != nil {
		number = 0
		suffix = prefix
		prefix = ""
	}
	return fmt.Sprintf("%04d%-2s%-2s%s", number, suffix, prefix, rest)
}

// CatalogNumber returns the part of a course id after the department code.
func CatalogNumber(courseId string) string {
	_, number, found := strings.Cut(courseId, " ")
	if !found {
		return courseId
	}
	return number
}
