package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/papernu/paper/scrape/db"
)

var ErrMalformedTime = errors.New("malformed time")

var termKeywords = [...]struct {
	keyword string
	term    db.Term
}{
	{"fall", db.TermFall},
	{"winter", db.TermWinter},
	{"spring", db.TermSpring},
	{"summer", db.TermSummer},
}

// TermsOffered returns the zero set when no season is mentioned.
func TermsOffered(s string) db.Terms {
	s = strings.ToLower(s)
	var terms db.Terms
	for _, k := range termKeywords {
		if strings.Contains(s, k.keyword) {
			terms = terms.With(k.term)
		}
	}
	return terms
}

// In priority order.
var distroKeywords = [...]struct {
	keyword string
	distro  db.Distro
}{
	{"natural", db.DistroNatural},
	{"formal", db.DistroFormal},
	{"social", db.DistroSocial},
	{"historical", db.DistroHistorical},
	{"ethics", db.DistroEthics},
	{"literature", db.DistroLiterature},
	{"interdisciplinary", db.DistroInterdisciplinary},
}

func DistroCategory(s string) (db.Distro, bool) {
	s = strings.ToLower(s)
	for _, k := range distroKeywords {
		if strings.Contains(s, k.keyword) {
			return k.distro, true
		}
	}
	return 0, false
}

// MeetingDays reads concatenated abbreviations like "MoWeFr".
func MeetingDays(s string) db.Days {
	s = strings.ToLower(s)
	var days db.Days
	for d := db.Monday; d <= db.Friday; d++ {
		if strings.Contains(s, strings.ToLower(d.Abbreviation())) {
			days = days.With(d)
		}
	}
	return days
}

// ParseTime reads a 24-hour "H:MM" clock time.
func ParseTime(s string) (db.Time, error) {
	hours, minutes, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return db.Time{}, fmt.Errorf("%q: %w", s, ErrMalformedTime)
	}
	h, err := strconv.Atoi(hours)
	if err != nil || h < 0 || h > 23 {
		return db.Time{}, fmt.Errorf("%q: %w", s, ErrMalformedTime)
	}
	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 || m > 59 {
		return db.Time{}, fmt.Errorf("%q: %w", s, ErrMalformedTime)
	}
	return db.Time{H: h, M: m}, nil
}

// Repeatable reads the registrar's "Repeatable for Credit" column, which holds Y/N style values.
func Repeatable(s string) bool {
	return strings.Contains(strings.ToLower(s), "y")
}
