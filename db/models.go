package db

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Department struct {
	Code    string `json:"-"`
	Display string `json:"display,omitempty"`
	Id      string `json:"id"`
	Color   string `json:"color,omitempty"`
}

type Course struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Units       string    `json:"units,omitempty"`
	Repeatable  bool      `json:"repeatable"`
	Description string    `json:"description"`
	Prereqs     *string   `json:"prereqs,omitempty"`
	Offered     Terms     `json:"offered,omitempty"`
	Distros     Distros   `json:"distros,omitempty"`
	Career      string    `json:"career,omitempty"`
	SourceRef   string    `json:"nu_id,omitempty"`
	Sections    []Section `json:"sections,omitempty"`
}

func (c *Course) ScheduleId() string {
	return c.Id
}

func (c *Course) SetSections(sections []Section) {
	c.Sections = sections
}

type Time struct {
	H int `json:"h"`
	M int `json:"m"`
}

// Term is one academic quarter. Its value is the digit used on the wire.
type Term uint8

const (
	TermFall Term = iota
	TermWinter
	TermSpring
	TermSummer
)

var termNames = [...]string{"fall", "winter", "spring", "summer"}

func (t Term) String() string {
	if int(t) < len(termNames) {
		return termNames[t]
	}
	return "term(" + strconv.Itoa(int(t)) + ")"
}

// Terms is a set of quarters. The zero value means "not offered / unknown"
// and is omitted from JSON.
type Terms uint8

func (s Terms) Has(t Term) bool {
	return s&(1<<t) != 0
}

func (s Terms) With(t Term) Terms {
	return s | 1<<t
}

func (s Terms) String() string {
	var b strings.Builder
	for t := TermFall; t <= TermSummer; t++ {
		if s.Has(t) {
			b.WriteByte('0' + byte(t))
		}
	}
	return b.String()
}

func (s Terms) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Terms) UnmarshalJSON(data []byte) error {
	var digits string
	if err := json.Unmarshal(data, &digits); err != nil {
		return err
	}
	terms, err := TermsFromDigits(digits)
	if err != nil {
		return err
	}
	*s = terms
	return nil
}

func TermsFromDigits(digits string) (Terms, error) {
	var terms Terms
	for _, r := range digits {
		if r < '0' || r > '0'+rune(TermSummer) {
			return 0, fmt.Errorf("invalid term digit %q in %q", r, digits)
		}
		terms = terms.With(Term(r - '0'))
	}
	return terms, nil
}

// Weekday follows the registrar's Mo..Fr abbreviations; its value is the wire digit.
type Weekday uint8

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

var weekdayAbbreviations = [...]string{"Mo", "Tu", "We", "Th", "Fr"}

func (d Weekday) Abbreviation() string {
	return weekdayAbbreviations[d]
}

type Days uint8

func (s Days) Has(d Weekday) bool {
	return s&(1<<d) != 0
}

func (s Days) With(d Weekday) Days {
	return s | 1<<d
}

func (s Days) String() string {
	var b strings.Builder
	for d := Monday; d <= Friday; d++ {
		if s.Has(d) {
			b.WriteByte('0' + byte(d))
		}
	}
	return b.String()
}

func (s Days) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Days) UnmarshalJSON(data []byte) error {
	var digits string
	if err := json.Unmarshal(data, &digits); err != nil {
		return err
	}
	days, err := DaysFromDigits(digits)
	if err != nil {
		return err
	}
	*s = days
	return nil
}

func DaysFromDigits(digits string) (Days, error) {
	var days Days
	for _, r := range digits {
		if r < '0' || r > '0'+rune(Friday) {
			return 0, fmt.Errorf("invalid weekday digit %q in %q", r, digits)
		}
		days = days.With(Weekday(r - '0'))
	}
	return days, nil
}

// Distro is a distribution requirement area, numbered 1 through 7.
type Distro uint8

const (
	DistroNatural Distro = iota + 1
	DistroFormal
	DistroSocial
	DistroHistorical
	DistroEthics
	DistroLiterature
	DistroInterdisciplinary
)

func (d Distro) Valid() bool {
	return d >= DistroNatural && d <= DistroInterdisciplinary
}

// Distros keeps every tag in the order it was seen, repeats included.
type Distros []Distro

func (s Distros) Contains(d Distro) bool {
	for _, x := range s {
		if x == d {
			return true
		}
	}
	return false
}

func (s Distros) String() string {
	b := make([]byte, len(s))
	for i, d := range s {
		b[i] = '0' + byte(d)
	}
	return string(b)
}

func (s Distros) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Distros) UnmarshalJSON(data []byte) error {
	var digits string
	if err := json.Unmarshal(data, &digits); err != nil {
		return err
	}
	distros, err := DistrosFromDigits(digits)
	if err != nil {
		return err
	}
	*s = distros
	return nil
}

// DistrosFromDigits returns nil for an empty string.
func DistrosFromDigits(digits string) (Distros, error) {
	if digits == "" {
		return nil, nil
	}
	distros := make(Distros, 0, len(digits))
	for _, r := range digits {
		if r < '0' || r > '9' || !Distro(r-'0').Valid() {
			return nil, fmt.Errorf("invalid distro digit %q in %q", r, digits)
		}
		distros = append(distros, Distro(r-'0'))
	}
	return distros, nil
}
