// Package parse turns loosely structured catalog and registrar text into course fields.
package parse

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

var (
	ErrMissingUnits   = errors.New("title has no units")
	ErrMalformedTitle = errors.New("malformed course title")
)

var noiseReplacer = strings.NewReplacer(
	"\n", "",
	"\t", "",
	"\r", "",
	"\u00a0", " ",
	"&nbsp;", " ",
)

// Clean drops line breaks and tabs, turns non-breaking spaces (raw or as a literal
// &nbsp;) into spaces, and trims. Other entities are left alone.
func Clean(s string) string {
	return strings.TrimSpace(noiseReplacer.Replace(s))
}

// CleanHTML is Clean for text lifted out of catalog markup, where entities left over
// from double escaping are decoded first.
func CleanHTML(s string) string {
	return Clean(html.UnescapeString(s))
}

type UnitsMode int

const (
	// UnitsRequired rejects titles without a "(N Unit)" suffix.
	UnitsRequired UnitsMode = iota
	UnitsOptional
)

type Title struct {
	Id    string
	Name  string
	Units *string
}

// ParseTitle splits "AB 101 Intro Course (1 Unit)" into id, name and units.
func ParseTitle(s string, mode UnitsMode) (Title, error) {
	namePart, unitsPart, found := strings.Cut(s, " (")
	if !found && mode == UnitsRequired {
		return Title{}, fmt.Errorf("%q: %w", s, ErrMissingUnits)
	}

	tokens := strings.Split(namePart, " ")
	if len(tokens) < 2 || tokens[0] == "" || tokens[1] == "" {
		return Title{}, fmt.Errorf("%q: %w", s, ErrMalformedTitle)
	}

	title := Title{
		Id:   tokens[0] + " " + tokens[1],
		Name: strings.Join(tokens[2:], " "),
	}
	if found {
		units := strings.TrimSuffix(unitsPart, " Unit)")
		title.Units = &units
	}
	return title, nil
}

type Description struct {
	Text    string
	Prereqs *string
}

// Checked in order; the first label present wins.
var prereqLabels = []string{"Prereq: ", "Prerequisite: ", "Prerequisites: "}

func SplitDescription(s string) Description {
	for _, label := range prereqLabels {
		before, after, found := strings.Cut(s, label)
		if !found {
			continue
		}
		prereqs := trimPrereqs(after)
		return Description{Text: strings.TrimSpace(before), Prereqs: &prereqs}
	}
	return Description{Text: s}
}

var extraLabels = []string{"Prerequisites: ", "Prerequisite: "}

// ExtraPrereqs reads a catalog "extra" block such as "Prerequisite: MATH 220-1.".
func ExtraPrereqs(s string) (string, bool) {
	for _, label := range extraLabels {
		if after, found := strings.CutPrefix(s, label); found {
			return trimPrereqs(after), true
		}
	}
	return "", false
}

func trimPrereqs(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), ".")
}
