// Package registry hands out stable short ids to departments.
package registry

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/papernu/paper/scrape/db"
)

var ErrShortIdTaken = errors.New("short id already assigned")

// DefaultPalette is cycled through by Colorize.
var DefaultPalette = []string{
	"red", "orange", "amber", "yellow", "lime", "green", "emerald",
	"teal", "cyan", "sky", "blue", "indigo", "violet", "purple",
	"fuchsia", "pink", "rose",
}

type Registry struct {
	start     int
	next      int
	order     []string
	byCode    map[string]*db.Department
	byShortId map[string]string
	// named holds codes whose display came from Register rather than a seed.
	named map[string]bool
}

// New returns an empty registry whose first assigned id is start.
func New(start int) *Registry {
	return &Registry{
		start:     start,
		next:      start,
		byCode:    make(map[string]*db.Department),
		byShortId: make(map[string]string),
		named:     make(map[string]bool),
	}
}

func formatShortId(n int) string {
	return fmt.Sprintf("%03d", n)
}

// Seed adds a department from a previous run, keeping its id. The seeded display and color
// stand until the department is registered. A department without an id is registered as new.
// Seeding the same department twice is a no-op.
func (r *Registry) Seed(department db.Department) error {
	if department.Code == "" {
		return errors.New("seed department has no code")
	}
	if department.Id == "" {
		r.Register(department.Code, department.Display)
		return nil
	}

	if existing, ok := r.byCode[department.Code]; ok {
		if existing.Id != department.Id {
			return fmt.Errorf("seed %s as %s: already registered as %s: %w", department.Code, department.Id, existing.Id, ErrShortIdTaken)
		}
		return nil
	}
	if owner, taken := r.byShortId[department.Id]; taken {
		return fmt.Errorf("seed %s as %s: held by %s: %w", department.Code, department.Id, owner, ErrShortIdTaken)
	}

	r.add(department)
	if n, err := strconv.Atoi(department.Id); err == nil && n >= r.next {
		r.next = n + 1
	}
	return nil
}

// Register returns the department for code, creating it with the next id when unseen.
// The display passed on the first call wins, replacing a seeded one.
func (r *Registry) Register(code, display string) db.Department {
	if existing, ok := r.byCode[code]; ok {
		if !r.named[code] {
			existing.Display = display
			r.named[code] = true
		}
		return *existing
	}

	id := formatShortId(r.next)
	for r.byShortId[id] != "" {
		r.next++
		id = formatShortId(r.next)
	}
	r.next++

	department := db.Department{Code: code, Display: display, Id: id}
	r.add(department)
	r.named[code] = true
	return department
}

func (r *Registry) add(department db.Department) {
	r.order = append(r.order, department.Code)
	r.byCode[department.Code] = &department
	r.byShortId[department.Id] = department.Code
}

func (r *Registry) Lookup(code string) (db.Department, bool) {
	department, ok := r.byCode[code]
	if !ok {
		return db.Department{}, false
	}
	return *department, true
}

func (r *Registry) LookupByShortId(id string) (string, bool) {
	code, ok := r.byShortId[id]
	return code, ok
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Departments returns every department in first-seen order.
func (r *Registry) Departments() []db.Department {
	departments := make([]db.Department, 0, len(r.order))
	for _, code := range r.order {
		departments = append(departments, *r.byCode[code])
	}
	return departments
}

// MajorIds maps short id to department code.
func (r *Registry) MajorIds() map[string]string {
	majorIds := make(map[string]string, len(r.byShortId))
	for id, code := range r.byShortId {
		majorIds[id] = code
	}
	return majorIds
}

// Renumber reassigns ids from zero in first-seen order. Later registrations continue
// after the last renumbered id, or at the start counter if that is higher.
func (r *Registry) Renumber() {
	r.byShortId = make(map[string]string, len(r.order))
	for i, code := range r.order {
		department := r.byCode[code]
		department.Id = formatShortId(i)
		r.byShortId[department.Id] = code
	}
	r.next = max(r.start, len(r.order))
}

// Colorize assigns palette colors in first-seen order, wrapping around.
func (r *Registry) Colorize(palette []string) {
	if len(palette) == 0 {
		return
	}
	for i, code := range r.order {
		r.byCode[code].Color = palette[i%len(palette)]
	}
}
