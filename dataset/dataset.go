// Package dataset reads and writes the JSON files passed between pipeline stages.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/papernu/paper/scrape/db"
	"github.com/papernu/paper/scrape/reconcile"
	"github.com/papernu/paper/scrape/registry"
)

type Dataset struct {
	Courses  []db.Course       `json:"courses"`
	Majors   Majors            `json:"majors,omitempty"`
	MajorIds map[string]string `json:"major_ids,omitempty"`
}

func FromResult(result reconcile.Result) *Dataset {
	return &Dataset{
		Courses:  result.Courses,
		Majors:   Majors(result.Departments),
		MajorIds: result.MajorIds,
	}
}

// SeedRegistry feeds every major, in file order, into reg.
func (d *Dataset) SeedRegistry(reg *registry.Registry) error {
	for _, major := range d.Majors {
		if err := reg.Seed(major); err != nil {
			return err
		}
	}
	return nil
}

// SetMajors replaces majors and major_ids with the registry's current view.
func (d *Dataset) SetMajors(reg *registry.Registry) {
	d.Majors = Majors(reg.Departments())
	d.MajorIds = reg.MajorIds()
}

// CourseIndex maps course id to its position in Courses. The first occurrence wins.
func (d *Dataset) CourseIndex() map[string]int {
	index := make(map[string]int, len(d.Courses))
	for i, course := range d.Courses {
		if _, ok := index[course.Id]; !ok {
			index[course.Id] = i
		}
	}
	return index
}

func Read(path string) (*Dataset, error) {
	var d Dataset
	if err := ReadJSON(path, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func ReadJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Write encodes v with four-space indentation and replaces path in one rename.
func Write(path string, v any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
