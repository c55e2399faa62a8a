package catalog

import (
	"fmt"

	"github.com/papernu/paper/scrape/db"
	"github.com/papernu/paper/scrape/parse"
	"github.com/papernu/paper/scrape/reconcile"
)

// Rows maps scraped pages into engine rows. Every block needs a "(N Unit)" title and a
// description. The course id comes from the title, as in PrereqUpdates; the sitemap
// display is only used for blocks whose subject matches the page.
func Rows(pages []Page) ([]reconcile.Row, error) {
	var rows []reconcile.Row
	for _, page := range pages {
		for _, block := range page.Blocks {
			title, err := parse.ParseTitle(block.Title, parse.UnitsRequired)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", page.Department.Code, err)
			}
			if block.Description == nil {
				return nil, fmt.Errorf("%s: %s description: %w", page.Department.Code, title.Id, ErrMissingElement)
			}

			code := db.DepartmentCode(title.Id)
			display := ""
			if code == page.Department.Code {
				display = page.Department.Display
			}

			rows = append(rows, reconcile.Row{
				DepartmentCode:    code,
				DepartmentDisplay: display,
				CatalogNumber:     db.CatalogNumber(title.Id),
				Name:              title.Name,
				Units:             *title.Units,
				Description:       *block.Description,
			})
		}
	}
	return rows, nil
}

type PrereqUpdate struct {
	CourseId string
	Prereqs  string
}

// PrereqUpdates collects "Prerequisite(s): ..." extras. When a block has several, the
// last one wins.
func PrereqUpdates(pages []Page) ([]PrereqUpdate, error) {
	var updates []PrereqUpdate
	for _, page := range pages {
		for _, block := range page.Blocks {
			title, err := parse.ParseTitle(block.Title, parse.UnitsOptional)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", page.Department.Code, err)
			}

			for _, extra := range block.Extras {
				if prereqs, ok := parse.ExtraPrereqs(extra); ok {
					updates = append(updates, PrereqUpdate{CourseId: title.Id, Prereqs: prereqs})
				}
			}
		}
	}
	return updates, nil
}
