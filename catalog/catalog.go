// Package catalog scrapes the undergraduate course catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/papernu/paper/scrape/parse"
)

const DefaultBaseUrl = "https://catalogs.northwestern.edu"

const sitemapPath = "/undergraduate/courses-az/"
const departmentPathPrefix = "/undergraduate/courses-az"

var ErrMissingElement = errors.New("missing element")

type Department struct {
	Code    string
	Display string
	Path    string
}

// Block is one div.courseblock. Description is nil when the block has none.
type Block struct {
	Title       string
	Description *string
	Extras      []string
}

type Page struct {
	Department Department
	Blocks     []Block
}

type Scraper struct {
	BaseUrl     string
	Client      *http.Client
	Concurrency int
	Logger      *zap.Logger
}

func NewScraper(baseUrl string, timeout time.Duration, concurrency int, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{
		BaseUrl:     strings.TrimSuffix(baseUrl, "/"),
		Client:      &http.Client{Timeout: timeout},
		Concurrency: concurrency,
		Logger:      logger,
	}
}

func (s *Scraper) get(ctx context.Context, path string) (io.ReadCloser, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseUrl+path, nil)
	if err != nil {
		return nil, err
	}

	response, err := s.Client.Do(request)
	if err != nil {
		return nil, err
	}
	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", path, response.Status)
	}
	return response.Body, nil
}

func (s *Scraper) Departments(ctx context.Context) ([]Department, error) {
	body, err := s.get(ctx, sitemapPath)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return ParseSitemap(body)
}

func (s *Scraper) Page(ctx context.Context, department Department) (Page, error) {
	body, err := s.get(ctx, department.Path)
	if err != nil {
		return Page{}, err
	}
	defer body.Close()

	blocks, err := ParseBlocks(body)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", department.Code, err)
	}
	return Page{Department: department, Blocks: blocks}, nil
}

// ScrapeAll fetches every department page, at most Concurrency at a time, and returns
// them in sitemap order. The first failure cancels the rest.
func (s *Scraper) ScrapeAll(ctx context.Context) ([]Page, error) {
	departments, err := s.Departments(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap: %w", err)
	}

	pages := make([]Page, len(departments))
	g, ctx := errgroup.WithContext(ctx)
	if s.Concurrency > 0 {
		g.SetLimit(s.Concurrency)
	}
	for i, department := range departments {
		g.Go(func() error {
			page, err := s.Page(ctx, department)
			if err != nil {
				return err
			}
			pages[i] = page
			s.Logger.Info("Scraped department", zap.String("major", department.Code), zap.Int("courses", len(page.Blocks)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return pages, nil
}

// ParseSitemap reads the A-Z index, whose entries look like "Computer Science (COMP_SCI)".
func ParseSitemap(r io.Reader) ([]Department, error) {
	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	sitemap := document.Find("div.az_sitemap").First()
	if sitemap.Length() == 0 {
		return nil, fmt.Errorf("div.az_sitemap: %w", ErrMissingElement)
	}

	var departments []Department
	var parseErr error
	sitemap.Find("li").EachWithBreak(func(i int, item *goquery.Selection) bool {
		href, exists := item.Find("a").First().Attr("href")
		if !exists || !strings.HasPrefix(href, departmentPathPrefix) {
			return true
		}

		text := parse.CleanHTML(item.Text())
		display, rest, found := strings.Cut(text, "(")
		code, _, _ := strings.Cut(rest, ")")
		if !found || strings.TrimSpace(code) == "" {
			parseErr = fmt.Errorf("sitemap entry %q has no code: %w", text, ErrMissingElement)
			return false
		}

		departments = append(departments, Department{
			Code:    strings.TrimSpace(code),
			Display: strings.TrimSpace(display),
			Path:    href,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return departments, nil
}

func ParseBlocks(r io.Reader) ([]Block, error) {
	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var blocks []Block
	var parseErr error
	document.Find("div.courseblock").EachWithBreak(func(i int, courseBlock *goquery.Selection) bool {
		title := courseBlock.Find(".courseblocktitle").First()
		if title.Length() == 0 {
			// Misspelled on some pages
			title = courseBlock.Find(".couresblocktitle").First()
		}
		if title.Length() == 0 {
			parseErr = fmt.Errorf("course block %d title: %w", i, ErrMissingElement)
			return false
		}

		block := Block{Title: parse.CleanHTML(title.Text())}
		if description := courseBlock.Find(".courseblockdesc").First(); description.Length() > 0 {
			text := parse.CleanHTML(description.Text())
			block.Description = &text
		}
		courseBlock.Find(".courseblockextra").Each(func(_ int, extra *goquery.Selection) {
			block.Extras = append(block.Extras, parse.CleanHTML(extra.Text()))
		})

		blocks = append(blocks, block)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return blocks, nil
}
