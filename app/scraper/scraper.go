package scraper

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Scraper contains the pure parse functions for catalog markup. Output depends
// only on the input document; fetching is the Fetcher's job.
type Scraper struct {
	titleCaser cases.Caser
}

func NewScraper() *Scraper {
	return &Scraper{
		// NoLower keeps all-caps brand names (BLU, HTC) intact
		titleCaser: cases.Title(language.English, cases.NoLower),
	}
}

// ParseManufacturers extracts manufacturer entries from a manufacturers
// listing page.
func (s *Scraper) ParseManufacturers(data []byte) ([]ScrapedManufacturer, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var manufacturers []ScrapedManufacturer
	doc.Find("div.manufacturer-item").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find("span").First().Text())
		if name == "" {
			return
		}

		manufacturers = append(manufacturers, ScrapedManufacturer{
			Name:     s.titleCaser.String(name),
			URL:      sel.Find("a").First().AttrOr("href", ""),
			ImageURL: sel.Find("img").First().AttrOr("src", ""),
		})
	})

	return manufacturers, nil
}

// ParseDevices extracts device entries from a manufacturer's finder-results
// listing.
func (s *Scraper) ParseDevices(data []byte) ([]ScrapedDevice, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var devices []ScrapedDevice
	doc.Find("#finder-results div.stream-item").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Find("p.title").First().Text())
		if name == "" {
			return
		}

		devices = append(devices, ScrapedDevice{
			Name:       name,
			URL:        sel.Find("a").First().AttrOr("href", ""),
			ImageURL:   sel.Find("img").First().AttrOr("src", ""),
			RatingText: strings.TrimSpace(sel.Find("div.score").First().Text()),
		})
	})

	return devices, nil
}

// ParseSpecs extracts the spec table rows from a device page, grouped under
// their section headings.
func (s *Scraper) ParseSpecs(data []byte) ([]ScrapedSpec, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var specs []ScrapedSpec
	doc.Find("div.widgetSpecs section").Each(func(_ int, section *goquery.Selection) {
		category := strings.TrimSpace(section.Find("h3").First().Text())
		if category == "" {
			return
		}

		section.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			name := strings.TrimSpace(row.Find("th").First().Text())
			description := strings.TrimSpace(row.Find("td").First().Text())
			if name == "" {
				return
			}

			specs = append(specs, ScrapedSpec{
				Category:    category,
				Name:        name,
				Description: description,
			})
		})
	})

	return specs, nil
}

// ParseRating converts a scraped rating label to a numeric rating. Unparsable
// or absent text means no rating, not an error.
func (s *Scraper) ParseRating(text string) *float64 {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return nil
	}

	rating, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}

	return &rating
}

// FindReleaseText locates the availability label in a parsed spec table. The
// catalog publishes the raw release text as a spec row, so the canonical date
// is derived from the same scrape that fills the spec table.
func (s *Scraper) FindReleaseText(specs []ScrapedSpec) string {
	for _, spec := range specs {
		if strings.EqualFold(spec.Name, "Release date") {
			return spec.Description
		}
	}
	return ""
}
