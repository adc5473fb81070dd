package scraper

// ScrapedManufacturer holds unprocessed fields from a manufacturer listing block.
type ScrapedManufacturer struct {
	Name     string
	URL      string
	ImageURL string
}

// ScrapedDevice holds unprocessed fields from a catalog finder-results block.
type ScrapedDevice struct {
	Name       string
	URL        string
	ImageURL   string
	RatingText string
}

// ScrapedSpec holds one row of a device spec table.
type ScrapedSpec struct {
	Category    string
	Name        string
	Description string
}
