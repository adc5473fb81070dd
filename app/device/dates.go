package device

import (
	"fmt"
	"strings"
	"time"
)

// UnknownSentinel stands in for "no usable release information". It sorts
// behind every real date so unknown devices land at the end of recency order.
var UnknownSentinel = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// NoInformationMarker is the catalog's label for "manufacturer has not
// disclosed release information". Callers substitute UnreleasedPlaceholder()
// for it before normalization, so the future sentinel is produced by the same
// parser as every real date.
const NoInformationMarker = "No information"

// CleanupRule rewrites one irregular vocabulary token before parsing. When
// Entire is set a match replaces the whole string, not just the token.
type CleanupRule struct {
	Match       string
	Replacement string
	Entire      bool
}

// NormalizerOptions carries the normalization tables as data: the ordered
// parse layouts, the ordered cleanup rules, and the sentinel horizon.
type NormalizerOptions struct {
	Formats      []string
	CleanupRules []CleanupRule
	HorizonYears int
	Now          func() time.Time
}

// DefaultFormats are tried in order, most to least specific. The ordering is
// load-bearing: year-only would match a prefix of the fuller forms.
func DefaultFormats() []string {
	return []string{
		"Jan 2, 2006",
		"January 2, 2006",
		"January, 2006",
		"January 2006",
		"2006",
	}
}

// DefaultCleanupRules handle the irregular vocabulary observed in catalog
// availability labels.
func DefaultCleanupRules() []CleanupRule {
	return []CleanupRule{
		{Match: "(Official)", Replacement: ""},
		{Match: "Q1", Replacement: "January"},
		{Match: "Q2", Replacement: "April"},
		{Match: "Q3", Replacement: "July"},
		{Match: "Q4", Replacement: "October"},
		// "Yes": confirmed to exist, no date published
		{Match: "Yes", Replacement: "January 1900", Entire: true},
	}
}

const DefaultHorizonYears = 5

// Normalizer turns free-text availability labels into one canonical calendar
// date. It is total: every input maps to a valid date, with UnknownSentinel
// as the fallback.
type Normalizer struct {
	opts NormalizerOptions
}

func NewNormalizer(opts NormalizerOptions) *Normalizer {
	if opts.Formats == nil {
		opts.Formats = DefaultFormats()
	}
	if opts.CleanupRules == nil {
		opts.CleanupRules = DefaultCleanupRules()
	}
	if opts.HorizonYears == 0 {
		opts.HorizonYears = DefaultHorizonYears
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Normalizer{opts: opts}
}

// Run normalizes raw into a canonical date. The first layout that parses the
// cleaned string wins; nothing parsing means UnknownSentinel.
func (n *Normalizer) Run(raw string) time.Time {
	cleaned := n.cleanup(raw)
	if cleaned == "" {
		return UnknownSentinel
	}

	for _, layout := range n.opts.Formats {
		if parsed, err := time.Parse(layout, cleaned); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	return UnknownSentinel
}

func (n *Normalizer) cleanup(raw string) string {
	cleaned := raw
	for _, rule := range n.opts.CleanupRules {
		if !strings.Contains(cleaned, rule.Match) {
			continue
		}
		if rule.Entire {
			cleaned = rule.Replacement
		} else {
			cleaned = strings.ReplaceAll(cleaned, rule.Match, rule.Replacement)
		}
	}
	return strings.TrimSpace(cleaned)
}

// ResolveAvailability is the upstream entry point for scraped or submitted
// availability text: the explicit no-information marker becomes the unreleased
// placeholder before parsing, so the future sentinel is produced by the same
// parser path as every real date.
func (n *Normalizer) ResolveAvailability(raw string) time.Time {
	if strings.EqualFold(strings.TrimSpace(raw), NoInformationMarker) {
		raw = n.UnreleasedPlaceholder()
	}
	return n.Run(raw)
}

// UnreleasedSentinel is the date meaning "confirmed to exist, release date not
// yet public": Dec 31 of the current year plus the configured horizon.
func (n *Normalizer) UnreleasedSentinel() time.Time {
	return time.Date(n.opts.Now().Year()+n.opts.HorizonYears, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// UnreleasedPlaceholder is the parseable text form of UnreleasedSentinel,
// substituted upstream for NoInformationMarker.
func (n *Normalizer) UnreleasedPlaceholder() string {
	return fmt.Sprintf("December 31, %d", n.opts.Now().Year()+n.opts.HorizonYears)
}

// IsUnreleasedSentinel reports whether date is a synthetic future sentinel.
// Catalog sources never publish an exact Dec 31 date in a future year, so the
// shape identifies the sentinel regardless of the horizon it was written with.
func (n *Normalizer) IsUnreleasedSentinel(date time.Time) bool {
	return date.Month() == time.December && date.Day() == 31 && date.Year() > n.opts.Now().Year()
}

// IsSentinel reports whether date is either sentinel, i.e. carries no real
// calendar information.
func (n *Normalizer) IsSentinel(date time.Time) bool {
	return date.Equal(UnknownSentinel) || n.IsUnreleasedSentinel(date)
}
