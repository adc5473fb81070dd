package device

import (
	"testing"
	"time"

	"github.com/leshawn-rice/grabaphone/app/database"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Reference fixture from the ranking contract: one released device, one
// future-sentinel device, one unknown-sentinel device.
func rankerFixture() []database.DeviceWithManufacturer {
	return []database.DeviceWithManufacturer{
		{
			Device:           database.Device{ID: "a", Name: "Galaxy S20", ReleaseDate: date(2020, time.October, 23)},
			ManufacturerName: "Samsung",
		},
		{
			Device:           database.Device{ID: "b", Name: "Pixel Fold", ReleaseDate: date(2030, time.December, 31)},
			ManufacturerName: "Google",
		},
		{
			Device:           database.Device{ID: "c", Name: "Mystery Phone", ReleaseDate: UnknownSentinel},
			ManufacturerName: "Apple",
		},
	}
}

var rankerNow = date(2024, time.June, 1)

func TestRanker_IsReleasedExcludesSentinels(t *testing.T) {
	r := NewRanker()

	result := r.Run(rankerFixture(), FilterSet{Limit: 100, IsReleased: true}, rankerNow)
	if len(result) != 1 {
		t.Fatalf("Expected 1 released device, got %d", len(result))
	}
	if !result[0].ReleaseDate.Equal(date(2020, time.October, 23)) {
		t.Errorf("Expected the 2020-10-23 device, got %v", result[0].ReleaseDate)
	}
}

func TestRanker_RecencyOrdering(t *testing.T) {
	r := NewRanker()

	result := r.Run(rankerFixture(), FilterSet{Limit: 100}, rankerNow)
	if len(result) != 3 {
		t.Fatalf("Expected all 3 devices, got %d", len(result))
	}

	want := []time.Time{date(2030, time.December, 31), date(2020, time.October, 23), UnknownSentinel}
	for i, w := range want {
		if !result[i].ReleaseDate.Equal(w) {
			t.Errorf("Position %d: expected %v, got %v", i, w, result[i].ReleaseDate)
		}
	}
}

func TestRanker_Pagination(t *testing.T) {
	r := NewRanker()

	result := r.Run(rankerFixture(), FilterSet{Limit: 1, Offset: 1}, rankerNow)
	if len(result) != 1 {
		t.Fatalf("Expected exactly 1 device, got %d", len(result))
	}
	if !result[0].ReleaseDate.Equal(date(2020, time.October, 23)) {
		t.Errorf("Expected the 2020-10-23 device at offset 1, got %v", result[0].ReleaseDate)
	}

	result = r.Run(rankerFixture(), FilterSet{Limit: 100, Offset: 10}, rankerNow)
	if len(result) != 0 {
		t.Errorf("Expected empty page past the end, got %d devices", len(result))
	}
}

func TestRanker_ManufacturerFilter(t *testing.T) {
	r := NewRanker()

	appl := "appl"
	result := r.Run(rankerFixture(), FilterSet{Limit: 100, Manufacturer: &appl}, rankerNow)
	if len(result) != 1 || result[0].ManufacturerName != "Apple" {
		t.Errorf("Expected case-insensitive match on 'Apple', got %v", result)
	}

	zzz := "zzz"
	result = r.Run(rankerFixture(), FilterSet{Limit: 100, Manufacturer: &zzz}, rankerNow)
	if len(result) != 0 {
		t.Errorf("Expected empty page for unmatched filter, got %d devices", len(result))
	}
}

func TestRanker_NameFilterComposesWithManufacturer(t *testing.T) {
	r := NewRanker()

	samsung := "samsung"
	pixel := "pixel"
	fs := FilterSet{Limit: 100, Manufacturer: &samsung, Name: &pixel}
	result := r.Run(rankerFixture(), fs, rankerNow)
	if len(result) != 0 {
		t.Errorf("Expected AND-composed filters to match nothing, got %d devices", len(result))
	}

	galaxy := "galaxy"
	fs = FilterSet{Limit: 100, Manufacturer: &samsung, Name: &galaxy}
	result = r.Run(rankerFixture(), fs, rankerNow)
	if len(result) != 1 || result[0].Name != "Galaxy S20" {
		t.Errorf("Expected the Galaxy S20 to match both filters, got %v", result)
	}
}

func TestRanker_TieBreakIsDeterministic(t *testing.T) {
	r := NewRanker()

	same := date(2021, time.March, 1)
	rows := []database.DeviceWithManufacturer{
		{Device: database.Device{ID: "z", Name: "Phone Z", ReleaseDate: same}, ManufacturerName: "Acme"},
		{Device: database.Device{ID: "a", Name: "Phone A", ReleaseDate: same}, ManufacturerName: "Acme"},
		{Device: database.Device{ID: "m", Name: "Phone M", ReleaseDate: same}, ManufacturerName: "Acme"},
	}

	first := r.Run(rows, FilterSet{Limit: 100}, rankerNow)
	for i, wantID := range []string{"a", "m", "z"} {
		if first[i].ID != wantID {
			t.Errorf("Position %d: expected ID %s, got %s", i, wantID, first[i].ID)
		}
	}

	// Paging one at a time must walk the same order
	for i, wantID := range []string{"a", "m", "z"} {
		page := r.Run(rows, FilterSet{Limit: 1, Offset: i}, rankerNow)
		if len(page) != 1 || page[0].ID != wantID {
			t.Errorf("Offset %d: expected ID %s, got %v", i, wantID, page)
		}
	}
}

func TestRanker_ReleasedTodayIsNotReleased(t *testing.T) {
	r := NewRanker()

	rows := []database.DeviceWithManufacturer{
		{Device: database.Device{ID: "t", Name: "Today Phone", ReleaseDate: rankerNow}, ManufacturerName: "Acme"},
	}

	result := r.Run(rows, FilterSet{Limit: 100, IsReleased: true}, rankerNow)
	if len(result) != 0 {
		t.Errorf("Released comparison is strict: a release dated now must be excluded, got %d", len(result))
	}
}
