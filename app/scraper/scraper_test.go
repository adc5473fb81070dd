package scraper

import (
	"testing"
)

const manufacturersHTML = `<html><body>
<div class="manufacturers">
  <div class="manufacturer-item">
    <a href="https://www.phonearena.com/phones/manufacturers/Apple">
      <img src="https://cdn.example.com/apple.png">
      <span>Apple</span>
    </a>
  </div>
  <div class="manufacturer-item">
    <a href="https://www.phonearena.com/phones/manufacturers/BLU">
      <img src="https://cdn.example.com/blu.png">
      <span>BLU</span>
    </a>
  </div>
  <div class="manufacturer-item">
    <a href="https://www.phonearena.com/phones/manufacturers/samsung">
      <span>samsung</span>
    </a>
  </div>
</div>
</body></html>`

const devicesHTML = `<html><body>
<div id="finder-results">
  <div class="stream-item">
    <a href="https://www.phonearena.com/phones/Apple-iPhone-12_id11417">
      <img src="https://cdn.example.com/iphone12.jpg">
      <p class="title">Apple iPhone 12</p>
      <div class="score">9.0</div>
    </a>
  </div>
  <div class="stream-item">
    <a href="https://www.phonearena.com/phones/Apple-iPhone-SE_id11421">
      <p class="title">Apple iPhone SE</p>
      <div class="score">N/A</div>
    </a>
  </div>
  <div class="stream-item">
    <a href="https://www.phonearena.com/phones/unnamed"><p class="title">  </p></a>
  </div>
</div>
</body></html>`

const specsHTML = `<html><body>
<div class="widgetSpecs">
  <section>
    <h3>Design</h3>
    <table><tbody>
      <tr><th>Dimensions</th><td>5.78 x 2.82 x 0.29 inches</td></tr>
      <tr><th>Weight</th><td>5.78 oz</td></tr>
    </tbody></table>
  </section>
  <section>
    <h3>Release</h3>
    <table><tbody>
      <tr><th>Release date</th><td>Oct 23, 2020</td></tr>
      <tr><th>Carriers</th><td>Unlocked</td></tr>
    </tbody></table>
  </section>
</div>
</body></html>`

func TestParseManufacturers(t *testing.T) {
	s := NewScraper()

	manufacturers, err := s.ParseManufacturers([]byte(manufacturersHTML))
	if err != nil {
		t.Fatal(err)
	}

	if len(manufacturers) != 3 {
		t.Fatalf("Expected 3 manufacturers, got %d", len(manufacturers))
	}

	if manufacturers[0].Name != "Apple" {
		t.Errorf("Expected name 'Apple', got '%s'", manufacturers[0].Name)
	}
	if manufacturers[0].URL != "https://www.phonearena.com/phones/manufacturers/Apple" {
		t.Errorf("Unexpected URL '%s'", manufacturers[0].URL)
	}
	if manufacturers[0].ImageURL != "https://cdn.example.com/apple.png" {
		t.Errorf("Unexpected image URL '%s'", manufacturers[0].ImageURL)
	}

	// All-caps brand names survive canonicalization
	if manufacturers[1].Name != "BLU" {
		t.Errorf("Expected name 'BLU', got '%s'", manufacturers[1].Name)
	}

	// Lowercase names are title-cased
	if manufacturers[2].Name != "Samsung" {
		t.Errorf("Expected name 'Samsung', got '%s'", manufacturers[2].Name)
	}
	if manufacturers[2].ImageURL != "" {
		t.Errorf("Expected empty image URL, got '%s'", manufacturers[2].ImageURL)
	}
}

func TestParseDevices(t *testing.T) {
	s := NewScraper()

	devices, err := s.ParseDevices([]byte(devicesHTML))
	if err != nil {
		t.Fatal(err)
	}

	// The unnamed block is skipped
	if len(devices) != 2 {
		t.Fatalf("Expected 2 devices, got %d", len(devices))
	}

	if devices[0].Name != "Apple iPhone 12" {
		t.Errorf("Expected name 'Apple iPhone 12', got '%s'", devices[0].Name)
	}
	if devices[0].URL != "https://www.phonearena.com/phones/Apple-iPhone-12_id11417" {
		t.Errorf("Unexpected URL '%s'", devices[0].URL)
	}
	if devices[0].RatingText != "9.0" {
		t.Errorf("Expected rating text '9.0', got '%s'", devices[0].RatingText)
	}

	if devices[1].ImageURL != "" {
		t.Errorf("Expected empty image URL, got '%s'", devices[1].ImageURL)
	}
}

func TestParseSpecs(t *testing.T) {
	s := NewScraper()

	specs, err := s.ParseSpecs([]byte(specsHTML))
	if err != nil {
		t.Fatal(err)
	}

	if len(specs) != 4 {
		t.Fatalf("Expected 4 specs, got %d", len(specs))
	}

	if specs[0].Category != "Design" || specs[0].Name != "Dimensions" {
		t.Errorf("Unexpected first spec: %+v", specs[0])
	}
	if specs[2].Category != "Release" || specs[2].Name != "Release date" || specs[2].Description != "Oct 23, 2020" {
		t.Errorf("Unexpected release spec: %+v", specs[2])
	}
}

func TestParseRating(t *testing.T) {
	s := NewScraper()

	rating := s.ParseRating("9.0")
	if rating == nil || *rating != 9.0 {
		t.Errorf("Expected rating 9.0, got %v", rating)
	}

	if s.ParseRating("N/A") != nil {
		t.Error("Expected nil rating for 'N/A'")
	}
	if s.ParseRating("") != nil {
		t.Error("Expected nil rating for empty text")
	}
}

func TestFindReleaseText(t *testing.T) {
	s := NewScraper()

	specs, err := s.ParseSpecs([]byte(specsHTML))
	if err != nil {
		t.Fatal(err)
	}

	if got := s.FindReleaseText(specs); got != "Oct 23, 2020" {
		t.Errorf("Expected 'Oct 23, 2020', got '%s'", got)
	}

	if got := s.FindReleaseText(nil); got != "" {
		t.Errorf("Expected empty release text, got '%s'", got)
	}
}

func TestParseEmptyDocuments(t *testing.T) {
	s := NewScraper()

	manufacturers, err := s.ParseManufacturers([]byte("<html><body></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	if len(manufacturers) != 0 {
		t.Errorf("Expected no manufacturers, got %d", len(manufacturers))
	}

	devices, err := s.ParseDevices([]byte("<html><body></body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	if len(devices) != 0 {
		t.Errorf("Expected no devices, got %d", len(devices))
	}
}
