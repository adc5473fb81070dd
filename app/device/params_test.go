package device

import (
	"testing"
)

func TestConvertBounded_ValidNoConstraints(t *testing.T) {
	if got := convertBounded("7", nil, nil, -1); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
	if got := convertBounded(50, nil, nil, -1); got != 50 {
		t.Errorf("Expected 50, got %d", got)
	}
}

func TestConvertBounded_WithinBounds(t *testing.T) {
	if got := convertBounded("8", intPtr(5), intPtr(10), 0); got != 8 {
		t.Errorf("Expected 8, got %d", got)
	}
	if got := convertBounded("43", intPtr(0), intPtr(100), 0); got != 43 {
		t.Errorf("Expected 43, got %d", got)
	}
}

func TestConvertBounded_Clamping(t *testing.T) {
	if got := convertBounded("4", intPtr(10), nil, 0); got != 10 {
		t.Errorf("Expected clamp to minimum 10, got %d", got)
	}
	if got := convertBounded("15", nil, intPtr(10), 0); got != 10 {
		t.Errorf("Expected clamp to maximum 10, got %d", got)
	}
}

func TestConvertBounded_InvalidReturnsDefault(t *testing.T) {
	invalid := []any{nil, false, true, "Hello World", "Seven", "", 4.5, []string{"5"}}
	for _, raw := range invalid {
		if got := convertBounded(raw, nil, nil, 10); got != 10 {
			t.Errorf("Expected default 10 for %v (%T), got %d", raw, raw, got)
		}
	}
}

func TestConvertible_BooleanExcluded(t *testing.T) {
	// true would parse as 1 if bools were allowed through
	if _, ok := convertible(true); ok {
		t.Error("Boolean true must not be convertible")
	}
	if _, ok := convertible(false); ok {
		t.Error("Boolean false must not be convertible")
	}
}

func TestConvertible_IntegralJSONNumber(t *testing.T) {
	num, ok := convertible(float64(50))
	if !ok || num != 50 {
		t.Errorf("Expected JSON-decoded 50 to convert, got %d, %v", num, ok)
	}
	if _, ok := convertible(50.5); ok {
		t.Error("Fractional number must not be convertible")
	}
}

func TestSanitize_LimitDefaults(t *testing.T) {
	s := NewSanitizer()

	fs := s.Run(map[string]any{}, QueryFields)
	if fs.Limit != 100 {
		t.Errorf("Expected absent limit to default to 100, got %d", fs.Limit)
	}

	fs = s.Run(map[string]any{"limit": "-50"}, QueryFields)
	if fs.Limit != 1 {
		t.Errorf("Expected limit=-50 to clamp to 1, got %d", fs.Limit)
	}

	fs = s.Run(map[string]any{"limit": "150"}, QueryFields)
	if fs.Limit != 100 {
		t.Errorf("Expected limit=150 to clamp to 100, got %d", fs.Limit)
	}

	fs = s.Run(map[string]any{"limit": "garbage"}, QueryFields)
	if fs.Limit != 100 {
		t.Errorf("Expected unparsable limit to default to 100, got %d", fs.Limit)
	}
}

func TestSanitize_OffsetZeroIsNotAbsent(t *testing.T) {
	s := NewSanitizer()

	// The recurring defect: a supplied 0 must not be replaced by the default
	fs := s.Run(map[string]any{"offset": "0"}, QueryFields)
	if fs.Offset != 0 {
		t.Errorf("Expected explicit offset=0 to stay 0, got %d", fs.Offset)
	}

	fs = s.Run(map[string]any{"offset": 0}, QueryFields)
	if fs.Offset != 0 {
		t.Errorf("Expected explicit integer offset 0 to stay 0, got %d", fs.Offset)
	}

	fs = s.Run(map[string]any{"offset": "-50"}, QueryFields)
	if fs.Offset != 0 {
		t.Errorf("Expected offset=-50 to clamp to 0, got %d", fs.Offset)
	}

	fs = s.Run(map[string]any{}, QueryFields)
	if fs.Offset != 0 {
		t.Errorf("Expected absent offset to default to 0, got %d", fs.Offset)
	}
}

func TestSanitize_NameFilters(t *testing.T) {
	s := NewSanitizer()

	fs := s.Run(map[string]any{"manufacturer": "Apple", "name": "iPhone"}, QueryFields)
	if fs.Manufacturer == nil || *fs.Manufacturer != "Apple" {
		t.Errorf("Expected manufacturer 'Apple', got %v", fs.Manufacturer)
	}
	if fs.Name == nil || *fs.Name != "iPhone" {
		t.Errorf("Expected name 'iPhone', got %v", fs.Name)
	}

	fs = s.Run(map[string]any{"manufacturer": ""}, QueryFields)
	if fs.Manufacturer != nil {
		t.Errorf("Expected empty manufacturer to be absent, got %v", *fs.Manufacturer)
	}

	fs = s.Run(map[string]any{"manufacturer": 42}, QueryFields)
	if fs.Manufacturer != nil {
		t.Errorf("Expected non-string manufacturer to be absent, got %v", *fs.Manufacturer)
	}
}

func TestSanitize_IsReleased(t *testing.T) {
	s := NewSanitizer()

	fs := s.Run(map[string]any{}, QueryFields)
	if fs.IsReleased {
		t.Error("Expected absent is_released to be false")
	}

	fs = s.Run(map[string]any{"is_released": "I want only released devices"}, QueryFields)
	if !fs.IsReleased {
		t.Error("Expected present non-empty is_released to be true")
	}

	fs = s.Run(map[string]any{"is_released": ""}, QueryFields)
	if fs.IsReleased {
		t.Error("Expected empty is_released to be false")
	}

	fs = s.Run(map[string]any{"is_released": true}, QueryFields)
	if !fs.IsReleased {
		t.Error("Expected boolean true is_released to be true")
	}
}

func TestSanitize_IgnoresUnrequestedFields(t *testing.T) {
	s := NewSanitizer()

	fs := s.Run(map[string]any{"is_released": "1", "manufacturer": "Apple"}, ManufacturerQueryFields)
	if fs.IsReleased {
		t.Error("Expected is_released to stay false when not requested")
	}
	if fs.Manufacturer != nil {
		t.Error("Expected manufacturer to stay nil when not requested")
	}
}
