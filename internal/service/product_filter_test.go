package service

import (
	"errors"
	"net/url"
	"testing"
)

func TestParseProductFilter(t *testing.T) {
	t.Parallel()

	t.Run("recognized_keys", func(t *testing.T) {
		t.Parallel()

		query := url.Values{}
		query.Set("category", "tools")
		query.Set("minPrice", "10")
		query.Set("maxPrice", "20.5")
		query.Set("name", "ham")

		filter, err := ParseProductFilter(query)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if filter.Category != "tools" {
			t.Errorf("Category = %q, want tools", filter.Category)
		}
		if filter.MinPrice == nil || *filter.MinPrice != 10 {
			t.Errorf("MinPrice = %v, want 10", filter.MinPrice)
		}
		if filter.MaxPrice == nil || *filter.MaxPrice != 20.5 {
			t.Errorf("MaxPrice = %v, want 20.5", filter.MaxPrice)
		}
		if filter.Name != "ham" {
			t.Errorf("Name = %q, want ham", filter.Name)
		}
	})

	t.Run("unrecognized_keys_ignored", func(t *testing.T) {
		t.Parallel()

		query := url.Values{}
		query.Set("sort", "price")
		query.Set("limit", "100")
		query.Set("owner", "admin")

		filter, err := ParseProductFilter(query)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if filter.Category != "" || filter.Name != "" || filter.MinPrice != nil || filter.MaxPrice != nil {
			t.Errorf("unrecognized keys leaked into filter: %+v", filter)
		}
	})

	t.Run("bounds_independently_optional", func(t *testing.T) {
		t.Parallel()

		query := url.Values{}
		query.Set("minPrice", "5")

		filter, err := ParseProductFilter(query)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if filter.MinPrice == nil || *filter.MinPrice != 5 {
			t.Errorf("MinPrice = %v, want 5", filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			t.Errorf("MaxPrice = %v, want nil", filter.MaxPrice)
		}
	})

	t.Run("malformed_prices_rejected", func(t *testing.T) {
		t.Parallel()

		query := url.Values{}
		query.Set("minPrice", "cheap")
		query.Set("maxPrice", "expensive")

		_, err := ParseProductFilter(query)

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(verr.Fields) != 2 {
			t.Errorf("expected 2 field errors, got %d: %v", len(verr.Fields), verr.Fields)
		}
	})

	t.Run("empty_query", func(t *testing.T) {
		t.Parallel()

		filter, err := ParseProductFilter(url.Values{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if filter.Category != "" || filter.Name != "" || filter.MinPrice != nil || filter.MaxPrice != nil {
			t.Errorf("empty query should produce empty filter, got %+v", filter)
		}
	})
}
