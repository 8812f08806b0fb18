//go:build !integration

package usecase_test

import (
	"errors"
	"testing"

	"myfatoorah-checkout/internal/domain"
	"myfatoorah-checkout/internal/usecase"
)

func TestWeightRate(t *testing.T) {
	cases := []struct {
		unit string
		want float64
	}{
		{"kg", 1},
		{"KG", 1},
		{"كيلو جرام", 1},
		{"g", 0.001},
		{"lbs", 0.453592},
		{"lb", 0.453592},
		{"oz", 0.0283495},
		{"أوقية", 0.0283495},
	}
	for _, c := range cases {
		got, err := usecase.WeightRate(c.unit)
		if err != nil {
			t.Fatalf("WeightRate(%q): %v", c.unit, err)
		}
		if got != c.want {
			t.Fatalf("WeightRate(%q) = %v, want %v", c.unit, got, c.want)
		}
	}
	if _, err := usecase.WeightRate("stone"); !errors.Is(err, domain.ErrUnsupportedWeightUnit) {
		t.Fatalf("WeightRate(stone): expected ErrUnsupportedWeightUnit, got %v", err)
	}
}

func TestDimensionRate(t *testing.T) {
	cases := []struct {
		unit string
		want float64
	}{
		{"cm", 1},
		{"m", 100},
		{"متر", 100},
		{"mm", 0.1},
		{"in", 2.54},
		{"بوصة", 2.54},
		{"yd", 91.44},
	}
	for _, c := range cases {
		got, err := usecase.DimensionRate(c.unit)
		if err != nil {
			t.Fatalf("DimensionRate(%q): %v", c.unit, err)
		}
		if got != c.want {
			t.Fatalf("DimensionRate(%q) = %v, want %v", c.unit, got, c.want)
		}
	}
	if _, err := usecase.DimensionRate("ft"); !errors.Is(err, domain.ErrUnsupportedDimension) {
		t.Fatalf("DimensionRate(ft): expected ErrUnsupportedDimension, got %v", err)
	}
}
