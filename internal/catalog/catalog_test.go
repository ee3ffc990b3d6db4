package catalog

import (
	"testing"

	"geoquiz-service/internal/domain"
)

func TestValidate(t *testing.T) {
	if err := Validate(); err != nil {
		t.Fatalf("catalog invalid: %v", err)
	}
}

func TestEveryCuratedTierHasLandmarks(t *testing.T) {
	for _, d := range domain.Difficulties {
		got := Landmarks(d)
		if d.Curated() && len(got) == 0 {
			t.Fatalf("tier %s is empty", d)
		}
		if !d.Curated() && got != nil {
			t.Fatalf("tier %s should not have a list", d)
		}
	}
}

func TestNamesUniqueWithinTier(t *testing.T) {
	for _, d := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyNormal} {
		seen := map[string]bool{}
		for _, l := range Landmarks(d) {
			if seen[l.Label()] {
				t.Fatalf("duplicate landmark %q in %s", l.Label(), d)
			}
			seen[l.Label()] = true
		}
	}
}

func TestEasyContainsParis(t *testing.T) {
	for _, l := range Easy {
		if l.Name == "Paris" {
			if l.Point.Lon != 2.3522 || l.Point.Lat != 48.8566 {
				t.Fatalf("unexpected paris coordinates %+v", l.Point)
			}
			return
		}
	}
	t.Fatalf("paris missing from easy tier")
}
