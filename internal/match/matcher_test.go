package match

import (
	"fmt"
	"strings"
	"testing"

	"github.com/campusfind/campusfind/internal/model"
)

func activeFound(item, description, category, location string) model.Post {
	return model.Post{
		Type:        model.PostTypeFound,
		Item:        item,
		Description: description,
		Category:    category,
		Location:    location,
		Status:      model.PostStatusActive,
	}
}

func TestFindMatchesCategoryRanking(t *testing.T) {
	subject := model.Post{
		Type:     model.PostTypeLost,
		Item:     "headphones",
		Category: "Electronics",
		Status:   model.PostStatusActive,
	}
	sameCategory := activeFound("headphones", "", "Electronics", "")
	otherCategory := activeFound("headphones", "", "Accessories", "")

	matches := FindMatches(DefaultConfig(), subject, []model.Post{otherCategory, sameCategory})
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Post.Category != "Electronics" {
		t.Errorf("expected matching-category candidate first, got %q", matches[0].Post.Category)
	}
	if matches[0].Score <= matches[1].Score {
		t.Errorf("expected strictly higher score for category match: %d vs %d",
			matches[0].Score, matches[1].Score)
	}
}

func TestFindMatchesThresholdBoundary(t *testing.T) {
	subject := model.Post{
		Type:     model.PostTypeLost,
		Item:     "",
		Location: "library",
		Category: "Electronics",
		Status:   model.PostStatusActive,
	}

	// Location full match contributes exactly 20 points; 20 is not > 20.
	exactly20 := activeFound("", "", "Documents", "library")

	// One extra point from a 4% item-name similarity: one matched word out
	// of a 25-word candidate name (4 * 0.25 = 1 point, total 21).
	filler := make([]string, 25)
	filler[0] = "zzz"
	for i := 1; i < 25; i++ {
		filler[i] = fmt.Sprintf("w%02d", i)
	}
	subject21 := subject
	subject21.Item = "zzz"
	exactly21 := activeFound(strings.Join(filler, " "), "", "Documents", "library")

	if got := FindMatches(DefaultConfig(), subject, []model.Post{exactly20}); len(got) != 0 {
		t.Errorf("score 20 should be excluded, got %d matches (score %d)", len(got), got[0].Score)
	}

	got := FindMatches(DefaultConfig(), subject21, []model.Post{exactly21})
	if len(got) != 1 {
		t.Fatalf("score 21 should be included, got %d matches", len(got))
	}
	if got[0].Score != 21 {
		t.Errorf("expected composite score 21, got %d", got[0].Score)
	}
}

func TestFindMatchesCapAndOrder(t *testing.T) {
	subject := model.Post{
		Type:     model.PostTypeLost,
		Item:     "blue umbrella",
		Category: "Other",
		Status:   model.PostStatusActive,
	}

	// 15 qualifying candidates with decreasing name similarity.
	var candidates []model.Post
	for i := 0; i < 15; i++ {
		// Pad the candidate name so scores decrease as i grows.
		name := "blue umbrella"
		for j := 0; j < i; j++ {
			name += fmt.Sprintf(" pad%d", j)
		}
		candidates = append(candidates, activeFound(name, "", "Other", ""))
	}

	matches := FindMatches(DefaultConfig(), subject, candidates)
	if len(matches) != 10 {
		t.Fatalf("expected result capped at 10, got %d", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not sorted descending at %d: %d > %d",
				i, matches[i].Score, matches[i-1].Score)
		}
	}
}

func TestFindMatchesSkipsIneligibleCandidates(t *testing.T) {
	subject := model.Post{
		Type:     model.PostTypeLost,
		Item:     "wallet",
		Category: "Accessories",
		Status:   model.PostStatusActive,
	}

	claimed := activeFound("wallet", "", "Accessories", "")
	claimed.Status = model.PostStatusClaimed
	sameType := activeFound("wallet", "", "Accessories", "")
	sameType.Type = model.PostTypeLost

	if got := FindMatches(DefaultConfig(), subject, []model.Post{claimed, sameType}); len(got) != 0 {
		t.Errorf("expected non-active and same-type candidates skipped, got %d", len(got))
	}

	if got := FindMatches(DefaultConfig(), subject, nil); len(got) != 0 {
		t.Errorf("expected empty result for empty pool, got %d", len(got))
	}
}

func TestFindMatchesCalculatorScenario(t *testing.T) {
	subject := model.Post{
		Type:        model.PostTypeLost,
		Item:        "Calculator",
		Description: "Casio fx-991",
		Category:    "Electronics",
		Location:    "Library",
		Status:      model.PostStatusActive,
	}
	candidate := activeFound("Calculator", "Casio calculator found", "Electronics", "Library entrance")

	matches := FindMatches(DefaultConfig(), subject, []model.Post{candidate})
	if len(matches) != 1 {
		t.Fatalf("expected candidate included, got %d matches", len(matches))
	}
	// 30 category + 25 name + 8 description + 10 location = 73.
	if matches[0].Score < 55 {
		t.Errorf("expected composite score >= 55, got %d", matches[0].Score)
	}
}
