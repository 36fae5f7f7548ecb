package match

import (
	"math"
	"sort"

	"github.com/campusfind/campusfind/internal/model"
)

// Config holds the matching weights and limits as named, overridable values.
type Config struct {
	CategoryPoints float64 // flat points for an exact category match
	NameWeight     float64 // multiplier on item-name similarity
	DescWeight     float64 // multiplier on description similarity
	LocationWeight float64 // multiplier on location similarity
	MinScore       int     // candidates scoring <= MinScore are dropped
	MaxResults     int     // result list cap
}

// DefaultConfig returns the production weights. The maximum attainable
// composite score is 100 (30 + 25 + 25 + 20).
func DefaultConfig() Config {
	return Config{
		CategoryPoints: 30,
		NameWeight:     0.25,
		DescWeight:     0.25,
		LocationWeight: 0.20,
		MinScore:       20,
		MaxResults:     10,
	}
}

// Match pairs a candidate post with its composite score.
type Match struct {
	Post  model.Post `json:"post"`
	Score int        `json:"match_score"`
}

// FindMatches scores every candidate against the subject and returns the
// ranked list. Candidates that are not active or not of the opposite type
// are skipped, so callers may pass a pre-filtered pool or not. This is a
// read-only query: no stored data is mutated.
func FindMatches(cfg Config, subject model.Post, candidates []model.Post) []Match {
	var matches []Match
	for _, c := range candidates {
		if c.Status != model.PostStatusActive || c.Type == subject.Type {
			continue
		}

		score := 0.0
		if subject.Category == c.Category {
			score += cfg.CategoryPoints
		}
		score += Similarity(subject.Item, c.Item) * cfg.NameWeight
		score += Similarity(subject.Description, c.Description) * cfg.DescWeight
		score += Similarity(subject.Location, c.Location) * cfg.LocationWeight

		rounded := int(math.Round(score))
		if rounded > cfg.MinScore {
			matches = append(matches, Match{Post: c, Score: rounded})
		}
	}

	// Stable sort preserves input order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > cfg.MaxResults {
		matches = matches[:cfg.MaxResults]
	}
	return matches
}
