package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"igaudit/pkg/models"
)

// topics are the recognized content categories, in report order
var topics = []string{
	"fashion", "beauty", "fitness", "food", "travel", "technology",
	"business", "lifestyle", "music", "sports", "education",
}

var topicKeywords = map[string][]string{
	"fashion":    {"outfit", "style", "fashion", "clothes", "dress"},
	"beauty":     {"makeup", "skincare", "beauty"},
	"fitness":    {"gym", "workout", "fitness", "training"},
	"food":       {"food", "recipe", "restaurant", "cook"},
	"travel":     {"travel", "trip", "vacation", "hotel", "flight"},
	"technology": {"tech", "ai", "software", "app", "gadgets"},
	"business":   {"business", "startup", "marketing", "brand"},
	"lifestyle":  {"life", "daily", "routine", "vlog"},
	"music":      {"music", "song", "album"},
	"sports":     {"match", "game", "sport", "team"},
	"education":  {"learn", "study", "course", "lesson"},
}

// ContentBreakdown classifies bio and caption text into topic
// percentages by counting keyword occurrences. Substring counting is
// deliberate; "foodie" still counts toward food. When no keyword
// matches at all, the account defaults to lifestyle.
func ContentBreakdown(bio string, captions []string) *models.ContentBreakdown {
	text := strings.ToLower(bio + "\n" + strings.Join(captions, "\n"))

	counts := make(map[string]int, len(topics))
	total := 0
	for topic, keywords := range topicKeywords {
		for _, kw := range keywords {
			n := strings.Count(text, kw)
			counts[topic] += n
			total += n
		}
	}

	pcts := make(map[string]float64, len(topics))
	var summary string
	if total == 0 {
		for _, t := range topics {
			pcts[t] = 0
		}
		pcts["lifestyle"] = 100
		summary = "Not enough text to classify; defaulted to lifestyle."
	} else {
		for _, t := range topics {
			pcts[t] = roundPct(float64(counts[t]) / float64(total) * 100)
		}
		top := topTopics(counts, 3)
		summary = fmt.Sprintf("Main topics: %s.", strings.Join(top, ", "))
	}

	return &models.ContentBreakdown{Topics: pcts, Summary: summary}
}

// topTopics returns the n highest-scoring topics, ties broken by the
// canonical topic order.
func topTopics(counts map[string]int, n int) []string {
	ordered := make([]string, len(topics))
	copy(ordered, topics)
	sort.SliceStable(ordered, func(i, j int) bool {
		return counts[ordered[i]] > counts[ordered[j]]
	})
	if len(ordered) > n {
		ordered = ordered[:n]
	}
	return ordered
}

func roundPct(v float64) float64 {
	return math.Round(v*100) / 100
}
