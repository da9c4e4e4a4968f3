// Package botdetect classifies individual follower profiles as likely
// fake using additive heuristics over public profile signals. The
// classifier is deterministic; the same record always yields the same
// verdict and reasons.
package botdetect

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"igaudit/pkg/models"
)

// FakeThreshold is the minimum heuristic score for a likely-fake verdict
const FakeThreshold = 4

var numericSuffixRe = regexp.MustCompile(`^[a-z]{2,6}\d{4,}$`)

// usernameLooksGenerated reports whether a handle matches the patterns
// bulk-created accounts tend to use: heavily numeric, a short word with
// a long numeric tail, or missing entirely.
func usernameLooksGenerated(username string) bool {
	u := strings.ToLower(username)
	if u == "" {
		return true
	}
	digits := 0
	for _, r := range u {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	threshold := int(float64(len(u)) * 0.4)
	if threshold < 5 {
		threshold = 5
	}
	if digits >= threshold {
		return true
	}
	return numericSuffixRe.MatchString(u)
}

// Classify scores a follower record and fills in its LikelyFake verdict
// and the ordered list of reasons that contributed. The input record's
// counts are not modified.
func Classify(rec *models.FollowerRecord) {
	score := 0
	reasons := make([]string, 0, 5)

	if !rec.IsPrivate && rec.Posts == 0 {
		score += 2
		reasons = append(reasons, "0 posts (public)")
	}
	if !rec.IsPrivate && !rec.HasBio {
		score++
		reasons = append(reasons, "no bio (public)")
	}
	if rec.Following >= 1500 && rec.Followers <= 50 {
		score += 3
		reasons = append(reasons, "following very high, followers very low")
	}
	if rec.Following >= 3000 {
		score++
		reasons = append(reasons, "following extremely high")
	}
	if usernameLooksGenerated(rec.Username) {
		score += 2
		reasons = append(reasons, "bot-like username pattern")
	}

	// Private accounts hide most signals, so give them the benefit of
	// the doubt.
	if rec.IsPrivate && score > 0 {
		score--
	}

	rec.LikelyFake = score >= FakeThreshold
	rec.Reasons = reasons
}

// Summarize tallies reasons across likely-fake records and returns them
// ordered by descending count, ties broken alphabetically.
func Summarize(records []models.FollowerRecord) []models.ReasonCount {
	counts := make(map[string]int)
	for _, rec := range records {
		if !rec.LikelyFake {
			continue
		}
		for _, reason := range rec.Reasons {
			counts[reason]++
		}
	}

	out := make([]models.ReasonCount, 0, len(counts))
	for reason, count := range counts {
		out = append(out, models.ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}
