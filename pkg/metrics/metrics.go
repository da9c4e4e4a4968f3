// Package metrics derives engagement statistics and an additive risk
// score from a profile snapshot. All inputs come from the snapshot
// itself; the package performs no network or browser work.
package metrics

import (
	"strings"

	"igaudit/pkg/models"
)

// riskInputs are the aggregates the risk score is computed from.
// erAvg is a decimal ratio, not a percentage; the percentage fields
// are within [0,100].
type riskInputs struct {
	followers  int
	postCount  int
	erAvg      float64
	avgLikes   float64
	avgComment float64
	likeCV     float64
	commentCV  float64
	genericPct float64
	dupPct     float64
	repeatPct  float64
}

// expectedER returns the minimum engagement-rate ratio considered
// healthy for an account of the given size. Larger accounts naturally
// engage a smaller fraction of their audience.
func expectedER(followers int) float64 {
	switch {
	case followers < 10_000:
		return 0.01
	case followers < 100_000:
		return 0.007
	default:
		return 0.003
	}
}

// riskScore sums weighted penalties for each suspicious signal and
// clamps the result into [0,100].
func riskScore(in riskInputs) float64 {
	score := 0.0

	if in.erAvg < expectedER(in.followers) {
		score += 25
	}

	switch {
	case in.genericPct > 40:
		score += 20
	case in.genericPct > 25:
		score += 12
	}

	switch {
	case in.dupPct > 20:
		score += 15
	case in.dupPct > 10:
		score += 8
	}

	switch {
	case in.repeatPct > 30:
		score += 10
	case in.repeatPct > 15:
		score += 5
	}

	// Consistency penalties need enough posts to be meaningful and a
	// non-zero mean for the ratio to be defined at all.
	if in.postCount >= 10 && in.avgLikes > 0 && in.likeCV < 0.15 {
		score += 10
	}
	if in.postCount >= 10 && in.avgComment > 0 && in.commentCV < 0.20 {
		score += 5
	}

	return clampFloat(score, 0, 100)
}

// Compute derives a MetricsReport from the snapshot's posts and their
// comment samples. A snapshot with no posts yields a zeroed report.
func Compute(snap *models.ProfileSnapshot) *models.MetricsReport {
	likes := make([]float64, 0, len(snap.Posts))
	comments := make([]float64, 0, len(snap.Posts))
	var texts []string
	var handles []string
	genericCount := 0
	totalComments := 0

	for _, post := range snap.Posts {
		likes = append(likes, float64(post.Likes))
		comments = append(comments, float64(post.CommentCount))
		for _, c := range post.Comments {
			totalComments++
			if IsGenericComment(c.Text) {
				genericCount++
			}
			if t := strings.ToLower(strings.TrimSpace(c.Text)); t != "" {
				texts = append(texts, t)
			}
			if h := strings.ToLower(strings.TrimSpace(c.Username)); h != "" {
				handles = append(handles, h)
			}
		}
	}

	avgLikes := mean(likes)
	avgComments := mean(comments)

	erAvg := 0.0
	erMedian := 0.0
	if snap.Followers > 0 {
		erAvg = (avgLikes + avgComments) / float64(snap.Followers)
		erMedian = (median(likes) + median(comments)) / float64(snap.Followers)
	}

	genericPct := 0.0
	if totalComments > 0 {
		genericPct = float64(genericCount) / float64(totalComments) * 100
	}

	report := &models.MetricsReport{
		AvgLikes:             round(avgLikes, 2),
		MedianLikes:          round(median(likes), 2),
		AvgComments:          round(avgComments, 2),
		MedianComments:       round(median(comments), 2),
		ERAvg:                round(erAvg*100, 3),
		ERMedian:             round(erMedian*100, 3),
		LikeCV:               round(coefficientOfVariation(likes), 3),
		CommentCV:            round(coefficientOfVariation(comments), 3),
		GenericCommentsPct:   round(genericPct, 2),
		DuplicateCommentsPct: round(duplicatePct(texts), 2),
		RepeatCommentersPct:  round(duplicatePct(handles), 2),
	}

	report.RiskScore = round(riskScore(riskInputs{
		followers:  snap.Followers,
		postCount:  len(snap.Posts),
		erAvg:      erAvg,
		avgLikes:   avgLikes,
		avgComment: avgComments,
		likeCV:     coefficientOfVariation(likes),
		commentCV:  coefficientOfVariation(comments),
		genericPct: genericPct,
		dupPct:     duplicatePct(texts),
		repeatPct:  duplicatePct(handles),
	}), 1)

	return report
}

// duplicatePct reports what share of the values repeats an earlier
// value, as a percentage. Empty input yields 0.
func duplicatePct(values []string) float64 {
	if len(values) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return (1 - float64(len(seen))/float64(len(values))) * 100
}
