// Package bayes estimates account authenticity with a discrete Bayesian
// model over a 0..100 grid. Three independent Gaussian likelihoods,
// one per observed signal, are multiplied into a posterior whose mean
// becomes the authenticity score and whose variance drives the
// confidence label.
package bayes

import (
	"math"

	"igaudit/pkg/models"
)

const gridSize = 101

// likelihoodFloor keeps every grid point strictly positive so the
// posterior never collapses to all zeros.
const likelihoodFloor = 1e-12

// kernel is one Gaussian likelihood over the authenticity grid
type kernel struct {
	mu     float64
	sigma  float64
	reason string
}

func (k kernel) eval(x float64) float64 {
	d := (x - k.mu) / k.sigma
	return math.Exp(-0.5*d*d) + likelihoodFloor
}

// engagementKernel maps the weighted engagement ratio to a likelihood.
// Comments are weighted 3x because they cost a real person more effort
// than a like.
func engagementKernel(er float64) kernel {
	switch {
	case er < 0.005:
		return kernel{35, 18, "Very low engagement rate → possible fake/low-quality followers."}
	case er < 0.02:
		return kernel{60, 15, "Moderate-low engagement rate."}
	case er < 0.06:
		return kernel{75, 12, "Healthy engagement rate."}
	default:
		return kernel{65, 20, "Very high engagement rate → could be viral/small-account effect (uncertainty)."}
	}
}

func ratioKernel(ratio float64) kernel {
	switch {
	case ratio < 0.5:
		return kernel{55, 18, "Followers lower than following → early-stage or follow-back behavior."}
	case ratio < 2:
		return kernel{65, 14, "Balanced follower/following ratio."}
	default:
		return kernel{70, 14, "High follower/following ratio."}
	}
}

func postsKernel(posts int) kernel {
	switch {
	case posts < 10:
		return kernel{55, 20, "Few posts → higher uncertainty."}
	case posts < 50:
		return kernel{65, 16, "Moderate number of posts."}
	default:
		return kernel{70, 14, "Many posts → more stable estimate."}
	}
}

// Estimate computes the authenticity posterior from coarse account
// signals. Followers and following are floored at 1 so the ratios stay
// defined; posts and averages are floored at 0.
func Estimate(sig models.AccountSignals) *models.AuthenticityEstimate {
	followers := maxInt(sig.Followers, 1)
	following := maxInt(sig.Following, 1)
	posts := maxInt(sig.Posts, 0)
	avgLikes := maxInt(sig.AvgLikes, 0)
	avgComments := maxInt(sig.AvgComments, 0)

	er := float64(avgLikes+3*avgComments) / float64(followers)
	ratio := float64(followers) / float64(following)

	kernels := []kernel{
		engagementKernel(er),
		ratioKernel(ratio),
		postsKernel(posts),
	}

	posterior := computePosterior(kernels)

	ex := 0.0
	for i, p := range posterior {
		ex += float64(i) * p
	}
	varX := 0.0
	for i, p := range posterior {
		d := float64(i) - ex
		varX += d * d * p
	}

	fakePct := math.Max(0, math.Min(100, 100-ex))

	confidence := "Low"
	switch {
	case varX < 120:
		confidence = "High"
	case varX < 250:
		confidence = "Medium"
	}

	reasons := make([]string, len(kernels))
	for i, k := range kernels {
		reasons[i] = k.reason
	}

	return &models.AuthenticityEstimate{
		FakePct:              round2(fakePct),
		RealPct:              round2(100 - fakePct),
		ExpectedAuthenticity: round2(ex),
		VarianceAuthenticity: round2(varX),
		Confidence:           confidence,
		Reasons:              reasons,
	}
}

// computePosterior multiplies the kernels pointwise over the grid and
// normalizes the result to a probability distribution.
func computePosterior(kernels []kernel) []float64 {
	posterior := make([]float64, gridSize)
	sum := 0.0
	for i := range posterior {
		x := float64(i)
		p := 1.0
		for _, k := range kernels {
			p *= k.eval(x)
		}
		posterior[i] = p
		sum += p
	}
	for i := range posterior {
		posterior[i] /= sum
	}
	return posterior
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
