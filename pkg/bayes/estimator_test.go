package bayes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"igaudit/pkg/models"
)

func TestPosteriorIsNormalized(t *testing.T) {
	kernels := []kernel{
		engagementKernel(0.001),
		ratioKernel(0.1),
		postsKernel(2),
	}
	posterior := computePosterior(kernels)

	assert.Len(t, posterior, 101)
	sum := 0.0
	for _, p := range posterior {
		assert.GreaterOrEqual(t, p, 0.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestEngagementKernelTiers(t *testing.T) {
	assert.Equal(t, 35.0, engagementKernel(0.004).mu)
	assert.Equal(t, 60.0, engagementKernel(0.01).mu)
	assert.Equal(t, 75.0, engagementKernel(0.05).mu)
	assert.Equal(t, 65.0, engagementKernel(0.2).mu)
}

func TestRatioKernelTiers(t *testing.T) {
	assert.Equal(t, 55.0, ratioKernel(0.2).mu)
	assert.Equal(t, 65.0, ratioKernel(1.5).mu)
	assert.Equal(t, 70.0, ratioKernel(10).mu)
}

func TestPostsKernelTiers(t *testing.T) {
	assert.Equal(t, 55.0, postsKernel(0).mu)
	assert.Equal(t, 65.0, postsKernel(49).mu)
	assert.Equal(t, 70.0, postsKernel(50).mu)
}

func TestEstimateSuspiciousAccount(t *testing.T) {
	est := Estimate(models.AccountSignals{
		Followers: 100_000,
		Following: 50,
		Posts:     3,
		AvgLikes:  40,
	})

	assert.Contains(t, est.Reasons[0], "Very low engagement rate")
	assert.Contains(t, est.Reasons[1], "High follower/following ratio")
	assert.Contains(t, est.Reasons[2], "Few posts")

	assert.GreaterOrEqual(t, est.ExpectedAuthenticity, 0.0)
	assert.LessOrEqual(t, est.ExpectedAuthenticity, 100.0)
	assert.InDelta(t, 100.0, est.FakePct+est.RealPct, 1e-9)
	// The low-engagement kernel centers at 35, so the expected
	// authenticity must land well below a healthy account's.
	assert.Less(t, est.ExpectedAuthenticity, 60.0)
}

func TestEstimateHealthyAccount(t *testing.T) {
	est := Estimate(models.AccountSignals{
		Followers:   20_000,
		Following:   800,
		Posts:       200,
		AvgLikes:    600,
		AvgComments: 40,
	})

	assert.Contains(t, est.Reasons[0], "Healthy engagement rate")
	assert.Contains(t, est.Reasons[2], "Many posts")
	assert.Greater(t, est.ExpectedAuthenticity, 60.0)
	assert.Equal(t, "High", est.Confidence)
}

func TestEstimateZeroInputsAreFloored(t *testing.T) {
	est := Estimate(models.AccountSignals{})

	// Followers and following both floor to 1, engagement is 0.
	assert.Contains(t, est.Reasons[0], "Very low engagement rate")
	assert.Contains(t, est.Reasons[1], "Balanced follower/following ratio")
	assert.Len(t, est.Reasons, 3)
}

func TestKernelEvalNeverZero(t *testing.T) {
	k := kernel{mu: 0, sigma: 1, reason: ""}
	assert.Greater(t, k.eval(100), 0.0)
}
