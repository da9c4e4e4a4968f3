package botdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"igaudit/pkg/models"
)

func TestUsernameLooksGenerated(t *testing.T) {
	tests := []struct {
		username  string
		generated bool
	}{
		{"", true},
		{"abc1234", true},
		{"user99999", true},
		{"xy12345678", true},
		{"jane.doe", false},
		{"travel_mike", false},
		{"anna2024", true},
		{"anna20", false},
		{"a1b2", false},
	}
	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			assert.Equal(t, tt.generated, usernameLooksGenerated(tt.username))
		})
	}
}

func TestClassifyObviousBot(t *testing.T) {
	rec := &models.FollowerRecord{
		Username:  "abc1234",
		Followers: 10,
		Following: 4000,
		Posts:     0,
		IsPrivate: false,
		HasBio:    false,
	}
	Classify(rec)

	assert.True(t, rec.LikelyFake)
	assert.Equal(t, []string{
		"0 posts (public)",
		"no bio (public)",
		"following very high, followers very low",
		"following extremely high",
		"bot-like username pattern",
	}, rec.Reasons)
}

func TestClassifyHealthyAccount(t *testing.T) {
	rec := &models.FollowerRecord{
		Username:  "jane.doe",
		Followers: 800,
		Following: 450,
		Posts:     120,
		IsPrivate: false,
		HasBio:    true,
	}
	Classify(rec)

	assert.False(t, rec.LikelyFake)
	assert.Empty(t, rec.Reasons)
}

func TestClassifyPrivateDiscount(t *testing.T) {
	// A private account with a generated handle scores 2 before the
	// discount, 1 after, well below the fake threshold.
	rec := &models.FollowerRecord{
		Username:  "qq123456",
		Followers: 30,
		Following: 200,
		Posts:     0,
		IsPrivate: true,
		HasBio:    false,
	}
	Classify(rec)

	assert.False(t, rec.LikelyFake)
	assert.Equal(t, []string{"bot-like username pattern"}, rec.Reasons)
}

func TestClassifyPrivateDiscountFloorsAtZero(t *testing.T) {
	rec := &models.FollowerRecord{
		Username:  "jane.doe",
		Followers: 500,
		Following: 300,
		Posts:     40,
		IsPrivate: true,
		HasBio:    true,
	}
	Classify(rec)

	assert.False(t, rec.LikelyFake)
	assert.Empty(t, rec.Reasons)
}

func TestClassifyFailedLookupRecord(t *testing.T) {
	// A follower whose profile fetch failed keeps zero counts. The
	// public-zeros reasons still accumulate but a plausible handle
	// alone stays below the threshold.
	rec := &models.FollowerRecord{Username: "ghost.account"}
	Classify(rec)

	assert.False(t, rec.LikelyFake)
	assert.Contains(t, rec.Reasons, "0 posts (public)")
	assert.Contains(t, rec.Reasons, "no bio (public)")
}

func TestSummarizeOrdersByCount(t *testing.T) {
	records := []models.FollowerRecord{
		{LikelyFake: true, Reasons: []string{"no bio (public)", "0 posts (public)"}},
		{LikelyFake: true, Reasons: []string{"no bio (public)"}},
		{LikelyFake: false, Reasons: []string{"following extremely high"}},
	}
	counts := Summarize(records)

	assert.Equal(t, []models.ReasonCount{
		{Reason: "no bio (public)", Count: 2},
		{Reason: "0 posts (public)", Count: 1},
	}, counts)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, Summarize(nil))
}
