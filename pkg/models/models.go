package models

import "time"

// PostKind distinguishes regular posts from reels
type PostKind string

const (
	PostKindPost PostKind = "post"
	PostKindReel PostKind = "reel"
)

// CommentRecord is a single scraped comment. Text is non-empty after
// trimming; comments are de-duplicated by lowercased (handle, text)
// within a post.
type CommentRecord struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

// PostRecord holds engagement counts and a bounded comment sample for one
// post. CommentCount is the platform's own number of comments and is
// independent of how many comments were actually scraped.
type PostRecord struct {
	Shortcode    string          `json:"shortcode"`
	URL          string          `json:"url"`
	PublishedAt  *time.Time      `json:"date,omitempty"`
	Kind         PostKind        `json:"type"`
	Likes        int             `json:"likes"`
	CommentCount int             `json:"comments_count"`
	Comments     []CommentRecord `json:"comments"`
}

// BasicProfile carries authoritative counts only, without posts
type BasicProfile struct {
	Username   string    `json:"username"`
	ProfileURL string    `json:"profile_url"`
	Followers  int       `json:"followers"`
	Following  int       `json:"following"`
	PostsCount int       `json:"posts_count"`
	CapturedAt time.Time `json:"scraped_at"`
}

// ProfileSnapshot is the full result of a profile audit run. Shortcodes are
// unique within a snapshot; the snapshot is immutable once returned.
type ProfileSnapshot struct {
	Username   string         `json:"username"`
	ProfileURL string         `json:"profile_url"`
	Followers  int            `json:"followers"`
	Following  int            `json:"following"`
	PostsCount int            `json:"posts_count"`
	CapturedAt time.Time      `json:"scraped_at"`
	Posts      []PostRecord   `json:"posts"`
	Metrics    *MetricsReport `json:"metrics,omitempty"`
}

// MetricsReport is derived from a snapshot's posts and comments.
// All percentage fields and the risk score are within [0,100].
type MetricsReport struct {
	AvgLikes       float64 `json:"avg_likes"`
	MedianLikes    float64 `json:"median_likes"`
	AvgComments    float64 `json:"avg_comments"`
	MedianComments float64 `json:"median_comments"`
	// Engagement rates are reported as percentages.
	ERAvg     float64 `json:"er_avg"`
	ERMedian  float64 `json:"er_median"`
	LikeCV    float64 `json:"like_cv"`
	CommentCV float64 `json:"comment_cv"`

	GenericCommentsPct   float64 `json:"generic_comments_pct"`
	DuplicateCommentsPct float64 `json:"duplicate_comments_pct"`
	RepeatCommentersPct  float64 `json:"repeat_commenters_pct"`

	RiskScore float64 `json:"risk_score"`
}

// FollowerRecord is one resolved follower from a sample. A follower whose
// profile lookup failed keeps all-zero/false fields so sample accounting
// stays consistent.
type FollowerRecord struct {
	Username   string   `json:"username"`
	ProfileURL string   `json:"url"`
	Followers  int      `json:"followers"`
	Following  int      `json:"following"`
	Posts      int      `json:"posts"`
	IsPrivate  bool     `json:"is_private"`
	HasBio     bool     `json:"has_bio"`
	LikelyFake bool     `json:"likely_fake"`
	Reasons    []string `json:"reasons"`
}

// ReasonCount pairs a classifier reason with its occurrence count
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// AuditResult is the outcome of a follower audit. ReasonCounts is ordered
// by descending count; Preview holds at most 30 records.
type AuditResult struct {
	TargetUsername      string           `json:"target_username"`
	ProfileURL          string           `json:"profile_url"`
	SampleSizeRequested int              `json:"sample_size_requested"`
	SampleSizeCollected int              `json:"sample_size_collected"`
	BotLikePct          float64          `json:"likely_bot_like_pct"`
	ReasonCounts        []ReasonCount    `json:"reason_counts"`
	Preview             []FollowerRecord `json:"followers_sample_preview"`
}

// AccountSignals are the coarse, user-supplied or scraped inputs to the
// non-scraping analysis path.
type AccountSignals struct {
	UsernameOrURL  string   `json:"username_or_url"`
	Followers      int      `json:"followers"`
	Following      int      `json:"following"`
	Posts          int      `json:"posts"`
	AvgLikes       int      `json:"avg_likes"`
	AvgComments    int      `json:"avg_comments"`
	BioText        string   `json:"bio_text"`
	RecentCaptions []string `json:"recent_captions"`
}

// HashtagDegree is one hashtag with its co-occurrence degree
type HashtagDegree struct {
	Hashtag string `json:"hashtag"`
	Degree  int    `json:"degree"`
}

// HashtagGraphStats summarizes the hashtag co-occurrence graph
type HashtagGraphStats struct {
	Nodes       int             `json:"nodes"`
	Edges       int             `json:"edges"`
	TopHashtags []HashtagDegree `json:"top_hashtags"`
}

// ContentBreakdown is a keyword-based topic classification of bio + captions
type ContentBreakdown struct {
	Topics  map[string]float64 `json:"topics"`
	Summary string             `json:"summary"`
}

// AuthenticityEstimate summarizes the discrete authenticity posterior.
// ExpectedAuthenticity is on the 0..100 grid; FakePct and RealPct sum
// to 100.
type AuthenticityEstimate struct {
	FakePct              float64  `json:"fake_pct"`
	RealPct              float64  `json:"real_pct"`
	ExpectedAuthenticity float64  `json:"expected_authenticity"`
	VarianceAuthenticity float64  `json:"variance_authenticity"`
	Confidence           string   `json:"confidence"`
	Reasons              []string `json:"reasons"`
}

// AnalysisReport bundles the non-scraping analyses for one account
type AnalysisReport struct {
	Username     string                `json:"username"`
	Authenticity *AuthenticityEstimate `json:"authenticity"`
	Content      *ContentBreakdown     `json:"content"`
	Graph        *HashtagGraphStats    `json:"graph"`
	Advice       []string              `json:"advice"`
}
