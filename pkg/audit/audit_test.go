package audit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igaudit/pkg/config"
	"igaudit/pkg/errors"
	"igaudit/pkg/extract"
	"igaudit/pkg/instagram"
	"igaudit/pkg/logger"
	"igaudit/pkg/models"
	"igaudit/pkg/session"
)

type fakeModal struct {
	batches []string
	scrolls int
}

func (m *fakeModal) Harvest() ([]string, error) { return m.batches, nil }
func (m *fakeModal) ScrollForward() error       { m.scrolls++; return nil }

type fakePage struct {
	url   string
	html  string
	text  string
	modal session.FollowerModal
}

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) Snapshot() (extract.PageData, error) {
	return extract.PageData{URL: p.url, HTML: p.html, Text: p.text}, nil
}

func (p *fakePage) OpenFollowerModal(string) (session.FollowerModal, error) {
	if p.modal == nil {
		return nil, errors.New(errors.ErrorTypeUINotFound, "no followers dialog")
	}
	return p.modal, nil
}

type fakeSession struct {
	json   map[string]string
	pages  map[string]*fakePage
	navErr error
	closed bool
}

func (s *fakeSession) Navigate(url string, _ time.Duration) (session.Page, error) {
	if s.navErr != nil {
		return nil, s.navErr
	}
	if page, ok := s.pages[url]; ok {
		page.url = url
		return page, nil
	}
	return &fakePage{url: url}, nil
}

func (s *fakeSession) FetchJSON(url string, _ map[string]string) ([]byte, error) {
	body, ok := s.json[url]
	if !ok {
		return nil, errors.NewHTTP(404, "no fixture for %s", url)
	}
	return []byte(body), nil
}

func (s *fakeSession) Close() error { s.closed = true; return nil }

func profileJSON(followers, following, posts int, nodes string) string {
	return fmt.Sprintf(`{
		"data": {"user": {
			"id": "1",
			"biography": "hello",
			"edge_followed_by": {"count": %d},
			"edge_follow": {"count": %d},
			"edge_owner_to_timeline_media": {"count": %d, "edges": [%s]}
		}},
		"status": "ok"
	}`, followers, following, posts, nodes)
}

func postNode(shortcode string, likes, comments int) string {
	return fmt.Sprintf(`{"node": {
		"shortcode": %q,
		"taken_at_timestamp": 1700000000,
		"edge_liked_by": {"count": %d},
		"edge_media_to_comment": {"count": %d}
	}}`, shortcode, likes, comments)
}

func testEngine(t *testing.T, sess *fakeSession) *Engine {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Session.SettleDelay = 0
	cfg.Session.NavigationTimeout = time.Second
	return NewEngineWithOpener(cfg, logger.NewNopLogger(),
		func(config.SessionConfig, logger.Logger) (session.Session, error) {
			return sess, nil
		})
}

func TestProfileBasic(t *testing.T) {
	sess := &fakeSession{json: map[string]string{
		instagram.ProfileInfoURL("target"): profileJSON(12000, 300, 450, ""),
	}}
	engine := testEngine(t, sess)

	basic, err := engine.ProfileBasic("https://www.instagram.com/target/")
	require.NoError(t, err)

	assert.Equal(t, "target", basic.Username)
	assert.Equal(t, 12000, basic.Followers)
	assert.Equal(t, 300, basic.Following)
	assert.Equal(t, 450, basic.PostsCount)
	assert.True(t, sess.closed)
}

func TestProfileBasicRejectsPostURL(t *testing.T) {
	opened := 0
	cfg := config.DefaultConfig()
	engine := NewEngineWithOpener(cfg, logger.NewNopLogger(),
		func(config.SessionConfig, logger.Logger) (session.Session, error) {
			opened++
			return &fakeSession{}, nil
		})

	_, err := engine.ProfileBasic("https://www.instagram.com/p/abc123/")

	assert.True(t, errors.Is(err, errors.ErrorTypeInvalidProfile))
	assert.Zero(t, opened, "no session should be opened for an invalid reference")
}

func TestProfileAuditCollectsCommentsAndMetrics(t *testing.T) {
	nodes := postNode("AA11", 50, 4) + "," + postNode("BB22", 60, 2)
	commentHTML := `<article><ul>
		<li><a href="/u1/">u1</a><span>wow amazing sunset today</span></li>
		<li><a href="/u2/">u2</a><span>nice</span></li>
	</ul></article>`

	sess := &fakeSession{
		json: map[string]string{
			instagram.ProfileInfoURL("target"): profileJSON(5000, 200, 2, nodes),
		},
		pages: map[string]*fakePage{
			instagram.PostURL("AA11"): {html: commentHTML},
			instagram.PostURL("BB22"): {html: commentHTML},
		},
	}
	engine := testEngine(t, sess)

	snap, err := engine.ProfileAudit("target", 30, 30)
	require.NoError(t, err)

	require.Len(t, snap.Posts, 2)
	assert.Len(t, snap.Posts[0].Comments, 2)
	assert.Equal(t, "u1", snap.Posts[0].Comments[0].Username)

	require.NotNil(t, snap.Metrics)
	assert.InDelta(t, 55.0, snap.Metrics.AvgLikes, 0.001)
	// 2 generic comments out of 4 sampled.
	assert.InDelta(t, 50.0, snap.Metrics.GenericCommentsPct, 0.01)
	assert.True(t, sess.closed)
}

func TestProfileAuditZeroCommentBudget(t *testing.T) {
	nodes := postNode("AA11", 50, 4)
	sess := &fakeSession{json: map[string]string{
		instagram.ProfileInfoURL("target"): profileJSON(5000, 200, 1, nodes),
	}}
	engine := testEngine(t, sess)

	snap, err := engine.ProfileAudit("target", 30, 0)
	require.NoError(t, err)

	require.Len(t, snap.Posts, 1)
	assert.Empty(t, snap.Posts[0].Comments)
}

func TestFollowerAuditClassifiesSample(t *testing.T) {
	modal := &fakeModal{batches: []string{"/real.person/", "/bot12345/"}}
	sess := &fakeSession{
		json: map[string]string{
			instagram.ProfileInfoURL("real.person"): profileJSON(900, 400, 150, ""),
		},
		pages: map[string]*fakePage{
			instagram.ProfileURL("target"): {modal: modal},
		},
	}
	engine := testEngine(t, sess)

	// bot12345 has no fixture, so resolution degrades to a zeroed public
	// record whose handle pattern pushes it over the fake threshold.
	result, err := engine.FollowerAudit("target", 50, 300)
	require.NoError(t, err)

	assert.Equal(t, "target", result.TargetUsername)
	assert.Equal(t, 50, result.SampleSizeRequested)
	assert.Equal(t, 2, result.SampleSizeCollected)
	assert.InDelta(t, 50.0, result.BotLikePct, 0.01)
	require.Len(t, result.Preview, 2)
	assert.False(t, result.Preview[0].LikelyFake)
	assert.True(t, result.Preview[1].LikelyFake)

	require.NotEmpty(t, result.ReasonCounts)
	for _, rc := range result.ReasonCounts {
		assert.Equal(t, 1, rc.Count)
	}
}

func TestFollowerAuditLoginWallIsFatal(t *testing.T) {
	sess := &fakeSession{
		navErr: errors.New(errors.ErrorTypeNotLoggedIn, "landed on login page"),
	}
	engine := testEngine(t, sess)

	_, err := engine.FollowerAudit("target", 100, 700)

	assert.True(t, errors.Is(err, errors.ErrorTypeNotLoggedIn))
	assert.True(t, sess.closed, "session must be released on the error path")
}

func TestAnalyzeBundlesAllReports(t *testing.T) {
	engine := testEngine(t, &fakeSession{})

	report := engine.Analyze(models.AccountSignals{
		UsernameOrURL:  "https://www.instagram.com/jane.doe/",
		Followers:      20000,
		Following:      800,
		Posts:          200,
		AvgLikes:       600,
		AvgComments:    40,
		BioText:        "travel blogger",
		RecentCaptions: []string{"trip #travel #japan", "hotel views #travel"},
	})

	assert.Equal(t, "jane.doe", report.Username)
	require.NotNil(t, report.Authenticity)
	assert.Contains(t, report.Authenticity.Reasons[0], "Healthy engagement rate")
	assert.Greater(t, report.Content.Topics["travel"], 0.0)
	assert.Equal(t, 2, report.Graph.Nodes)
	assert.Len(t, report.Advice, 3)
}

func TestAnalyzeFreeFormUsername(t *testing.T) {
	engine := testEngine(t, &fakeSession{})

	report := engine.Analyze(models.AccountSignals{UsernameOrURL: "  @jane.doe  "})

	assert.Equal(t, "jane.doe", report.Username)
}
