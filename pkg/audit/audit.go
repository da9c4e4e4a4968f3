// Package audit orchestrates full audit runs: it opens the browsing
// session, drives the collectors, and attaches the derived analytics.
package audit

import (
	"math"
	"strings"

	"igaudit/pkg/analysis"
	"igaudit/pkg/bayes"
	"igaudit/pkg/botdetect"
	"igaudit/pkg/collector"
	"igaudit/pkg/config"
	"igaudit/pkg/instagram"
	"igaudit/pkg/logger"
	"igaudit/pkg/metrics"
	"igaudit/pkg/models"
	"igaudit/pkg/ratelimit"
	"igaudit/pkg/session"
)

// previewLimit caps the follower records included in an audit result
const previewLimit = 30

// SessionOpener produces an authenticated browsing session. Production
// uses the rod-backed implementation; tests substitute fakes.
type SessionOpener func(config.SessionConfig, logger.Logger) (session.Session, error)

// Engine runs audits against a configured session. One engine may run
// several audits, each with its own session lifetime.
type Engine struct {
	cfg  *config.Config
	log  logger.Logger
	open SessionOpener
}

// NewEngine creates an audit engine with the default rod-backed session
func NewEngine(cfg *config.Config, log logger.Logger) *Engine {
	return &Engine{
		cfg: cfg,
		log: log,
		open: func(sc config.SessionConfig, l logger.Logger) (session.Session, error) {
			return session.Open(sc, l)
		},
	}
}

// NewEngineWithOpener creates an engine with a custom session opener
func NewEngineWithOpener(cfg *config.Config, log logger.Logger, open SessionOpener) *Engine {
	return &Engine{cfg: cfg, log: log, open: open}
}

// openSession opens the browsing context and verifies the persisted
// login by loading the home page. Landing on the login wall fails the
// whole run.
func (e *Engine) openSession() (session.Session, error) {
	sess, err := e.open(e.cfg.Session, e.log)
	if err != nil {
		return nil, err
	}
	if _, err := sess.Navigate(instagram.BaseURL, e.cfg.Session.NavigationTimeout); err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}

// ProfileBasic resolves a profile reference to its authoritative counts
// without visiting any posts.
func (e *Engine) ProfileBasic(ref string) (*models.BasicProfile, error) {
	username, err := instagram.ParseProfileRef(ref)
	if err != nil {
		return nil, err
	}

	sess, err := e.openSession()
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	return collector.NewProfileCollector(sess, e.log).FetchCounts(username)
}

// ProfileAudit collects a bounded snapshot of the profile's recent posts
// with their comment samples and attaches the engagement metrics.
// nPosts and commentsPerPost are clamped into their configured bounds.
func (e *Engine) ProfileAudit(ref string, nPosts, commentsPerPost int) (*models.ProfileSnapshot, error) {
	username, err := instagram.ParseProfileRef(ref)
	if err != nil {
		return nil, err
	}
	nPosts = e.cfg.ClampPosts(nPosts)
	commentsPerPost = e.cfg.ClampCommentsPerPost(commentsPerPost)

	e.log.InfoWithFields("starting profile audit", map[string]interface{}{
		"username":          username,
		"posts":             nPosts,
		"comments_per_post": commentsPerPost,
	})

	sess, err := e.openSession()
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	snapshot, err := collector.NewProfileCollector(sess, e.log).FetchProfile(username, nPosts)
	if err != nil {
		return nil, err
	}

	comments := collector.NewCommentCollector(sess, e.cfg.Session, e.log)
	for i := range snapshot.Posts {
		post := &snapshot.Posts[i]
		sample, err := comments.Collect(post.URL, commentsPerPost)
		if err != nil {
			return nil, err
		}
		post.Comments = sample
	}

	snapshot.Metrics = metrics.Compute(snapshot)

	e.log.InfoWithFields("profile audit complete", map[string]interface{}{
		"username":   username,
		"posts":      len(snapshot.Posts),
		"risk_score": snapshot.Metrics.RiskScore,
	})
	return snapshot, nil
}

// FollowerAudit samples the profile's followers, classifies each one,
// and aggregates the verdicts. sampleSize and delayMS are clamped into
// their configured bounds; the delay paces the per-follower profile
// lookups.
func (e *Engine) FollowerAudit(ref string, sampleSize, delayMS int) (*models.AuditResult, error) {
	username, err := instagram.ParseProfileRef(ref)
	if err != nil {
		return nil, err
	}
	sampleSize = e.cfg.ClampSampleSize(sampleSize)
	delay := e.cfg.ClampDelay(delayMS)

	e.log.InfoWithFields("starting follower audit", map[string]interface{}{
		"username":    username,
		"sample_size": sampleSize,
		"delay":       delay.String(),
	})

	sess, err := e.openSession()
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	handles, err := collector.NewFollowerSampler(sess, e.cfg.Session, e.log).CollectHandles(username, sampleSize)
	if err != nil {
		return nil, err
	}

	profiles := collector.NewProfileCollector(sess, e.log)
	limiter := ratelimit.NewInterval(delay)
	records := make([]models.FollowerRecord, 0, len(handles))
	fakes := 0
	for _, handle := range handles {
		limiter.Wait()
		rec := profiles.ResolveFollower(handle)
		botdetect.Classify(&rec)
		if rec.LikelyFake {
			fakes++
		}
		records = append(records, rec)
	}

	result := &models.AuditResult{
		TargetUsername:      username,
		ProfileURL:          instagram.ProfileURL(username),
		SampleSizeRequested: sampleSize,
		SampleSizeCollected: len(records),
		ReasonCounts:        botdetect.Summarize(records),
	}
	if len(records) > 0 {
		result.BotLikePct = roundPct(float64(fakes) / float64(len(records)) * 100)
	}
	result.Preview = records
	if len(result.Preview) > previewLimit {
		result.Preview = result.Preview[:previewLimit]
	}

	e.log.InfoWithFields("follower audit complete", map[string]interface{}{
		"username":     username,
		"collected":    result.SampleSizeCollected,
		"bot_like_pct": result.BotLikePct,
	})
	return result, nil
}

// Analyze runs the non-scraping analyses over user-supplied signals. It
// needs no session and never fails.
func (e *Engine) Analyze(sig models.AccountSignals) *models.AnalysisReport {
	username, err := instagram.ParseProfileRef(sig.UsernameOrURL)
	if err != nil {
		// The analysis path accepts free-form input; fall back to the
		// trimmed raw string rather than rejecting the request.
		username = strings.TrimSpace(sig.UsernameOrURL)
	}

	return &models.AnalysisReport{
		Username:     username,
		Authenticity: bayes.Estimate(sig),
		Content:      analysis.ContentBreakdown(sig.BioText, sig.RecentCaptions),
		Graph:        analysis.HashtagGraph(sig.RecentCaptions),
		Advice:       analysis.Advice(username),
	}
}

func roundPct(v float64) float64 {
	return math.Round(v*100) / 100
}
