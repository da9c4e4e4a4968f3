package collector

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"igaudit/pkg/config"
	"igaudit/pkg/errors"
	"igaudit/pkg/extract"
	"igaudit/pkg/logger"
	"igaudit/pkg/models"
	"igaudit/pkg/session"
)

var handleLineRe = regexp.MustCompile(`^[A-Za-z0-9._]{1,30}$`)

// CommentCollector extracts a bounded comment sample from a post page.
// Strategies are ordered from most to least structure-dependent; the final
// fallback scans adjacent lines of visible text.
type CommentCollector struct {
	session session.Session
	cfg     config.SessionConfig
	log     logger.Logger
}

// NewCommentCollector creates a CommentCollector bound to a session
func NewCommentCollector(s session.Session, cfg config.SessionConfig, log logger.Logger) *CommentCollector {
	if log == nil {
		log = logger.GetLogger()
	}
	return &CommentCollector{session: s, cfg: cfg, log: log}
}

// Collect navigates to a post and extracts up to maxComments comments.
// A navigation timeout yields zero comments without error: the post stays
// in the snapshot with its known counts, and zero scraped comments says
// nothing about how many comments the post actually has. Only a login
// redirect is returned as an error, since that is fatal for the run.
func (c *CommentCollector) Collect(postURL string, maxComments int) ([]models.CommentRecord, error) {
	if maxComments <= 0 {
		return []models.CommentRecord{}, nil
	}

	page, err := c.session.Navigate(postURL, c.cfg.NavigationTimeout)
	if err != nil {
		if errors.IsFatal(err) {
			return nil, err
		}
		c.log.WarnWithFields("post navigation failed, no comments for this item", map[string]interface{}{
			"url":   postURL,
			"error": err.Error(),
		})
		return []models.CommentRecord{}, nil
	}
	time.Sleep(c.cfg.SettleDelay)

	data, err := page.Snapshot()
	if err != nil {
		c.log.WarnWithFields("page snapshot failed", map[string]interface{}{
			"url":   postURL,
			"error": err.Error(),
		})
		return []models.CommentRecord{}, nil
	}

	comments := extract.Run(c.log, data, CommentStrategies())
	comments = DedupeComments(comments)
	if len(comments) > maxComments {
		comments = comments[:maxComments]
	}
	return comments, nil
}

// CommentStrategies returns the ordered fallback chain for comment
// extraction over a page snapshot.
func CommentStrategies() []extract.Strategy[models.CommentRecord] {
	return []extract.Strategy[models.CommentRecord]{
		{Name: "article-list", Run: listStrategy("article ul li")},
		{Name: "dialog-list", Run: listStrategy(`div[role="dialog"] ul li`)},
		{Name: "text-pairs", Run: textPairStrategy},
	}
}

// listStrategy extracts (anchor, span) pairs from list items under root
func listStrategy(root string) func(extract.PageData) ([]models.CommentRecord, error) {
	return func(page extract.PageData) ([]models.CommentRecord, error) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
		if err != nil {
			return nil, err
		}

		var comments []models.CommentRecord
		doc.Find(root).Each(func(_ int, li *goquery.Selection) {
			username := strings.TrimSpace(li.Find("a").First().Text())
			text := strings.TrimSpace(li.Find("span").First().Text())
			if username == "" || text == "" {
				return
			}
			if strings.Contains(strings.ToLower(text), "liked by") {
				return
			}
			comments = append(comments, models.CommentRecord{Username: username, Text: text})
		})
		return comments, nil
	}
}

// textPairStrategy is the loosest fallback: it pairs a short visible-text
// line that looks like a handle with the longer line that follows it.
func textPairStrategy(page extract.PageData) ([]models.CommentRecord, error) {
	lines := strings.Split(page.Text, "\n")

	var comments []models.CommentRecord
	for i := 0; i+1 < len(lines); i++ {
		handle := strings.TrimSpace(lines[i])
		text := strings.TrimSpace(lines[i+1])

		if !handleLineRe.MatchString(handle) {
			continue
		}
		if text == "" || len(text) <= len(handle) {
			continue
		}
		if strings.Contains(strings.ToLower(text), "liked by") {
			continue
		}
		comments = append(comments, models.CommentRecord{Username: handle, Text: text})
	}
	return comments, nil
}

// DedupeComments drops duplicate comments by lowercased (handle, text),
// preserving first-seen order. Running it twice yields the same result as
// once.
func DedupeComments(comments []models.CommentRecord) []models.CommentRecord {
	seen := make(map[[2]string]bool, len(comments))
	out := make([]models.CommentRecord, 0, len(comments))
	for _, c := range comments {
		key := [2]string{strings.ToLower(c.Username), strings.ToLower(c.Text)}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}
