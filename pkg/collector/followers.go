package collector

import (
	"regexp"
	"strings"
	"time"

	"igaudit/pkg/config"
	"igaudit/pkg/instagram"
	"igaudit/pkg/logger"
	"igaudit/pkg/session"
)

// maxScrollIterations bounds the follower modal scroll loop so a stalled
// or slow-rendering list cannot run the audit forever.
const maxScrollIterations = 90

var followerHrefRe = regexp.MustCompile(`^/([A-Za-z0-9._]+)/$`)

// FollowerSampler harvests a bounded, de-duplicated set of follower
// handles by driving the followers dialog's infinite scroll.
type FollowerSampler struct {
	session session.Session
	cfg     config.SessionConfig
	log     logger.Logger
}

// NewFollowerSampler creates a FollowerSampler bound to a session
func NewFollowerSampler(s session.Session, cfg config.SessionConfig, log logger.Logger) *FollowerSampler {
	if log == nil {
		log = logger.GetLogger()
	}
	return &FollowerSampler{session: s, cfg: cfg, log: log}
}

// CollectHandles navigates to the target's profile, opens the followers
// dialog and harvests up to sampleSize handles. Failing to locate the
// dialog is fatal, since no partial sampling is possible without it.
func (s *FollowerSampler) CollectHandles(target string, sampleSize int) ([]string, error) {
	page, err := s.session.Navigate(instagram.ProfileURL(target), s.cfg.NavigationTimeout)
	if err != nil {
		return nil, err
	}
	time.Sleep(s.cfg.SettleDelay)

	modal, err := page.OpenFollowerModal(target)
	if err != nil {
		return nil, err
	}

	handles := s.scrollAndHarvest(modal, target, sampleSize)

	s.log.InfoWithFields("follower handles collected", map[string]interface{}{
		"target":    target,
		"requested": sampleSize,
		"collected": len(handles),
	})

	return handles, nil
}

// scrollAndHarvest repeatedly harvests the rendered anchors and scrolls
// the dialog forward until the quota is reached or the iteration bound
// hits. Harvest or scroll failures on one iteration fall through to the
// next; the bound still terminates the loop.
func (s *FollowerSampler) scrollAndHarvest(modal session.FollowerModal, target string, quota int) []string {
	seen := make(map[string]bool)
	var handles []string

	for i := 0; i < maxScrollIterations; i++ {
		hrefs, err := modal.Harvest()
		if err != nil {
			s.log.DebugWithFields("modal harvest failed", map[string]interface{}{
				"iteration": i,
				"error":     err.Error(),
			})
		}

		for _, href := range hrefs {
			handle, ok := handleFromHref(href, target)
			if !ok || seen[handle] {
				continue
			}
			seen[handle] = true
			handles = append(handles, handle)
		}

		if len(handles) >= quota {
			break
		}

		if err := modal.ScrollForward(); err != nil {
			s.log.DebugWithFields("modal scroll failed", map[string]interface{}{
				"iteration": i,
				"error":     err.Error(),
			})
		}
		time.Sleep(s.cfg.SettleDelay)
	}

	if len(handles) > quota {
		handles = handles[:quota]
	}
	return handles
}

// handleFromHref extracts a profile handle from a modal anchor href,
// rejecting non-profile links and the audited target itself.
func handleFromHref(href, target string) (string, bool) {
	m := followerHrefRe.FindStringSubmatch(href)
	if m == nil {
		return "", false
	}
	handle := m[1]
	if strings.EqualFold(handle, target) {
		return "", false
	}
	return handle, true
}
