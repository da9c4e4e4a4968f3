// Package session provides the authenticated browsing context every audit
// run operates in. The context is backed by a headless Chrome profile
// directory that the interactive login bootstrap persisted out-of-band;
// this package only reads it.
package session

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"igaudit/pkg/config"
	"igaudit/pkg/errors"
	"igaudit/pkg/extract"
	"igaudit/pkg/instagram"
	"igaudit/pkg/logger"
)

// Context is one authenticated, reusable browsing context. It is opened
// once per audit run and closed on the run's only two exit paths: normal
// completion or fatal error. Concurrent use is not supported.
type Context struct {
	browser *rod.Browser
	page    *rod.Page
	cfg     config.SessionConfig
	log     logger.Logger
}

// Open launches a headless browser over the persisted session directory
func Open(cfg config.SessionConfig, log logger.Logger) (*Context, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		UserDataDir(cfg.SessionDir)
	if cfg.Proxy != "" {
		l = l.Proxy(cfg.Proxy)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, errors.New(errors.ErrorTypeBrowser, "launch browser: %v", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, errors.New(errors.ErrorTypeBrowser, "connect browser: %v", err)
	}

	page, err := stealth.Page(browser)
	if err != nil {
		browser.Close()
		return nil, errors.New(errors.ErrorTypeBrowser, "create stealth page: %v", err)
	}

	log.DebugWithFields("session opened", map[string]interface{}{
		"session_dir": cfg.SessionDir,
		"headless":    cfg.Headless,
	})

	return &Context{browser: browser, page: page, cfg: cfg, log: log}, nil
}

// Navigate loads url and suspends until the DOM is ready or timeout
// elapses. After navigation the final location is checked: landing on the
// login wall fails the whole run with not_logged_in.
func (c *Context) Navigate(url string, timeout time.Duration) (Page, error) {
	page := c.page.Timeout(timeout)

	if err := page.Navigate(url); err != nil {
		return nil, navError(url, err)
	}
	if err := page.WaitDOMStable(300*time.Millisecond, 0); err != nil {
		return nil, navError(url, err)
	}

	info, err := c.page.Info()
	if err != nil {
		return nil, errors.New(errors.ErrorTypeBrowser, "page info after navigating %s: %v", url, err)
	}
	if instagram.IsLoginURL(info.URL) {
		return nil, errors.New(errors.ErrorTypeNotLoggedIn,
			"landed on login page; run the login bootstrap to refresh the session")
	}

	return &rodPage{page: c.page, url: info.URL, settle: c.cfg.SettleDelay}, nil
}

func navError(url string, err error) error {
	if goerrors.Is(err, context.DeadlineExceeded) {
		return errors.New(errors.ErrorTypeTimeout, "navigation to %s timed out", url)
	}
	return errors.New(errors.ErrorTypeTimeout, "navigation to %s did not settle: %v", url, err)
}

// FetchJSON performs a credentialed fetch inside the page, so the request
// carries the browser's cookies and TLS fingerprint rather than a separate
// Go client's. A non-200 status fails with upstream_http carrying a
// truncated body preview.
func (c *Context) FetchJSON(url string, headers map[string]string) ([]byte, error) {
	page := c.page.Timeout(c.cfg.NavigationTimeout)

	result, err := page.Eval(`async (url, headers) => {
		const resp = await fetch(url, {
			method: 'GET',
			credentials: 'include',
			headers: headers,
		});
		const body = await resp.text();
		return JSON.stringify({status: resp.status, body: body});
	}`, url, headers)
	if err != nil {
		return nil, errors.New(errors.ErrorTypeTimeout, "fetch %s: %v", url, err)
	}

	var out struct {
		Status int    `json:"status"`
		Body   string `json:"body"`
	}
	if err := json.Unmarshal([]byte(result.Value.Str()), &out); err != nil {
		return nil, errors.New(errors.ErrorTypeUnknown, "decode fetch result for %s: %v", url, err)
	}

	if out.Status != 200 {
		preview := out.Body
		if len(preview) > 250 {
			preview = preview[:250]
		}
		return nil, errors.NewHTTP(out.Status, "fetch %s failed: %s", url, preview)
	}

	return []byte(out.Body), nil
}

// Close releases the page and browser
func (c *Context) Close() error {
	if c.page != nil {
		if err := c.page.Close(); err != nil {
			return fmt.Errorf("close page: %w", err)
		}
		c.page = nil
	}
	if c.browser != nil {
		if err := c.browser.Close(); err != nil {
			return fmt.Errorf("close browser: %w", err)
		}
		c.browser = nil
	}
	return nil
}

// Page wraps the browser tab after a successful navigation
type rodPage struct {
	page   *rod.Page
	url    string
	settle time.Duration
}

// URL returns the final location after navigation
func (p *rodPage) URL() string {
	return p.url
}

// Snapshot captures the rendered document and its visible text as the
// uniform input shape the extraction strategies consume.
func (p *rodPage) Snapshot() (extract.PageData, error) {
	html, err := p.page.HTML()
	if err != nil {
		return extract.PageData{}, fmt.Errorf("capture html: %w", err)
	}

	text := ""
	if result, err := p.page.Timeout(5 * time.Second).Eval(`() => document.body.innerText`); err == nil {
		text = result.Value.Str()
	}

	return extract.PageData{URL: p.url, HTML: html, Text: text}, nil
}

// OpenFollowerModal activates the followers affordance on a profile page
// and returns a handle on the scrollable dialog. The affordance is tried
// through several locators since the exact markup drifts; failure at any
// required step is ui_not_found, which is fatal for follower sampling.
func (p *rodPage) OpenFollowerModal(target string) (FollowerModal, error) {
	link := p.findFollowersLink(target)
	if link == nil {
		return nil, errors.New(errors.ErrorTypeUINotFound, "could not find followers link for %s (UI changed)", target)
	}

	p.dismissOverlay()

	if err := link.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return nil, errors.New(errors.ErrorTypeUINotFound, "could not activate followers link: %v", err)
	}
	time.Sleep(p.settle)

	dialog, err := p.page.Timeout(5 * time.Second).Element(`div[role="dialog"]`)
	if err != nil {
		return nil, errors.New(errors.ErrorTypeUINotFound, "followers dialog did not open")
	}

	scrollBox := firstElement(dialog,
		"div._aano",
		`div[style*="overflow-y"]`,
		`div[style*="overflow"]`,
	)
	if scrollBox == nil {
		return nil, errors.New(errors.ErrorTypeUINotFound, "could not find followers scroll container (UI changed)")
	}

	return &rodModal{dialog: dialog, scrollBox: scrollBox}, nil
}

// linkLocator is one step of the followers-affordance locator chain
type linkLocator struct {
	name string
	find func(p *rod.Page, target string) (*rod.Element, error)
}

// followerLinkLocators is the ordered locator chain for the followers
// affordance, from most to least exact. The markup drifts; each variant
// seen in the wild gets its own step.
var followerLinkLocators = []linkLocator{
	{"exact-href", func(p *rod.Page, target string) (*rod.Element, error) {
		return p.Element(fmt.Sprintf(`a[href=%q]`, instagram.FollowersPath(target)))
	}},
	{"link-text", func(p *rod.Page, _ string) (*rod.Element, error) {
		return p.ElementR("a", "/followers/i")
	}},
	{"href-suffix", func(p *rod.Page, _ string) (*rod.Element, error) {
		return p.Element(`a[href$="/followers/"]`)
	}},
	// Some variants render the count in a span with no usable text on
	// the anchor itself; find the count text and climb to its link.
	{"count-ancestor", func(p *rod.Page, _ string) (*rod.Element, error) {
		count, err := p.ElementR("span", "/followers/i")
		if err != nil {
			return nil, err
		}
		return count.ElementByJS(rod.Eval(`() => this.closest("a")`))
	}},
}

func (p *rodPage) findFollowersLink(target string) *rod.Element {
	short := p.page.Timeout(3 * time.Second)
	for _, loc := range followerLinkLocators {
		if el, err := loc.find(short, target); err == nil && el != nil {
			return el
		}
	}
	return nil
}

// dismissOverlay closes the notification prompt that sometimes blocks the
// profile header. Absence is the normal case.
func (p *rodPage) dismissOverlay() {
	if btn, err := p.page.Timeout(time.Second).ElementR("button", "/^not now$/i"); err == nil {
		_ = btn.Click(proto.InputMouseButtonLeft, 1)
		time.Sleep(300 * time.Millisecond)
	}
}

// FollowerModal is a handle on the open followers dialog
type rodModal struct {
	dialog    *rod.Element
	scrollBox *rod.Element
}

// Harvest returns the hrefs of all profile-link anchors currently rendered
// inside the dialog.
func (m *rodModal) Harvest() ([]string, error) {
	anchors, err := m.dialog.Elements(`a[href^="/"]`)
	if err != nil {
		return nil, fmt.Errorf("query modal anchors: %w", err)
	}

	hrefs := make([]string, 0, len(anchors))
	for _, a := range anchors {
		href, err := a.Attribute("href")
		if err != nil || href == nil {
			continue
		}
		hrefs = append(hrefs, *href)
	}
	return hrefs, nil
}

// ScrollForward advances the dialog's internal scroll region by twice its
// visible height.
func (m *rodModal) ScrollForward() error {
	_, err := m.scrollBox.Eval(`() => { this.scrollTop = this.scrollTop + this.clientHeight * 2; }`)
	if err != nil {
		return fmt.Errorf("scroll followers modal: %w", err)
	}
	return nil
}

func firstElement(scope *rod.Element, selectors ...string) *rod.Element {
	for _, sel := range selectors {
		if el, err := scope.Timeout(2 * time.Second).Element(sel); err == nil {
			return el
		}
	}
	return nil
}
