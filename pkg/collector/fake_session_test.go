package collector

import (
	"time"

	"igaudit/pkg/config"
	"igaudit/pkg/errors"
	"igaudit/pkg/extract"
	"igaudit/pkg/session"
)

// fakeSession implements session.Session for collector tests
type fakeSession struct {
	// jsonByURL maps fetch URLs to response bodies
	jsonByURL map[string]string
	// fetchErr fails every FetchJSON call when set
	fetchErr error
	// navErr fails every Navigate call when set
	navErr error
	// page is returned from successful Navigate calls
	page *fakePage

	fetchCalls []string
	navCalls   []string
}

func (f *fakeSession) Navigate(url string, timeout time.Duration) (session.Page, error) {
	f.navCalls = append(f.navCalls, url)
	if f.navErr != nil {
		return nil, f.navErr
	}
	if f.page == nil {
		f.page = &fakePage{url: url}
	}
	return f.page, nil
}

func (f *fakeSession) FetchJSON(url string, headers map[string]string) ([]byte, error) {
	f.fetchCalls = append(f.fetchCalls, url)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if body, ok := f.jsonByURL[url]; ok {
		return []byte(body), nil
	}
	return nil, errors.NewHTTP(404, "no fixture for %s", url)
}

func (f *fakeSession) Close() error { return nil }

// fakePage implements session.Page
type fakePage struct {
	url      string
	html     string
	text     string
	modal    *fakeModal
	modalErr error
}

func (p *fakePage) URL() string { return p.url }

func (p *fakePage) Snapshot() (extract.PageData, error) {
	return extract.PageData{URL: p.url, HTML: p.html, Text: p.text}, nil
}

func (p *fakePage) OpenFollowerModal(target string) (session.FollowerModal, error) {
	if p.modalErr != nil {
		return nil, p.modalErr
	}
	return p.modal, nil
}

// fakeModal implements session.FollowerModal. Each Harvest call returns the
// next batch; once batches are exhausted the last one repeats, simulating a
// list that has stopped yielding new anchors.
type fakeModal struct {
	batches      [][]string
	harvestCalls int
	scrollCalls  int
}

func (m *fakeModal) Harvest() ([]string, error) {
	i := m.harvestCalls
	m.harvestCalls++
	if len(m.batches) == 0 {
		return nil, nil
	}
	if i >= len(m.batches) {
		i = len(m.batches) - 1
	}
	return m.batches[i], nil
}

func (m *fakeModal) ScrollForward() error {
	m.scrollCalls++
	return nil
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		SessionDir:        "/tmp/fake-session",
		Headless:          true,
		NavigationTimeout: time.Second,
		SettleDelay:       0,
	}
}
