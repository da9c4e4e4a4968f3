package session

import (
	"time"

	"igaudit/pkg/extract"
)

// Session is the surface the collectors drive. The rod-backed Context is
// the production implementation; tests substitute fakes.
type Session interface {
	// Navigate loads url and returns the resulting page, failing with
	// not_logged_in when the location is the login wall and timeout when
	// the page never settles.
	Navigate(url string, timeout time.Duration) (Page, error)

	// FetchJSON performs a credentialed GET inside the browsing context
	FetchJSON(url string, headers map[string]string) ([]byte, error)

	// Close releases all browser resources
	Close() error
}

// Page is a navigated browser page
type Page interface {
	URL() string

	// Snapshot captures the page as the uniform strategy input shape
	Snapshot() (extract.PageData, error)

	// OpenFollowerModal activates the followers affordance and returns the
	// open dialog; failure is ui_not_found.
	OpenFollowerModal(target string) (FollowerModal, error)
}

// FollowerModal is an open, scrollable followers dialog
type FollowerModal interface {
	// Harvest returns the hrefs of all profile-link anchors currently
	// rendered inside the dialog.
	Harvest() ([]string, error)

	// ScrollForward advances the dialog's scroll region by twice its
	// visible height.
	ScrollForward() error
}

var _ Session = (*Context)(nil)
