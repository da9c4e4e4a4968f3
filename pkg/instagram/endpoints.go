package instagram

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"igaudit/pkg/errors"
)

const (
	// BaseURL is the base URL for Instagram
	BaseURL = "https://www.instagram.com"

	// ProfileEndpoint is the endpoint pattern for profile info
	ProfileEndpoint = "/api/v1/users/web_profile_info/"

	// AppID identifies the web client to the profile endpoint
	AppID = "936619743392459"
)

// reservedSegments are path segments that look like usernames when a post,
// reel or section URL is pasted instead of a profile URL.
var reservedSegments = map[string]bool{
	"p":        true,
	"post":     true,
	"reel":     true,
	"reels":    true,
	"stories":  true,
	"explore":  true,
	"accounts": true,
}

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9._]+$`)

// ParseProfileRef derives a username from a raw profile URL or an @handle
// string. It fails with an invalid_profile error when the reference is
// empty, malformed, or points at a reserved path segment.
func ParseProfileRef(ref string) (string, error) {
	s := strings.TrimSpace(ref)
	if s == "" {
		return "", errors.New(errors.ErrorTypeInvalidProfile, "no username found in profile reference")
	}

	if strings.Contains(s, "/") || strings.Contains(s, "instagram.com") {
		if !strings.Contains(s, "://") {
			s = "https://" + s
		}
		u, err := url.Parse(s)
		if err != nil {
			return "", errors.New(errors.ErrorTypeInvalidProfile, "malformed profile URL: %v", err)
		}
		parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
		if len(parts) == 0 {
			return "", errors.New(errors.ErrorTypeInvalidProfile, "no username found in URL")
		}
		s = parts[0]
	}

	s = strings.TrimPrefix(s, "@")
	s = strings.TrimSpace(s)

	if s == "" {
		return "", errors.New(errors.ErrorTypeInvalidProfile, "no username found in profile reference")
	}
	if reservedSegments[strings.ToLower(s)] {
		return "", errors.New(errors.ErrorTypeInvalidProfile, "%q doesn't look like a profile reference", ref)
	}
	if !usernameRe.MatchString(s) {
		return "", errors.New(errors.ErrorTypeInvalidProfile, "username %q contains invalid characters", s)
	}

	return s, nil
}

// ProfileInfoURL constructs the URL for fetching a user's profile info
func ProfileInfoURL(username string) string {
	params := url.Values{}
	params.Set("username", username)

	return fmt.Sprintf("%s%s?%s", BaseURL, ProfileEndpoint, params.Encode())
}

// ProfileInfoHeaders returns the headers the profile endpoint expects from
// a logged-in web client.
func ProfileInfoHeaders(username string) map[string]string {
	return map[string]string{
		"Accept":        "application/json",
		"Referer":       fmt.Sprintf("%s/%s/", BaseURL, username),
		"X-IG-App-ID":   AppID,
		"Cache-Control": "no-cache",
		"Pragma":        "no-cache",
	}
}

// PostURL constructs the canonical URL for a post shortcode
func PostURL(shortcode string) string {
	if shortcode == "" {
		return ""
	}
	return fmt.Sprintf("%s/p/%s/", BaseURL, shortcode)
}

// ProfileURL constructs the public profile URL for a username
func ProfileURL(username string) string {
	if username == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/", BaseURL, username)
}

// FollowersPath returns the relative followers path for a username
func FollowersPath(username string) string {
	return fmt.Sprintf("/%s/followers/", username)
}

// IsLoginURL reports whether a page location is the login or authentication
// wall rather than the requested page.
func IsLoginURL(pageURL string) bool {
	return strings.Contains(pageURL, "accounts/login") || strings.Contains(pageURL, "/login")
}
