// Package collector implements the extraction side of the audit engine:
// profile counts, per-post comment samples, and follower handle sampling.
// All collectors run over a session.Session and degrade per-item failures
// into partial records rather than aborting the run.
package collector

import (
	"encoding/json"
	"strings"
	"time"

	"igaudit/pkg/errors"
	"igaudit/pkg/instagram"
	"igaudit/pkg/logger"
	"igaudit/pkg/models"
	"igaudit/pkg/session"
)

// ProfileCollector fetches authoritative counts and recent-post metadata
// through the structured profile endpoint.
type ProfileCollector struct {
	session session.Session
	log     logger.Logger
}

// NewProfileCollector creates a ProfileCollector bound to a session
func NewProfileCollector(s session.Session, log logger.Logger) *ProfileCollector {
	if log == nil {
		log = logger.GetLogger()
	}
	return &ProfileCollector{session: s, log: log}
}

// FetchUser fetches the raw endpoint user record for a username
func (c *ProfileCollector) FetchUser(username string) (*instagram.User, error) {
	url := instagram.ProfileInfoURL(username)

	body, err := c.session.FetchJSON(url, instagram.ProfileInfoHeaders(username))
	if err != nil {
		return nil, err
	}

	var resp instagram.WebProfileResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		preview := string(body)
		if len(preview) > 250 {
			preview = preview[:250]
		}
		return nil, errors.New(errors.ErrorTypeUpstreamHTTP, "decode web_profile_info for %s: %v (body: %s)", username, err, preview)
	}
	if resp.RequiresToLogin {
		return nil, errors.New(errors.ErrorTypeNotLoggedIn, "profile endpoint requires authentication for %s", username)
	}

	return &resp.Data.User, nil
}

// FetchCounts fetches follower, following and post counts for a username
func (c *ProfileCollector) FetchCounts(username string) (*models.BasicProfile, error) {
	user, err := c.FetchUser(username)
	if err != nil {
		return nil, err
	}

	return &models.BasicProfile{
		Username:   username,
		ProfileURL: instagram.ProfileURL(username),
		Followers:  user.EdgeFollowedBy.Count,
		Following:  user.EdgeFollow.Count,
		PostsCount: user.EdgeOwnerToTimelineMedia.Count,
		CapturedAt: time.Now().UTC(),
	}, nil
}

// FetchProfile fetches counts plus one PostRecord per recent media edge.
// Engagement counts, timestamp and kind come from the endpoint itself, so
// no per-post navigation is needed for those fields; comments are left
// empty for the comment collector.
func (c *ProfileCollector) FetchProfile(username string, maxPosts int) (*models.ProfileSnapshot, error) {
	user, err := c.FetchUser(username)
	if err != nil {
		return nil, err
	}

	snapshot := &models.ProfileSnapshot{
		Username:   username,
		ProfileURL: instagram.ProfileURL(username),
		Followers:  user.EdgeFollowedBy.Count,
		Following:  user.EdgeFollow.Count,
		PostsCount: user.EdgeOwnerToTimelineMedia.Count,
		CapturedAt: time.Now().UTC(),
	}

	seen := make(map[string]bool)
	for _, edge := range user.EdgeOwnerToTimelineMedia.Edges {
		if len(snapshot.Posts) >= maxPosts {
			break
		}
		node := edge.Node
		if node.Shortcode == "" || seen[node.Shortcode] {
			continue
		}
		seen[node.Shortcode] = true

		post := models.PostRecord{
			Shortcode:    node.Shortcode,
			URL:          instagram.PostURL(node.Shortcode),
			Kind:         models.PostKindPost,
			Likes:        node.EdgeLikedBy.Count,
			CommentCount: node.EdgeMediaToComment.Count,
			Comments:     []models.CommentRecord{},
		}
		if node.IsVideo {
			post.Kind = models.PostKindReel
		}
		if node.TakenAtTimestamp > 0 {
			ts := time.Unix(node.TakenAtTimestamp, 0).UTC()
			post.PublishedAt = &ts
		}
		snapshot.Posts = append(snapshot.Posts, post)
	}

	c.log.DebugWithFields("fetched profile", map[string]interface{}{
		"username":  username,
		"followers": snapshot.Followers,
		"posts":     len(snapshot.Posts),
	})

	return snapshot, nil
}

// ResolveFollower resolves one sampled handle into a FollowerRecord. Any
// failure degrades to an all-zero record so sample accounting stays
// consistent; resolution never aborts the run.
func (c *ProfileCollector) ResolveFollower(handle string) models.FollowerRecord {
	record := models.FollowerRecord{
		Username:   handle,
		ProfileURL: instagram.ProfileURL(handle),
	}

	user, err := c.FetchUser(handle)
	if err != nil {
		c.log.DebugWithFields("follower resolution degraded to zeroed record", map[string]interface{}{
			"handle": handle,
			"error":  err.Error(),
		})
		return record
	}

	record.Followers = user.EdgeFollowedBy.Count
	record.Following = user.EdgeFollow.Count
	record.Posts = user.EdgeOwnerToTimelineMedia.Count
	record.IsPrivate = user.IsPrivate
	record.HasBio = strings.TrimSpace(user.Biography) != ""
	return record
}
