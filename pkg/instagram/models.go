package instagram

// WebProfileResponse represents the top-level response from the
// web_profile_info endpoint
type WebProfileResponse struct {
	RequiresToLogin bool   `json:"requires_to_login"`
	Data            Data   `json:"data"`
	Status          string `json:"status"`
}

// Data wraps the user information in the response
type Data struct {
	User User `json:"user"`
}

// User represents a profile as the endpoint reports it
type User struct {
	ID                       string                   `json:"id"`
	Biography                string                   `json:"biography"`
	IsPrivate                bool                     `json:"is_private"`
	EdgeFollowedBy           EdgeCount                `json:"edge_followed_by"`
	EdgeFollow               EdgeCount                `json:"edge_follow"`
	EdgeOwnerToTimelineMedia EdgeOwnerToTimelineMedia `json:"edge_owner_to_timeline_media"`
}

// EdgeCount carries a bare count edge
type EdgeCount struct {
	Count int `json:"count"`
}

// EdgeOwnerToTimelineMedia contains the user's recent media
type EdgeOwnerToTimelineMedia struct {
	Count    int      `json:"count"`
	PageInfo PageInfo `json:"page_info"`
	Edges    []Edge   `json:"edges"`
}

// PageInfo contains pagination information
type PageInfo struct {
	HasNextPage bool   `json:"has_next_page"`
	EndCursor   string `json:"end_cursor"`
}

// Edge wraps a single media node
type Edge struct {
	Node Node `json:"node"`
}

// Node represents a single media item with its engagement counts
type Node struct {
	ID                 string    `json:"id"`
	Shortcode          string    `json:"shortcode"`
	DisplayURL         string    `json:"display_url"`
	IsVideo            bool      `json:"is_video"`
	TakenAtTimestamp   int64     `json:"taken_at_timestamp"`
	EdgeLikedBy        EdgeCount `json:"edge_liked_by"`
	EdgeMediaToComment EdgeCount `json:"edge_media_to_comment"`
}
