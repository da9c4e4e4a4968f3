// Package analysis provides the text-based analyses that need no
// browser: hashtag co-occurrence, keyword topic classification, and
// advice rotation.
package analysis

import (
	"regexp"
	"sort"
	"strings"

	"igaudit/pkg/models"
)

var hashtagRe = regexp.MustCompile(`#([A-Za-z0-9_]+)`)

type edgeKey struct {
	a, b string
}

// HashtagGraph builds an undirected co-occurrence graph over the
// hashtags found in the captions. Tags are lowercased and de-duplicated
// within a caption; every pair of distinct tags in the same caption
// shares an edge whose weight counts co-occurrences across captions.
// The top hashtags are ranked by degree, ties broken alphabetically.
func HashtagGraph(captions []string) *models.HashtagGraphStats {
	nodes := make(map[string]struct{})
	edges := make(map[edgeKey]int)
	degree := make(map[string]int)

	for _, caption := range captions {
		tags := extractTags(caption)
		for _, t := range tags {
			nodes[t] = struct{}{}
		}
		for i := 0; i < len(tags); i++ {
			for j := i + 1; j < len(tags); j++ {
				key := orderedEdge(tags[i], tags[j])
				if edges[key] == 0 {
					degree[key.a]++
					degree[key.b]++
				}
				edges[key]++
			}
		}
	}

	ranked := make([]models.HashtagDegree, 0, len(nodes))
	for tag := range nodes {
		ranked = append(ranked, models.HashtagDegree{Hashtag: tag, Degree: degree[tag]})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Degree != ranked[j].Degree {
			return ranked[i].Degree > ranked[j].Degree
		}
		return ranked[i].Hashtag < ranked[j].Hashtag
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}

	return &models.HashtagGraphStats{
		Nodes:       len(nodes),
		Edges:       len(edges),
		TopHashtags: ranked,
	}
}

// extractTags returns the lowercased hashtags of a caption in first-seen
// order with duplicates removed.
func extractTags(caption string) []string {
	matches := hashtagRe.FindAllStringSubmatch(caption, -1)
	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		t := strings.ToLower(m[1])
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}

func orderedEdge(a, b string) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}
