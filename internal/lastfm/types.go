package lastfm

import "strings"

// Tag represents a Last.fm tag with popularity count.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	URL   string `json:"url"`
}

// artistTagsResponse is the JSON response for artist.getTopTags.
type artistTagsResponse struct {
	TopTags struct {
		Tag  []Tag `json:"tag"`
		Attr struct {
			Artist string `json:"artist"`
		} `json:"@attr"`
	} `json:"toptags"`
}

// apiError represents a Last.fm API error response.
type apiError struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// TagNames returns up to n lowercased, de-duplicated tag names in order.
func TagNames(tags []Tag, n int) []string {
	names := make([]string, 0, min(n, len(tags)))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if len(names) == n {
			break
		}
		name := strings.ToLower(strings.TrimSpace(t.Name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
