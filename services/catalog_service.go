package services

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeSource maps a pasted video URL onto a known hosting source and
// its video id. Unrecognized hosts fall back to the hostname with the full
// URL as the id so the link still round-trips.
func NormalizeSource(sourceURL string) (source, sourceID string) {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Hostname() == "" {
		return "unknown", sourceURL
	}

	host := u.Hostname()
	lastSegment := func() string {
		parts := strings.Split(strings.TrimSuffix(u.Path, "/"), "/")
		return parts[len(parts)-1]
	}

	switch {
	case strings.Contains(host, "videy"):
		return "videy", lastSegment()
	case strings.Contains(host, "dood"), strings.Contains(host, "dsvplay"):
		return "doodstream", lastSegment()
	case strings.Contains(host, "videq"):
		return "videq", lastSegment()
	case strings.Contains(host, "lixstream"):
		return "lixstream", lastSegment()
	}
	return host, sourceURL
}

// CDNURL resolves a video's playable URL for the streaming redirect.
func CDNURL(source, sourceID string) string {
	switch source {
	case "videy":
		return fmt.Sprintf("https://cdn.videy.co/%s.mp4", sourceID)
	case "doodstream":
		return fmt.Sprintf("https://dsvplay.com/e/%s", sourceID)
	case "videq":
		return fmt.Sprintf("https://videq.pw/e/%s", sourceID)
	case "lixstream":
		return fmt.Sprintf("https://lixstream.com/e/%s", sourceID)
	}
	return sourceID
}
