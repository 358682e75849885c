package editor

import (
	"net/url"
	"strings"
)

// ExtractVideoID pulls the 11-character YouTube id out of user input.
// Accepted forms: a bare id, youtu.be short links, and youtube.com
// watch?v= / /embed/ / /v/ URLs. Anything else yields ok=false.
func ExtractVideoID(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}
	if isVideoID(input) {
		return input, true
	}

	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	host = strings.TrimPrefix(host, "m.")

	var candidate string
	switch host {
	case "youtu.be":
		candidate = strings.Trim(u.Path, "/")
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case u.Path == "/watch":
			candidate = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			candidate = strings.Trim(strings.TrimPrefix(u.Path, "/embed/"), "/")
		case strings.HasPrefix(u.Path, "/v/"):
			candidate = strings.Trim(strings.TrimPrefix(u.Path, "/v/"), "/")
		}
	}

	if isVideoID(candidate) {
		return candidate, true
	}
	return "", false
}

func isVideoID(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
