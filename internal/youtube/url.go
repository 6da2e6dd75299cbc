package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	listParamRegex  = regexp.MustCompile(`[?&]list=([^&#\s]+)`)
	playlistIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{10,}$`)
)

var playlistHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
}

// IsValidPlaylistID reports whether id matches the YouTube playlist id grammar
func IsValidPlaylistID(id string) bool {
	return playlistIDRegex.MatchString(id)
}

// ExtractPlaylistID returns the playlist id from the list= parameter of rawURL
//
// Works for /playlist?list=, /watch?v=...&list= and youtu.be/...?list= links.
// Returns "" when the parameter is missing or malformed.
func ExtractPlaylistID(rawURL string) string {
	m := listParamRegex.FindStringSubmatch(strings.TrimSpace(rawURL))
	if m == nil {
		return ""
	}
	if !IsValidPlaylistID(m[1]) {
		return ""
	}
	return m[1]
}

// ValidatePlaylistURL checks that rawURL is a YouTube link carrying a well-formed playlist id
func ValidatePlaylistURL(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return fmt.Errorf("%w: url is empty", ErrInvalidURL)
	}

	withScheme := rawURL
	if !strings.Contains(withScheme, "://") {
		withScheme = "https://" + withScheme
	}
	u, err := url.Parse(withScheme)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if !playlistHosts[strings.ToLower(u.Hostname())] {
		return fmt.Errorf("%w: %q is not a YouTube host", ErrInvalidURL, u.Hostname())
	}
	if !strings.Contains(rawURL, "list=") {
		return fmt.Errorf("%w: no playlist parameter", ErrInvalidURL)
	}
	if ExtractPlaylistID(rawURL) == "" {
		return fmt.Errorf("%w: malformed playlist id", ErrInvalidURL)
	}
	return nil
}
