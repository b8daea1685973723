package engine

import (
	"net/url"
)

// ExtractVideoID pulls the video id from a YouTube watch URL.
// The id must be present as the `v` query parameter; references
// without one fail with an INVALID_REFERENCE error.
func ExtractVideoID(videoURL string) (string, error) {
	u, err := url.Parse(videoURL)
	if err != nil {
		return "", Errorf(ErrInvalidReference, "invalid YouTube URL format")
	}
	id := u.Query().Get("v")
	if id == "" {
		return "", Errorf(ErrInvalidReference, "invalid YouTube URL format")
	}
	return id, nil
}

// WatchURL builds the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ThumbnailURL returns the medium-quality thumbnail for a video id.
func ThumbnailURL(videoID string) string {
	if videoID == "" || videoID == "unknown" {
		return ""
	}
	return "https://img.youtube.com/vi/" + videoID + "/mqdefault.jpg"
}
