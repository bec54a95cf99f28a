package threads

import (
	"net/url"
	"threadgems/internal/models"
	"time"
	"unicode"
	"unicode/utf8"
)

const avatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg"

// ToThread normalises a media object for display. The Graph API does not
// expose like or reply counts on this endpoint, so both stay 0.
func ToThread(media Media, fetchedAt time.Time) models.Thread {
	thread := models.Thread{
		ID:        media.ID,
		Author:    displayName(media.Username),
		Handle:    media.Username,
		Avatar:    AvatarURL(media.Username),
		Content:   media.Text,
		Type:      models.ThreadTypeImage,
		Timestamp: media.Timestamp,
		Permalink: media.Permalink,
		TopicTag:  media.TopicTag,
		FetchedAt: fetchedAt.UTC(),
	}

	if media.MediaType == MediaTypeText {
		thread.Type = models.ThreadTypeText
	}

	if media.MediaType == MediaTypeImage {
		thread.Image = media.MediaURL
	}

	return thread
}

func AvatarURL(username string) string {
	return avatarBaseURL + "?" + url.Values{"seed": {username}}.Encode()
}

func displayName(username string) string {
	if username == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(username)
	return string(unicode.ToUpper(r)) + username[size:]
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseTimestamp accepts the Graph API's offset format and RFC 3339.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
