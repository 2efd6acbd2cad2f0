package vlcframe

import (
	"fmt"
	"strings"
)

// MediaType selects how the locator is resolved into a media object.
type MediaType int

const (
	MediaTypeInvalid   MediaType = iota // Zero value, rejected by Start
	MediaTypeFile                       // Local file path (libvlc_media_new_path)
	MediaTypeNetStream                  // URL/MRL (libvlc_media_new_location)
	mediaTypeCount
)

func (t MediaType) String() string {
	switch t {
	case MediaTypeFile:
		return "file"
	case MediaTypeNetStream:
		return "stream"
	default:
		return "invalid"
	}
}

// Valid reports whether t lies strictly between MediaTypeInvalid and the last known type.
func (t MediaType) Valid() bool {
	return t > MediaTypeInvalid && t < mediaTypeCount
}

// ParseMediaType parses the names accepted on command lines and in config files.
func ParseMediaType(s string) (MediaType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file", "path":
		return MediaTypeFile, nil
	case "stream", "netstream", "network", "url":
		return MediaTypeNetStream, nil
	default:
		return MediaTypeInvalid, fmt.Errorf("unknown media type %q", s)
	}
}
