package domain

import (
	"fmt"
	"strings"
)

type MediaType string

const (
	MediaArticle      MediaType = "article"
	MediaVideo        MediaType = "video"
	MediaPodcast      MediaType = "podcast"
	MediaSocial       MediaType = "social"
	MediaBlog         MediaType = "blog"
	MediaPressRelease MediaType = "press_release"
	MediaOther        MediaType = "other"
)

// DefaultMediaType is assigned when nothing about a link says otherwise.
const DefaultMediaType = MediaArticle

var mediaTypes = []MediaType{
	MediaArticle,
	MediaVideo,
	MediaPodcast,
	MediaSocial,
	MediaBlog,
	MediaPressRelease,
	MediaOther,
}

// MediaTypes returns every supported media type in display order.
func MediaTypes() []MediaType {
	out := make([]MediaType, len(mediaTypes))
	copy(out, mediaTypes)
	return out
}

func (m MediaType) Valid() bool {
	for _, t := range mediaTypes {
		if t == m {
			return true
		}
	}
	return false
}

func (m MediaType) String() string {
	return string(m)
}

// ParseMediaType accepts a media type name in any case. An empty value yields the default.
func ParseMediaType(s string) (MediaType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultMediaType, nil
	}
	m := MediaType(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown media type %q, expected one of %v", s, mediaTypes)
	}
	return m, nil
}
