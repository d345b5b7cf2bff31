package youtube

import "regexp"

// Known URL shapes: watch, embed, /v/, youtu.be short links, shorts.
// The ID capture stops at the first &, ?, / or whitespace.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/watch\?(?:[^#\s]*&)?v=([^&?/\s]+)`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/embed/([^&?/\s]+)`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/v/([^&?/\s]+)`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.|m\.)?youtube\.com/shorts/([^&?/\s]+)`),
	regexp.MustCompile(`^(?:https?://)?youtu\.be/([^&?/\s]+)`),
}

// ExtractVideoID returns the video id substring, or "" if the URL does not
// match any known shape.
func ExtractVideoID(url string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

// ValidateURL reports whether url is a recognizable YouTube video link.
func ValidateURL(url string) bool {
	return ExtractVideoID(url) != ""
}
