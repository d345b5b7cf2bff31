package youtube

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"http://youtube.com/watch?v=dQw4w9WgXcQ",
		"youtube.com/watch?v=dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ",
		"https://youtu.be/abc123",
		"https://www.youtube.com/shorts/xYz_9-8",
	}
	for _, url := range valid {
		assert.True(t, ValidateURL(url), url)
	}

	invalid := []string{
		"",
		"https://vimeo.com/123",
		"https://www.youtube.com/",
		"https://www.youtube.com/watch",
		"https://www.youtube.com/watch?t=30",
		"not a url at all",
		"https://youtube.example.com/watch?v=abc",
	}
	for _, url := range invalid {
		assert.False(t, ValidateURL(url), url)
	}
}

func TestExtractVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=XYZ123&t=30":      "XYZ123",
		"https://www.youtube.com/watch?list=PL1&v=XYZ123":  "XYZ123",
		"https://youtu.be/abc123":                          "abc123",
		"https://youtu.be/abc123?t=10":                     "abc123",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":        "dQw4w9WgXcQ",
		"https://www.youtube.com/v/dQw4w9WgXcQ&feature=yt": "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/xYz_9-8":           "xYz_9-8",
		"https://vimeo.com/123":                            "",
		"": "",
	}

	for url, want := range cases {
		assert.Equal(t, want, ExtractVideoID(url), url)
	}
}
