// Package tags reads display metadata from audio files and writes the
// rating and labels chosen while sorting back into them.
package tags

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Supported file extensions.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtAIF  = ".aif"
	ExtAIFF = ".aiff"
)

// Keys under which marks are stored in file tags.
const (
	labelsKey = "SIFT_TAGS"
	ratingKey = "RATING"
	// labelSep separates labels inside a single tag value.
	labelSep = "; "
)

// Info is the display metadata of a file.
type Info struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Genre  string
	Year   int
}

// Marks is what gets written into a file when sorting is applied.
type Marks struct {
	Rating int
	Labels []string
}

// Empty reports whether there is nothing to write.
func (m Marks) Empty() bool {
	return m.Rating == 0 && len(m.Labels) == 0
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func isAIFF(path string) bool {
	e := ext(path)
	return e == ExtAIF || e == ExtAIFF
}

func joinLabels(labels []string) string {
	return strings.Join(labels, labelSep)
}

func splitLabels(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// taglibTags wraps taglib's key/values map.
type taglibTags map[string][]string

func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (t taglibTags) getInt(key string) int {
	n, err := strconv.Atoi(t.get(key))
	if err != nil {
		return 0
	}
	return n
}
