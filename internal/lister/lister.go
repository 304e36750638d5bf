// Package lister turns directories, file lists and drag-and-drop payloads
// into the ordered audio paths a track list is built from.
package lister

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extAIF  = ".aif"
	extAIFF = ".aiff"
)

const fileScheme = "file://"

// IsAudioFile reports whether path has a supported audio extension.
// The match is case-insensitive.
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extAIF, extAIFF:
		return true
	}
	return false
}

// Dir lists the audio files directly inside dir, sorted by name.
// Subdirectories and hidden files are skipped.
func Dir(dir string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", abs, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !IsAudioFile(name) {
			continue
		}
		paths = append(paths, filepath.Join(abs, name))
	}
	slices.Sort(paths)
	return paths, nil
}

// Files keeps the audio files of paths, in the given order. URIs using the
// file scheme are converted to plain paths first.
func Files(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = toPath(p)
		if p == "" || !IsAudioFile(p) {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		out = append(out, p)
	}
	return out
}

// ParseDrop interprets a dropped or pasted payload: one path or file URI
// per line. A single entry ending with a separator, or naming an existing
// directory, is expanded with Dir. Anything else is treated as a file list.
func ParseDrop(text string) ([]string, error) {
	var entries []string
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line != "" {
			entries = append(entries, line)
		}
	}

	switch len(entries) {
	case 0:
		return nil, nil
	case 1:
		if dir, ok := asDir(entries[0]); ok {
			return Dir(dir)
		}
	}
	return Files(entries), nil
}

func asDir(entry string) (string, bool) {
	p := toPath(entry)
	if p == "" {
		return "", false
	}
	if strings.HasSuffix(p, string(filepath.Separator)) || strings.HasSuffix(p, "/") {
		return p, true
	}
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return p, true
}

// toPath strips the file scheme and decodes percent escapes.
func toPath(entry string) string {
	if !strings.HasPrefix(entry, fileScheme) {
		return expandHome(entry)
	}
	u, err := url.Parse(entry)
	if err != nil {
		return strings.TrimPrefix(entry, fileScheme)
	}
	p := u.Path
	if strings.HasSuffix(entry, "/") && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
