package tags

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// Read returns the display metadata of a file. The title falls back to the
// file name when the file has no usable tags.
func Read(path string) (*Info, error) {
	info, err := readWithTag(path)
	if err != nil {
		// dhowden/tag has no AIFF support and fails on some FLAC files
		info, err = readWithTaglib(path)
		if err != nil {
			return nil, err
		}
	}
	if info.Title == "" {
		info.Title = filepath.Base(path)
	}
	return info, nil
}

func readWithTag(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}
	return &Info{
		Path:   path,
		Title:  m.Title(),
		Artist: m.Artist(),
		Album:  m.Album(),
		Genre:  m.Genre(),
		Year:   m.Year(),
	}, nil
}

func readWithTaglib(path string) (*Info, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	t := taglibTags(raw)

	year := 0
	if date := t.get(taglib.Date); len(date) >= 4 {
		year, _ = strconv.Atoi(date[:4])
	}
	return &Info{
		Path:   path,
		Title:  t.get(taglib.Title),
		Artist: t.get(taglib.Artist),
		Album:  t.get(taglib.Album),
		Genre:  t.get(taglib.Genre),
		Year:   year,
	}, nil
}
