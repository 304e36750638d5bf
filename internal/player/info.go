package player

import (
	"os"
	"path/filepath"

	"github.com/llehouerou/sift/internal/tags"
)

// Info is what the status line and notifications show about a file.
type Info struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Genre  string
	Size   int64
}

// ReadInfo reads tag metadata and the file size. Missing tags are not an
// error: the title falls back to the file name.
func ReadInfo(path string) (*Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	info := &Info{Path: path, Title: filepath.Base(path), Size: st.Size()}
	if t, err := tags.Read(path); err == nil {
		info.Title = t.Title
		info.Artist = t.Artist
		info.Album = t.Album
		info.Genre = t.Genre
	}
	return info, nil
}
