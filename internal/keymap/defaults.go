package keymap

import (
	"fmt"

	"github.com/llehouerou/sift/internal/track"
)

// maxTagKeys is the number of digit keys bound to tags.
const maxTagKeys = 10

// DefaultBindings returns the built-in bindings. Digits 1 to 9 then 0 toggle
// the first ten tags of vocab.
func DefaultBindings(vocab *track.Vocabulary) map[string]string {
	b := map[string]string{
		"Key_Escape": string(Quit),
		"Key_Q":      string(Quit),
		"Key_Right":  string(PlayNext),
		"Key_N":      string(PlayNext),
		"Key_Left":   string(PlayPrevious),
		"Key_P":      string(PlayPrevious),
		"Key_Space":  string(TogglePlayPause),
		"Key_S":      string(Stop),
		"Key_Period": fmt.Sprintf("%s(%d)", SeekForward, DefaultSeekSeconds),
		"Key_Comma":  fmt.Sprintf("%s(%d)", SeekBackward, DefaultSeekSeconds),
		"Key_Up":     fmt.Sprintf("%s(30)", SeekForward),
		"Key_Down":   fmt.Sprintf("%s(30)", SeekBackward),
		"Key_Equal":  string(VolumeUp),
		"Key_Minus":  string(VolumeDown),
		"Key_Plus":   string(IncrementRating),
		"Key_R":      string(IncrementRating),
		"Key_Delete": string(MoveToTrash),
		"Key_D":      string(MoveToTrash),
		"Key_K":      string(KeepFile),
	}
	if vocab == nil {
		return b
	}
	for i, tag := range vocab.Tags() {
		if i >= maxTagKeys {
			break
		}
		digit := (i + 1) % 10
		b[fmt.Sprintf("Key_%d", digit)] = fmt.Sprintf("%s(%s)", SetTag, tag)
	}
	return b
}
