// Package icons holds the glyphs used for playback state, ratings and
// verdicts, in the style chosen by the configuration.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Audio  string
	Play   string
	Pause  string
	Stop   string
	Star   string
	NoStar string
	Trash  string
	Keep   string
}

var (
	nerdIcons = Icons{
		Audio:  "\uf001 ", // nf-fa-music
		Play:   "\uf04b",  // nf-fa-play
		Pause:  "\uf04c",  // nf-fa-pause
		Stop:   "\uf04d",  // nf-fa-stop
		Star:   "\uf005",  // nf-fa-star
		NoStar: "\uf006",  // nf-fa-star_o
		Trash:  "\uf1f8",  // nf-fa-trash
		Keep:   "\uf00c",  // nf-fa-check
	}

	unicodeIcons = Icons{
		Audio:  "🎵 ",
		Play:   "▶",
		Pause:  "⏸",
		Stop:   "■",
		Star:   "★",
		NoStar: "☆",
		Trash:  "🗑",
		Keep:   "✔",
	}

	noneIcons = Icons{
		Audio:  "",
		Play:   "▶",
		Pause:  "⏸",
		Stop:   "■",
		Star:   "★",
		NoStar: "☆",
		Trash:  "TRASH",
		Keep:   "KEEP",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// Valid reports whether style names a known icon set. Empty is valid.
func Valid(style string) bool {
	switch Style(style) {
	case "", StyleNerd, StyleUnicode, StyleNone:
		return true
	}
	return false
}

// FormatAudio formats an audio file name with the appropriate icon.
func FormatAudio(name string) string {
	return current.Audio + name
}

func Play() string   { return current.Play }
func Pause() string  { return current.Pause }
func Stop() string   { return current.Stop }
func Star() string   { return current.Star }
func NoStar() string { return current.NoStar }
func Trash() string  { return current.Trash }
func Keep() string   { return current.Keep }
