package keymap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/llehouerou/sift/internal/track"
)

var (
	// ErrUnknownAction is returned for action names outside the registry.
	ErrUnknownAction = errors.New("unknown action")
	// ErrBadArgument is returned for a missing, extra or invalid argument.
	ErrBadArgument = errors.New("bad action argument")
)

// Name identifies an action in the fixed registry.
type Name string

const (
	Quit            Name = "quit"
	PlayNext        Name = "play_next"
	PlayPrevious    Name = "play_previous"
	SeekForward     Name = "seek_forward"
	SeekBackward    Name = "seek_backward"
	TogglePlayPause Name = "toggle_play_pause"
	Stop            Name = "stop"
	IncrementRating Name = "increment_rating"
	SetTag          Name = "set_tag"
	MoveToTrash     Name = "move_to_trash"
	KeepFile        Name = "keep_file"
	VolumeUp        Name = "volume_up"
	VolumeDown      Name = "volume_down"
)

// Names lists every action in the registry.
var Names = []Name{
	Quit, PlayNext, PlayPrevious, SeekForward, SeekBackward,
	TogglePlayPause, Stop, VolumeUp, VolumeDown,
	IncrementRating, SetTag, MoveToTrash, KeepFile,
}

// aliases are alternative spellings accepted in configuration files.
var aliases = map[string]Name{
	"play_next_track":     PlayNext,
	"play_previous_track": PlayPrevious,
	"step_forward":        SeekForward,
	"step_backward":       SeekBackward,
	"play_pause":          TogglePlayPause,
	"incr_rating":         IncrementRating,
	"set_style":           SetTag,
	"move_to_dustbin":     MoveToTrash,
}

const (
	// DefaultSeekSeconds is used when a seek action has no argument.
	DefaultSeekSeconds = 5
	// DefaultVolumeStep is used when a volume action has no argument.
	DefaultVolumeStep = 10
)

// Action is a parsed action with its bound argument.
type Action struct {
	Name    Name
	Seconds int    // seek actions
	Percent int    // volume actions
	Tag     string // set_tag
}

// String returns the canonical configuration form of the action.
func (a Action) String() string {
	switch a.Name {
	case SeekForward, SeekBackward:
		return fmt.Sprintf("%s(%d)", a.Name, a.Seconds)
	case VolumeUp, VolumeDown:
		return fmt.Sprintf("%s(%d)", a.Name, a.Percent)
	case SetTag:
		return fmt.Sprintf("%s(%s)", a.Name, a.Tag)
	default:
		return string(a.Name)
	}
}

// Description is the help text of the action.
func (a Action) Description() string {
	switch a.Name {
	case Quit:
		return "quit"
	case PlayNext:
		return "next track"
	case PlayPrevious:
		return "previous track"
	case SeekForward:
		return fmt.Sprintf("+%ds", a.Seconds)
	case SeekBackward:
		return fmt.Sprintf("-%ds", a.Seconds)
	case TogglePlayPause:
		return "play/pause"
	case Stop:
		return "stop"
	case VolumeUp:
		return fmt.Sprintf("vol +%d%%", a.Percent)
	case VolumeDown:
		return fmt.Sprintf("vol -%d%%", a.Percent)
	case IncrementRating:
		return "rate"
	case SetTag:
		return "tag " + a.Tag
	case MoveToTrash:
		return "trash"
	case KeepFile:
		return "keep"
	default:
		return string(a.Name)
	}
}

// ParseAction parses "name" or "name(arg)". Tags are checked against vocab.
func ParseAction(spec string, vocab *track.Vocabulary) (Action, error) {
	spec = strings.TrimSpace(spec)
	rawName, arg, hasArg, err := splitCall(spec)
	if err != nil {
		return Action{}, err
	}

	name, ok := lookupName(rawName)
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, rawName)
	}

	a := Action{Name: name}
	switch name {
	case SeekForward, SeekBackward:
		a.Seconds = DefaultSeekSeconds
		if hasArg {
			n, err := strconv.Atoi(arg)
			if err != nil || n <= 0 {
				return Action{}, fmt.Errorf("%w: %s wants a positive number of seconds, got %q", ErrBadArgument, name, arg)
			}
			a.Seconds = n
		}
	case VolumeUp, VolumeDown:
		a.Percent = DefaultVolumeStep
		if hasArg {
			n, err := strconv.Atoi(arg)
			if err != nil || n <= 0 || n > 100 {
				return Action{}, fmt.Errorf("%w: %s wants a percentage from 1 to 100, got %q", ErrBadArgument, name, arg)
			}
			a.Percent = n
		}
	case SetTag:
		if !hasArg || arg == "" {
			return Action{}, fmt.Errorf("%w: %s needs a tag", ErrBadArgument, name)
		}
		if vocab != nil && !vocab.Contains(arg) {
			return Action{}, fmt.Errorf("%w: %s: %w %q", ErrBadArgument, name, track.ErrUnknownTag, arg)
		}
		a.Tag = arg
	default:
		if hasArg {
			return Action{}, fmt.Errorf("%w: %s takes no argument", ErrBadArgument, name)
		}
	}
	return a, nil
}

func lookupName(s string) (Name, bool) {
	if n, ok := aliases[s]; ok {
		return n, true
	}
	for _, n := range Names {
		if string(n) == s {
			return n, true
		}
	}
	return "", false
}

// splitCall splits "name(arg)" into its parts and strips quotes from arg.
func splitCall(spec string) (name, arg string, hasArg bool, err error) {
	open := strings.IndexByte(spec, '(')
	if open < 0 {
		return spec, "", false, nil
	}
	if !strings.HasSuffix(spec, ")") {
		return "", "", false, fmt.Errorf("%w: unterminated call %q", ErrBadArgument, spec)
	}
	name = strings.TrimSpace(spec[:open])
	arg = strings.TrimSpace(spec[open+1 : len(spec)-1])
	if len(arg) >= 2 && (arg[0] == '\'' || arg[0] == '"') && arg[len(arg)-1] == arg[0] {
		arg = arg[1 : len(arg)-1]
	}
	return name, arg, arg != "", nil
}
