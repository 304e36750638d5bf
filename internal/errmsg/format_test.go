package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{"nil error returns empty string", OpTrackLoad, nil, ""},
		{"load track", OpTrackLoad, errors.New("unsupported format"), "Failed to load track: unsupported format"},
		{"seek", OpPlaybackSeek, errors.New("no duration"), "Failed to seek: no duration"},
		{"save marks", OpMarkSave, errors.New("disk full"), "Failed to save track marks: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, got, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{"nil error returns empty string", OpFileMove, "song.mp3", nil, ""},
		{"with context", OpFileMove, "song.mp3", errors.New("permission denied"), "Failed to move file 'song.mp3': permission denied"},
		{"empty context falls back to Format", OpFileMove, "", errors.New("permission denied"), "Failed to move file: permission denied"},
		{"folder path", OpFolderLoad, "/home/user/demos", errors.New("not a directory"), "Failed to load folder '/home/user/demos': not a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWith(tt.op, tt.context, tt.err); got != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, got, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpTrackLoad, OpPlaybackStart, OpPlaybackStop, OpPlaybackSeek,
		OpFolderLoad, OpFilesDrop,
		OpMarkUpdate, OpMarkSave, OpTagsWrite,
		OpTriageApply, OpFileMove,
		OpConfigLoad, OpInitialize,
	}
	testErr := errors.New("test error")
	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Fatal("Op constant should not be empty")
			}
			want := "Failed to " + string(op) + ": test error"
			if got := Format(op, testErr); got != want {
				t.Errorf("Format = %q, want %q", got, want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if Wrap(OpConfigLoad, nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}

	cause := errors.New("no such file")
	err := Wrap(OpConfigLoad, cause)
	if got, want := err.Error(), "Failed to load config: no such file"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("Wrap should keep the cause")
	}
	var e *Error
	if !errors.As(err, &e) || e.Op != OpConfigLoad {
		t.Errorf("errors.As = %+v", e)
	}
}

func TestError_WithContext(t *testing.T) {
	err := &Error{Op: OpFileMove, Context: "a.mp3", Err: errors.New("denied")}
	if got, want := err.Error(), "Failed to move file 'a.mp3': denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
