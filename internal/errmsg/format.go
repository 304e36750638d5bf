// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Playback operations
	OpTrackLoad     Op = "load track"
	OpPlaybackStart Op = "start playback"
	OpPlaybackStop  Op = "stop playback"
	OpPlaybackSeek  Op = "seek"

	// Track list operations
	OpFolderLoad Op = "load folder"
	OpFilesDrop  Op = "add dropped files"

	// Marks
	OpMarkUpdate Op = "update track"
	OpMarkSave   Op = "save track marks"
	OpTagsWrite  Op = "write file tags"

	// Triage
	OpTriageApply Op = "apply triage"
	OpFileMove    Op = "move file"

	// Initialization
	OpConfigLoad Op = "load config"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error is a failed operation that keeps the cause for errors.Is and
// errors.As. Its message is the one Format builds.
type Error struct {
	Op      Op
	Context string
	Err     error
}

func (e *Error) Error() string { return FormatWith(e.Op, e.Context, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Wrap returns err as an *Error for op, or nil when err is nil.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}
