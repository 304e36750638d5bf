package tags

import "fmt"

// WriteMarks stores the rating and labels in the file's tags, keeping any
// other tag untouched.
func WriteMarks(path string, m Marks) error {
	var err error
	switch {
	case ext(path) == ExtMP3:
		err = writeMP3Marks(path, m)
	case ext(path) == ExtFLAC:
		err = writeFLACMarks(path, m)
	case isAIFF(path):
		err = writeTaglibMarks(path, m)
	default:
		return fmt.Errorf("write marks %s: unsupported format", path)
	}
	if err != nil {
		return fmt.Errorf("write marks %s: %w", path, err)
	}
	return nil
}

// ReadMarks returns the rating and labels previously written by WriteMarks.
// Files without marks return zero Marks and no error.
func ReadMarks(path string) (Marks, error) {
	switch {
	case ext(path) == ExtMP3:
		return readMP3Marks(path)
	case ext(path) == ExtFLAC:
		return readFLACMarks(path)
	case isAIFF(path):
		return readTaglibMarks(path)
	}
	return Marks{}, fmt.Errorf("read marks %s: unsupported format", path)
}
