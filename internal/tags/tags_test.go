package tags

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2/v2"
)

// createTestMP3 writes a single silent MPEG frame, optionally with a title.
func createTestMP3(t *testing.T, dir, title string) string {
	t.Helper()
	path := filepath.Join(dir, "test.mp3")

	// MPEG1 Layer3, 128kbps, 44100Hz, stereo
	frame := make([]byte, 417)
	frame[0] = 0xff
	frame[1] = 0xfb
	frame[2] = 0x90
	if err := os.WriteFile(path, frame, 0o600); err != nil {
		t.Fatalf("failed to create test MP3: %v", err)
	}

	if title != "" {
		tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
		if err != nil {
			t.Fatalf("open tag: %v", err)
		}
		tag.SetDefaultEncoding(id3v2.EncodingUTF8)
		tag.SetTitle(title)
		tag.SetArtist("Test Artist")
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: "OTHER",
			Value:       "kept",
		})
		if err := tag.Save(); err != nil {
			t.Fatalf("save tag: %v", err)
		}
		tag.Close()
	}
	return path
}

// createWithFFmpeg creates a one second sine file, skipping without ffmpeg.
func createWithFFmpeg(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	cmd := exec.Command("ffmpeg", "-y", "-f", "lavfi", "-i", "sine=frequency=440:duration=1", path)
	if err := cmd.Run(); err != nil {
		t.Skipf("ffmpeg not available: %v", err)
	}
	return path
}

func TestRead_MP3(t *testing.T) {
	path := createTestMP3(t, t.TempDir(), "Song")

	info, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if info.Title != "Song" {
		t.Errorf("Title = %q, want Song", info.Title)
	}
	if info.Artist != "Test Artist" {
		t.Errorf("Artist = %q, want Test Artist", info.Artist)
	}
}

func TestRead_TitleFallsBackToFileName(t *testing.T) {
	path := createTestMP3(t, t.TempDir(), "")

	info, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if info.Title != "test.mp3" {
		t.Errorf("Title = %q, want test.mp3", info.Title)
	}
}

func TestRead_NonexistentFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("Read() error = nil, want error")
	}
}

func assertMarks(t *testing.T, got, want Marks) {
	t.Helper()
	if got.Rating != want.Rating {
		t.Errorf("Rating = %d, want %d", got.Rating, want.Rating)
	}
	if joinLabels(got.Labels) != joinLabels(want.Labels) {
		t.Errorf("Labels = %v, want %v", got.Labels, want.Labels)
	}
}

func TestMarks_MP3_Roundtrip(t *testing.T) {
	path := createTestMP3(t, t.TempDir(), "Song")
	want := Marks{Rating: 4, Labels: []string{"Deep", "A Cappella"}}

	if err := WriteMarks(path, want); err != nil {
		t.Fatalf("WriteMarks() error = %v", err)
	}
	got, err := ReadMarks(path)
	if err != nil {
		t.Fatalf("ReadMarks() error = %v", err)
	}
	assertMarks(t, got, want)

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("open tag: %v", err)
	}
	defer tag.Close()
	if tag.Title() != "Song" {
		t.Errorf("Title = %q after WriteMarks, want Song", tag.Title())
	}
	found := false
	for _, f := range tag.GetFrames(frameTXXX) {
		if udtf, ok := f.(id3v2.UserDefinedTextFrame); ok && udtf.Description == "OTHER" {
			found = true
		}
	}
	if !found {
		t.Error("unrelated TXXX frame was dropped")
	}
}

func TestMarks_MP3_Overwrite(t *testing.T) {
	path := createTestMP3(t, t.TempDir(), "Song")

	if err := WriteMarks(path, Marks{Rating: 5, Labels: []string{"Fun"}}); err != nil {
		t.Fatalf("WriteMarks() error = %v", err)
	}
	if err := WriteMarks(path, Marks{Rating: 2}); err != nil {
		t.Fatalf("WriteMarks() error = %v", err)
	}
	got, err := ReadMarks(path)
	if err != nil {
		t.Fatalf("ReadMarks() error = %v", err)
	}
	assertMarks(t, got, Marks{Rating: 2})
}

func TestMarks_FLAC_Roundtrip(t *testing.T) {
	path := createWithFFmpeg(t, t.TempDir(), "test.flac")
	want := Marks{Rating: 3, Labels: []string{"Hard"}}

	if err := WriteMarks(path, want); err != nil {
		t.Fatalf("WriteMarks() error = %v", err)
	}
	got, err := ReadMarks(path)
	if err != nil {
		t.Fatalf("ReadMarks() error = %v", err)
	}
	assertMarks(t, got, want)
}

func TestMarks_AIFF_Roundtrip(t *testing.T) {
	path := createWithFFmpeg(t, t.TempDir(), "test.aiff")
	want := Marks{Rating: 1, Labels: []string{"Retro", "Zarb"}}

	if err := WriteMarks(path, want); err != nil {
		t.Fatalf("WriteMarks() error = %v", err)
	}
	got, err := ReadMarks(path)
	if err != nil {
		t.Fatalf("ReadMarks() error = %v", err)
	}
	assertMarks(t, got, want)
}

func TestWriteMarks_Unsupported(t *testing.T) {
	if err := WriteMarks("/tmp/x.ogg", Marks{Rating: 1}); err == nil {
		t.Error("WriteMarks(.ogg) error = nil, want error")
	}
}

func TestRatingFromPOPM(t *testing.T) {
	tests := []struct {
		in   uint8
		want int
	}{
		{0, 0},
		{1, 1},
		{63, 1},
		{64, 2},
		{128, 3},
		{200, 4},
		{255, 5},
	}
	for _, tt := range tests {
		if got := ratingFromPOPM(tt.in); got != tt.want {
			t.Errorf("ratingFromPOPM(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSplitLabels(t *testing.T) {
	got := splitLabels(" Deep ;; A Cappella;")
	if joinLabels(got) != "Deep; A Cappella" {
		t.Errorf("splitLabels() = %v", got)
	}
}
