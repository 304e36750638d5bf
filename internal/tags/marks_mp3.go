package tags

import (
	"math/big"

	"github.com/bogem/id3v2/v2"
)

const (
	frameTXXX = "TXXX"
	framePOPM = "POPM"
	popmEmail = "sift"
)

// popmScale maps a 0-5 rating to the Popularimeter byte used by most players.
var popmScale = [...]uint8{0, 1, 64, 128, 196, 255}

func writeMP3Marks(path string, m Marks) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	// Keep user text frames other than ours.
	var keep []id3v2.UserDefinedTextFrame
	for _, f := range tag.GetFrames(frameTXXX) {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if ok && udtf.Description != labelsKey {
			keep = append(keep, udtf)
		}
	}
	tag.DeleteFrames(frameTXXX)
	for _, f := range keep {
		tag.AddUserDefinedTextFrame(f)
	}
	if len(m.Labels) > 0 {
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: labelsKey,
			Value:       joinLabels(m.Labels),
		})
	}

	tag.DeleteFrames(framePOPM)
	if m.Rating > 0 {
		tag.AddFrame(framePOPM, id3v2.PopularimeterFrame{
			Email:   popmEmail,
			Rating:  popmScale[min(m.Rating, len(popmScale)-1)],
			Counter: big.NewInt(0),
		})
	}

	return tag.Save()
}

func readMP3Marks(path string) (Marks, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Marks{}, err
	}
	defer tag.Close()

	var m Marks
	for _, f := range tag.GetFrames(frameTXXX) {
		if udtf, ok := f.(id3v2.UserDefinedTextFrame); ok && udtf.Description == labelsKey {
			m.Labels = splitLabels(udtf.Value)
		}
	}
	for _, f := range tag.GetFrames(framePOPM) {
		if popm, ok := f.(id3v2.PopularimeterFrame); ok {
			m.Rating = ratingFromPOPM(popm.Rating)
		}
	}
	return m, nil
}

func ratingFromPOPM(b uint8) int {
	for stars := len(popmScale) - 1; stars > 0; stars-- {
		if b >= popmScale[stars] {
			return stars
		}
	}
	return 0
}
