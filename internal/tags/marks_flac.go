package tags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

func writeFLACMarks(path string, m Marks) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}

	cmtIdx := -1
	cmts := flacvorbis.New()
	for i, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		existing, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return fmt.Errorf("parse comments: %w", err)
		}
		cmts.Vendor = existing.Vendor
		for _, c := range existing.Comments {
			key, _, _ := strings.Cut(c, "=")
			if strings.EqualFold(key, ratingKey) || strings.EqualFold(key, labelsKey) {
				continue
			}
			cmts.Comments = append(cmts.Comments, c)
		}
		cmtIdx = i
		break
	}

	if m.Rating > 0 {
		if err := cmts.Add(ratingKey, strconv.Itoa(m.Rating)); err != nil {
			return fmt.Errorf("add rating: %w", err)
		}
	}
	if len(m.Labels) > 0 {
		if err := cmts.Add(labelsKey, joinLabels(m.Labels)); err != nil {
			return fmt.Errorf("add labels: %w", err)
		}
	}

	block := cmts.Marshal()
	if cmtIdx >= 0 {
		f.Meta[cmtIdx] = &block
	} else {
		f.Meta = append(f.Meta, &block)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

func readFLACMarks(path string) (Marks, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return Marks{}, fmt.Errorf("parse file: %w", err)
	}

	var m Marks
	for _, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return Marks{}, fmt.Errorf("parse comments: %w", err)
		}
		if vals, err := cmts.Get(ratingKey); err == nil && len(vals) > 0 {
			m.Rating, _ = strconv.Atoi(vals[0])
		}
		if vals, err := cmts.Get(labelsKey); err == nil && len(vals) > 0 {
			m.Labels = splitLabels(vals[0])
		}
		break
	}
	return m, nil
}
