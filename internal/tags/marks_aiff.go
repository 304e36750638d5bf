package tags

import (
	"strconv"

	"go.senan.xyz/taglib"
)

// writeTaglibMarks is used for AIFF, which only taglib can write.
func writeTaglibMarks(path string, m Marks) error {
	tags := map[string][]string{
		ratingKey: nil,
		labelsKey: nil,
	}
	if m.Rating > 0 {
		tags[ratingKey] = []string{strconv.Itoa(m.Rating)}
	}
	if len(m.Labels) > 0 {
		tags[labelsKey] = []string{joinLabels(m.Labels)}
	}
	// No Clear option: other tags are kept, nil values remove a key.
	return taglib.WriteTags(path, tags, 0)
}

func readTaglibMarks(path string) (Marks, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return Marks{}, err
	}
	t := taglibTags(raw)
	return Marks{
		Rating: t.getInt(ratingKey),
		Labels: splitLabels(t.get(labelsKey)),
	}, nil
}
