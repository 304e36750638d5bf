package track

import "slices"

// DefaultTags is the tag vocabulary used when none is configured.
var DefaultTags = []string{
	"Catas", "Phiphi", "Deep", "Hard", "Retro", "Trance",
	"Best", "Ambiant", "Fun", "Zarb", "A Cappella",
}

// Vocabulary is the fixed, ordered set of tags a track may carry.
type Vocabulary struct {
	tags []string
}

// NewVocabulary builds a vocabulary from tags, keeping the first
// occurrence of duplicates and ignoring empty names.
func NewVocabulary(tags []string) *Vocabulary {
	v := &Vocabulary{tags: make([]string, 0, len(tags))}
	for _, tag := range tags {
		if tag == "" || slices.Contains(v.tags, tag) {
			continue
		}
		v.tags = append(v.tags, tag)
	}
	return v
}

// DefaultVocabulary returns a vocabulary holding DefaultTags.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(DefaultTags)
}

// Contains reports whether tag belongs to the vocabulary.
func (v *Vocabulary) Contains(tag string) bool {
	return v.Index(tag) >= 0
}

// Index returns the position of tag, or -1.
func (v *Vocabulary) Index(tag string) int {
	return slices.Index(v.tags, tag)
}

// Tags returns a copy of the tags in order.
func (v *Vocabulary) Tags() []string {
	return slices.Clone(v.tags)
}

// Len returns the number of tags.
func (v *Vocabulary) Len() int { return len(v.tags) }
