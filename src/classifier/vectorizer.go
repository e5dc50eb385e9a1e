package classifier

import "unicode/utf8"

// CountVectorizer counts occurrences of vocabulary terms. Terms shorter than
// two characters are ignored, as the training tokenizer did.
type CountVectorizer struct {
	index map[string]int
	size  int
}

func NewCountVectorizer(vocabulary []string) *CountVectorizer {
	index := make(map[string]int, len(vocabulary))
	for i, term := range vocabulary {
		index[term] = i
	}
	return &CountVectorizer{index: index, size: len(vocabulary)}
}

func (v *CountVectorizer) Transform(tokens []string) []float64 {
	features := make([]float64, v.size)
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < 2 {
			continue
		}
		if i, ok := v.index[tok]; ok {
			features[i]++
		}
	}
	return features
}

func (v *CountVectorizer) Size() int { return v.size }
