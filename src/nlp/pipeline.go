package nlp

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/torresnicolas0/clima-chatbot/src/gazetteer"
	"github.com/torresnicolas0/clima-chatbot/src/models"
)

// RulePipeline is a rule-based Spanish pipeline. Entities are produced by a
// gazetteer-backed ruler, so every GPE it tags is a known city name.
type RulePipeline struct {
	cities *gazetteer.Gazetteer
}

func NewRulePipeline(cities *gazetteer.Gazetteer) *RulePipeline {
	return &RulePipeline{cities: cities}
}

type token struct {
	text       string
	start, end int
}

// tokenize returns word tokens with byte offsets into text.
func tokenize(text string) []token {
	var tokens []token
	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, token{text: text[start:i], start: start, end: i})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, token{text: text[start:], start: start, end: len(text)})
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isAlpha(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
			return false
		}
	}
	return true
}

func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

func isClosing(r rune) bool {
	return r == '"' || r == '\'' || r == ')' || r == '»' || r == '”'
}

func (p *RulePipeline) SegmentSentences(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runes := []rune(norm.NFC.String(text))
	var sentences []string
	start := 0
	flush := func(end int) {
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			sentences = append(sentences, s)
		}
		start = end
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			flush(i + 1)
			continue
		}
		if !isTerminator(r) {
			continue
		}
		// Decimal separators are not boundaries.
		if r == '.' && i > 0 && i+1 < len(runes) && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			continue
		}
		j := i + 1
		for j < len(runes) && (isTerminator(runes[j]) || isClosing(runes[j])) {
			j++
		}
		if j == len(runes) || unicode.IsSpace(runes[j]) || runes[j] == '¿' || runes[j] == '¡' {
			flush(j)
			i = j - 1
		}
	}
	flush(len(runes))

	return sentences, nil
}

// TagEntities labels the longest run of consecutive tokens whose surface text
// is a gazetteer name.
func (p *RulePipeline) TagEntities(ctx context.Context, text string) ([]models.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text = norm.NFC.String(text)
	tokens := tokenize(text)
	maxWords := p.cities.MaxWords()

	var entities []models.Entity
	for i := 0; i < len(tokens); {
		matched := 0
		for n := min(maxWords, len(tokens)-i); n >= 1; n-- {
			span := text[tokens[i].start:tokens[i+n-1].end]
			if p.cities.Contains(strings.Join(strings.Fields(span), " ")) {
				entities = append(entities, models.Entity{Text: span, Label: models.LabelGPE})
				matched = n
				break
			}
		}
		if matched == 0 {
			matched = 1
		}
		i += matched
	}
	return entities, nil
}

func (p *RulePipeline) LemmatizeFiltered(ctx context.Context, text string, keywords map[string]struct{}) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lemmas []string
	for _, tok := range tokenize(norm.NFC.String(text)) {
		lemma := strings.ToLower(tok.text)
		if IsStopWord(lemma) || !isAlpha(tok.text) {
			continue
		}
		lemmas = append(lemmas, lemma)
		if _, ok := keywords[tok.text]; ok {
			lemmas = append(lemmas, lemma)
		}
	}
	return lemmas, nil
}
