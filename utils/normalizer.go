package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopWords are Vietnamese function words plus generic domain words, stored
// in normalized form. "benh" is deliberately included so that disease names
// never match a message on the bare word for "disease".
var stopWords = map[string]struct{}{
	"benh":  {},
	"cua":   {},
	"toi":   {},
	"minh":  {},
	"dang":  {},
	"khong": {},
	"duoc":  {},
	"nhung": {},
	"phai":  {},
	"nhu":   {},
	"vay":   {},
	"cho":   {},
	"rat":   {},
	"roi":   {},
	"lam":   {},
	"hay":   {},
	"the":   {},
	"nao":   {},
	"sao":   {},
	"giup":  {},
	"voi":   {},
	"cac":   {},
	"mot":   {},
	"nhieu": {},
	"thay":  {},
	"xuat":  {},
	"hien":  {},
}

// terminal punctuation stripped from tokens
const tokenPunct = ".,;!?"

// Normalize lowercases the text, strips diacritical marks via canonical
// decomposition, and maps đ to its base Latin form. It is idempotent and
// never fails: bad input is returned lowercased as-is.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, lowered)
	if err != nil {
		folded = lowered
	}
	return strings.ReplaceAll(folded, "đ", "d")
}

// Tokens lowercases the text, strips terminal punctuation and splits on
// whitespace. It does not strip diacritics; run Normalize first when tokens
// are meant to be compared.
func Tokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, tokenPunct)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Keywords extracts the tokens of the normalized text that are usable for
// knowledge matching: longer than two characters and not a stop word.
func Keywords(text string) []string {
	tokens := Tokens(Normalize(text))
	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if _, ok := stopWords[tok]; ok {
			continue
		}
		keywords = append(keywords, tok)
	}
	return keywords
}

// KeywordSet is Keywords as a membership set for whole-token lookups.
func KeywordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, kw := range Keywords(text) {
		set[kw] = struct{}{}
	}
	return set
}
