package ngram

import (
	"bufio"
	"bytes"
	_ "embed"
	"strings"
)

//go:embed stopwords_en.txt
var stopwordsEN []byte

// Filler words and punctuation that survive lemmatization but carry no topic.
var domainFiller = []string{
	"want", "would", "like", "also", "get", "need", "please", "etc", "thing",
	".", ",", "!", "?", ";", ":", "-", "'", "\"", "(", ")", "...", "'s", "n't",
}

var builtin = map[string][]byte{
	"en": stopwordsEN,
}

// Stopwords is a set of tokens never counted as n-gram members.
type Stopwords map[string]struct{}

// NewStopwords builds the stopword set for a language plus campaign extras.
// Unknown languages get only the domain filler and the extras.
func NewStopwords(lang string, extra ...string) Stopwords {
	s := Stopwords{}
	if b, ok := builtin[strings.ToLower(lang)]; ok {
		sc := bufio.NewScanner(bytes.NewReader(b))
		for sc.Scan() {
			s.add(sc.Text())
		}
	}
	for _, w := range domainFiller {
		s.add(w)
	}
	for _, w := range extra {
		s.add(w)
	}
	return s
}

func (s Stopwords) add(w string) {
	w = strings.TrimSpace(strings.ToLower(w))
	if w != "" {
		s[w] = struct{}{}
	}
}

// Has reports whether w is a stopword.
func (s Stopwords) Has(w string) bool {
	_, ok := s[w]
	return ok
}
