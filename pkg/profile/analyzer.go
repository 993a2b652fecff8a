// Package profile measures how widely known the vocabulary of a text is.
package profile

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/emcoglab/brysbaert-prevalence/pkg/prevalence"
)

// Words are runs of letters, optionally joined by an apostrophe or hyphen
// ("o'clock", "sea-horse").
var reWord = regexp.MustCompile(`\p{L}+(?:['’-]\p{L}+)*`)

// Tokenize splits text into lowercase word tokens in order of appearance.
func Tokenize(text string) []string {
	raw := reWord.FindAllString(text, -1)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.ReplaceAll(w, "’", "'")
		out = append(out, strings.ToLower(w))
	}
	return out
}

// Report summarises the prevalence of the tokens of a text.
type Report struct {
	Tokens  int `json:"tokens"`
	Known   int `json:"known"`
	Unknown int `json:"unknown"`
	// Mean, Min and Max are over known tokens; zero when none are known.
	Mean    float64 `json:"mean"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	MinWord string  `json:"min_word,omitempty"`
	// UnknownWords is the sorted set of tokens absent from the table.
	UnknownWords []string `json:"unknown_words,omitempty"`
}

// Coverage is the share of tokens found in the table.
func (r Report) Coverage() float64 {
	if r.Tokens == 0 {
		return 0
	}
	return float64(r.Known) / float64(r.Tokens)
}

// Analyze looks up every token of text. Tokens are already lowercase, which is
// the form the table stores. Only not-found errors are absorbed into the report.
func Analyze(lookup prevalence.Lookuper, text string) (Report, error) {
	var r Report
	var sum float64
	unknown := make(map[string]struct{})
	r.Min = math.Inf(1)
	r.Max = math.Inf(-1)

	for _, tok := range Tokenize(text) {
		r.Tokens++
		p, err := lookup.PrevalenceFor(tok)
		if err != nil {
			if !prevalence.IsWordNotFound(err) {
				return Report{}, err
			}
			r.Unknown++
			unknown[tok] = struct{}{}
			continue
		}
		r.Known++
		sum += p
		if p < r.Min {
			r.Min = p
			r.MinWord = tok
		}
		if p > r.Max {
			r.Max = p
		}
	}

	if r.Known > 0 {
		r.Mean = sum / float64(r.Known)
	} else {
		r.Min, r.Max = 0, 0
	}
	for w := range unknown {
		r.UnknownWords = append(r.UnknownWords, w)
	}
	sort.Strings(r.UnknownWords)
	return r, nil
}
