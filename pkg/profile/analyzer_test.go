package profile

import (
	"errors"
	"reflect"
	"testing"

	"github.com/emcoglab/brysbaert-prevalence/pkg/prevalence"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"The Abbey stood.", []string{"the", "abbey", "stood"}},
		{"It's five o’clock", []string{"it's", "five", "o'clock"}},
		{"a sea-horse -- and 42 eels", []string{"a", "sea-horse", "and", "eels"}},
		{"", []string{}},
		{"café naïve", []string{"café", "naïve"}},
	}
	for _, tt := range tests {
		if got := Tokenize(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func testTable() *prevalence.Table {
	return prevalence.NewTable([]prevalence.Entry{
		{Word: "the", Prevalence: 2.6},
		{Word: "abbey", Prevalence: 2.05},
		{Word: "stood", Prevalence: 2.4},
		{Word: "zygote", Prevalence: 0.93},
	})
}

func TestAnalyze(t *testing.T) {
	r, err := Analyze(testTable(), "The Abbey stood; the zygote glowed. Glowed!")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.Tokens != 7 || r.Known != 5 || r.Unknown != 2 {
		t.Fatalf("unexpected counts %+v", r)
	}
	if r.Min != 0.93 || r.MinWord != "zygote" || r.Max != 2.6 {
		t.Errorf("unexpected min/max %+v", r)
	}
	wantMean := (2.6 + 2.05 + 2.4 + 2.6 + 0.93) / 5
	if r.Mean != wantMean {
		t.Errorf("Mean = %v; want %v", r.Mean, wantMean)
	}
	if !reflect.DeepEqual(r.UnknownWords, []string{"glowed"}) {
		t.Errorf("UnknownWords = %v", r.UnknownWords)
	}
	if c := r.Coverage(); c != 5.0/7.0 {
		t.Errorf("Coverage() = %v", c)
	}
}

func TestAnalyze_NothingKnown(t *testing.T) {
	r, err := Analyze(testTable(), "xyzzy plugh")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.Known != 0 || r.Mean != 0 || r.Min != 0 || r.Max != 0 {
		t.Fatalf("expected zero stats, got %+v", r)
	}
	if (Report{}).Coverage() != 0 {
		t.Fatal("empty report coverage should be 0")
	}
}

type failingLookup struct{ err error }

func (f failingLookup) PrevalenceFor(string) (float64, error) { return 0, f.err }

func TestAnalyze_PropagatesOtherErrors(t *testing.T) {
	boom := errors.New("db is gone")
	if _, err := Analyze(failingLookup{boom}, "abbey"); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}
