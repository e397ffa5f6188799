package summary

import (
	"strings"
	"testing"
)

func TestSentences(t *testing.T) {
	got := Sentences("First one. Second one!  Third?\nFourth without end")
	want := []string{"First one.", "Second one!", "Third?", "Fourth without end"}
	if len(got) != len(want) {
		t.Fatalf("got %d sentences %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSentences_NoBoundaryInsideNumbers(t *testing.T) {
	got := Sentences("Output rose 3.5 percent. Done.")
	if len(got) != 2 {
		t.Fatalf("got %q, want 2 sentences", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize("", 3); got != "" {
		t.Errorf("Summarize(\"\") = %q, want empty", got)
	}
	if got := Summarize("   \n ", 3); got != "" {
		t.Errorf("Summarize(blank) = %q, want empty", got)
	}
}

func TestSummarize_FewSentencesReturnedAsIs(t *testing.T) {
	text := "Women lead cooperatives. They share tools! Is that new?"
	if got := Summarize(text, 3); got != text {
		t.Errorf("Summarize = %q, want %q", got, text)
	}
	if got := Summarize(text, 10); got != text {
		t.Errorf("Summarize with large n = %q, want %q", got, text)
	}
}

func TestSummarize_PicksFrequentTerms(t *testing.T) {
	text := "Rice farmers plant rice. The sky is blue. Rice harvest feeds farmers. Birds sing."
	want := "Rice farmers plant rice. Rice harvest feeds farmers."
	if got := Summarize(text, 2); got != want {
		t.Errorf("Summarize = %q, want %q", got, want)
	}
}

func TestSummarize_DocumentOrder(t *testing.T) {
	// the highest scoring sentence comes last in the text
	text := "Birds sing. Sky blue. Rice farmers grow rice and sell rice to rice traders."
	want := "Birds sing. Rice farmers grow rice and sell rice to rice traders."
	if got := Summarize(text, 2); got != want {
		t.Errorf("Summarize = %q, want %q", got, want)
	}
}

func TestSummarize_TiesKeepInputOrder(t *testing.T) {
	text := "Alpha beta. Gamma delta. Epsilon zeta."
	want := "Alpha beta. Gamma delta."
	for i := 0; i < 5; i++ {
		if got := Summarize(text, 2); got != want {
			t.Fatalf("run %d: Summarize = %q, want %q", i, got, want)
		}
	}
}

func TestSummarize_DefaultCount(t *testing.T) {
	text := strings.Repeat("Seed banks help farmers. ", 8)
	got := Sentences(Summarize(text, 0))
	if len(got) != DefaultSentences {
		t.Errorf("got %d sentences, want %d", len(got), DefaultSentences)
	}
}

func TestSummarize_BoundAndOrderProperty(t *testing.T) {
	texts := []string{
		"Land rights matter. Water rights matter too. Irrigation needs water. Women manage water. Land is scarce. Tenure reform helps women.",
		"One. Two. Three. Four. Five. Six. Seven.",
		"Fisheries employ women! Aquaculture grows? Fish value chains expand. Markets open. Fisheries need data. Women process fish.",
	}
	for _, text := range texts {
		all := Sentences(text)
		for n := 1; n <= len(all)+1; n++ {
			picked := Sentences(Summarize(text, n))
			if len(picked) > n {
				t.Errorf("n=%d: got %d sentences", n, len(picked))
			}
			last := -1
			for _, s := range picked {
				pos := indexOf(all, s, last+1)
				if pos < 0 {
					t.Errorf("n=%d: sentence %q out of order or not from source", n, s)
					break
				}
				last = pos
			}
		}
	}
}

func indexOf(list []string, s string, from int) int {
	for i := from; i < len(list); i++ {
		if list[i] == s {
			return i
		}
	}
	return -1
}
