package utils

import "testing"

func TestHighlightMatches(t *testing.T) {
	got := HighlightMatches("Learn react today, React tomorrow", "react")
	want := "Learn <mark>react</mark> today, <mark>React</mark> tomorrow"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestHighlightEscapesMetacharacters(t *testing.T) {
	got := HighlightMatches("what is c++ anyway", "c++")
	want := "what is <mark>c++</mark> anyway"
	if got != want {
		t.Errorf("Expected metacharacters matched literally, got %q", got)
	}
}

func TestHighlightEmptyInputs(t *testing.T) {
	if got := HighlightMatches("text", ""); got != "text" {
		t.Errorf("Expected untouched text for empty keyword, got %q", got)
	}
	if got := HighlightMatches("", "react"); got != "" {
		t.Errorf("Expected empty text to stay empty, got %q", got)
	}
}

func TestHighlightNoMatch(t *testing.T) {
	if got := HighlightMatches("nothing here", "react"); got != "nothing here" {
		t.Errorf("Expected untouched text without a match, got %q", got)
	}
}
