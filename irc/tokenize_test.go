package irc

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		Line   string
		Tokens []string
	}{
		{"a b :c d", []string{"a", "b", "c d"}},
		{"a b c", []string{"a", "b", "c"}},
		{":srv 001 Nick :Welcome to IRC", []string{":srv", "001", "Nick", "Welcome to IRC"}},
		{"a :b :c d", []string{"a", "b :c d"}},
		{"PING :", []string{"PING", ""}},
		{"a b ", []string{"a", "b"}},
		{"a  b", []string{"a", "", "b"}},
		{"", []string{""}},
		{"single", []string{"single"}},
	}

	for i, test := range tests {
		if got := Tokenize(test.Line); !reflect.DeepEqual(got, test.Tokens) {
			t.Errorf("%d) Expected: %q, got: %q", i, test.Tokens, got)
		}
	}
}

func TestJoinTokens(t *testing.T) {
	t.Parallel()

	lines := []string{
		"a b :c d",
		"a b c",
		":srv 001 Nick :Welcome to IRC",
		":n!u@h PRIVMSG #c ::)",
		"a :b :c d",
		"PING :",
		"a  b",
		" :x y",
		"single",
	}

	for _, line := range lines {
		tokens := Tokenize(line)
		rejoined := JoinTokens(tokens)
		if again := Tokenize(rejoined); !reflect.DeepEqual(again, tokens) {
			t.Errorf("%q was rejoined as %q which tokenizes differently: %q",
				line, rejoined, again)
		}
	}

	if exp, val := "", JoinTokens(nil); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}

func TestIsNumeric(t *testing.T) {
	t.Parallel()

	if n, ok := IsNumeric("005"); !ok || n != 5 {
		t.Error("Unexpected:", n, ok)
	}
	if _, ok := IsNumeric("PRIVMSG"); ok {
		t.Error("PRIVMSG is not numeric")
	}
	if _, ok := IsNumeric(""); ok {
		t.Error("empty is not numeric")
	}
	if _, ok := IsNumeric("-1"); ok {
		t.Error("signs are not numeric")
	}
}
