package irc

import "strings"

// Tokenize splits a line received from the server into its tokens. Everything
// after the first " :" is a single trailing token, the rest is split on
// spaces. Trailing empty tokens before the trailing part are dropped. An empty
// line yields a single empty token.
func Tokenize(line string) []string {
	if len(line) == 0 {
		return []string{""}
	}

	idx := strings.Index(line, " :")
	if idx < 0 {
		return splitSpaces(line)
	}

	tokens := splitSpaces(line[:idx])
	if len(tokens) == 1 && len(tokens[0]) == 0 {
		tokens = tokens[:0]
	}
	return append(tokens, line[idx+2:])
}

// splitSpaces splits on single spaces, consecutive spaces create empty tokens
// but empty tokens at the end of the line are removed.
func splitSpaces(s string) []string {
	tokens := strings.Split(s, " ")
	end := len(tokens)
	for end > 1 && len(tokens[end-1]) == 0 {
		end--
	}
	return tokens[:end]
}

// JoinTokens is the inverse of Tokenize. The last token is written as a
// trailing parameter when it could not otherwise survive a round trip.
func JoinTokens(tokens []string) string {
	switch len(tokens) {
	case 0:
		return ""
	case 1:
		if strings.ContainsRune(tokens[0], ' ') {
			return " :" + tokens[0]
		}
		return tokens[0]
	}

	last := tokens[len(tokens)-1]
	head := strings.Join(tokens[:len(tokens)-1], " ")
	if len(last) == 0 || strings.ContainsRune(last, ' ') || last[0] == ':' {
		return head + " :" + last
	}
	return head + " " + last
}

// IsNumeric reports whether the token is a plain integer and returns it.
func IsNumeric(token string) (int, bool) {
	if len(token) == 0 || len(token) > 9 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return 0, false
		}
		n = n*10 + int(token[i]-'0')
	}
	return n, true
}
