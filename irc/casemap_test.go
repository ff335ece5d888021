package irc

import "testing"

func TestCaseMapper_ToLower(t *testing.T) {
	t.Parallel()

	tests := []struct {
		Limit int
		In    string
		Out   string
	}{
		{CaseASCII, "NiCK[]\\~", "nick[]\\~"},
		{CaseStrictRFC1459, "NiCK[]\\~", "nick{}|~"},
		{CaseRFC1459, "NiCK[]\\~", "nick{}|^"},
		{CaseRFC1459, "ÜBER", "Über"},
		{CaseRFC1459, "", ""},
	}

	for i, test := range tests {
		c := NewCaseMapper(test.Limit)
		if got := c.ToLower(test.In); got != test.Out {
			t.Errorf("%d) Expected: %q, got: %q", i, test.Out, got)
		}
	}
}

func TestCaseMapper_ToUpper(t *testing.T) {
	t.Parallel()

	c := NewCaseMapper(CaseRFC1459)
	if exp, val := "NICK{}|^", c.ToUpper("nick{}|^"); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
	if exp, val := "NICK[]\\~", c.ToUpper("nick[]\\~"); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}

	c = NewCaseMapper(CaseASCII)
	if exp, val := "NICK{}|^", c.ToUpper("nick{}|^"); val != exp {
		t.Error("Unexpected:", val, "should be:", exp)
	}
}

func TestCaseMapper_Equal(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"nick", "NICK"},
		{"[a]", "{A}"},
		{"a\\b", "A|B"},
		{"~", "^"},
	}

	for limit := CaseASCII; limit <= CaseRFC1459; limit++ {
		c := NewCaseMapper(limit)
		for _, p := range pairs {
			if !c.Equal(p[0], p[0]) {
				t.Errorf("%d) %q should equal itself", limit, p[0])
			}
			if c.Equal(p[0], p[1]) != c.Equal(p[1], p[0]) {
				t.Errorf("%d) Equal is not symmetric for %q %q", limit, p[0], p[1])
			}
		}
	}

	ascii, strict, rfc := NewCaseMapper(CaseASCII), NewCaseMapper(CaseStrictRFC1459),
		NewCaseMapper(CaseRFC1459)

	if !ascii.Equal("nick", "NICK") {
		t.Error("ascii should fold letters")
	}
	if ascii.Equal("[a]", "{A}") {
		t.Error("ascii should not fold brackets")
	}
	if !strict.Equal("[a]", "{A}") || strict.Equal("~", "^") {
		t.Error("strict-rfc1459 folds brackets but not tilde")
	}
	if !rfc.Equal("~", "^") {
		t.Error("rfc1459 should fold tilde")
	}
	if rfc.Equal("nick", "nick2") {
		t.Error("different lengths should never be equal")
	}

	// A larger limit never removes a folding.
	for _, p := range pairs {
		if ascii.Equal(p[0], p[1]) && !strict.Equal(p[0], p[1]) {
			t.Error("strict lost a folding for", p)
		}
		if strict.Equal(p[0], p[1]) && !rfc.Equal(p[0], p[1]) {
			t.Error("rfc1459 lost a folding for", p)
		}
	}
}

func TestCaseMapping(t *testing.T) {
	t.Parallel()

	if l, ok := CaseMapping("ascii"); !ok || l != CaseASCII {
		t.Error("Unexpected:", l, ok)
	}
	if l, ok := CaseMapping("STRICT-RFC1459"); !ok || l != CaseStrictRFC1459 {
		t.Error("Unexpected:", l, ok)
	}
	if l, ok := CaseMapping("rfc1459"); !ok || l != CaseRFC1459 {
		t.Error("Unexpected:", l, ok)
	}
	if l, ok := CaseMapping("rfc7613"); ok || l != CaseRFC1459 {
		t.Error("Unexpected:", l, ok)
	}
}
