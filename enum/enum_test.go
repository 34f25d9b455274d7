package enum

import "testing"

type fruit int

const (
	apple fruit = iota
	pear
)

func (f fruit) String() string {
	switch f {
	case apple:
		return "apple"
	case pear:
		return "pear"
	}
	return "unknown"
}

func TestLookup(t *testing.T) {
	values := []fruit{apple, pear}
	cases := map[string]bool{
		"apple": true,
		"APPLE": true,
		"Pear":  true,
		"plum":  false,
		"":      false,
	}
	for in, want := range cases {
		if _, ok := Lookup(values, in); ok != want {
			t.Errorf("Lookup(%q) ok = %v, want %v", in, ok, want)
		}
	}

	if got, _ := Lookup(values, "PEAR"); got != pear {
		t.Errorf("Lookup(PEAR) = %v, want pear", got)
	}
}

func TestNames(t *testing.T) {
	if got := Names([]fruit{apple, pear}, ", "); got != "apple, pear" {
		t.Errorf("Names = %q, want %q", got, "apple, pear")
	}
}
