package pitch

import "testing"

func TestNameToFifths(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		{"C", 0},
		{"G", 1},
		{"F", -1},
		{"Ab", -4},
		{"F#", 6},
		{"Eb", -3},
		{"a", 3},  // minor keys are lowercase
		{"c#", 7}, // C sharp minor
		{"Cbb", -14},
	}
	for _, c := range cases {
		got, err := NameToFifths(c.name)
		if err != nil {
			t.Fatalf("NameToFifths(%q) failed: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("NameToFifths(%q) = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestNameToFifthsInvalid(t *testing.T) {
	for _, name := range []string{"", "H", "C%"} {
		if _, err := NameToFifths(name); err == nil {
			t.Errorf("Expected error for %q", name)
		}
	}
}

func TestNameToPC(t *testing.T) {
	cases := []struct {
		name string
		want int
	}{
		{"C", 0},
		{"c", 0},
		{"G", 7},
		{"Ab", 8},
		{"F#", 6},
		{"Gb", 6},
		{"B", 11},
	}
	for _, c := range cases {
		got, err := NameToPC(c.name)
		if err != nil {
			t.Fatalf("NameToPC(%q) failed: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("NameToPC(%q) = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestFifthsToName(t *testing.T) {
	cases := []struct {
		fifths int
		want   string
	}{
		{0, "C"},
		{1, "G"},
		{-1, "F"},
		{6, "F#"},
		{-4, "Ab"},
		{-7, "Cb"},
		{12, "B#"},
	}
	for _, c := range cases {
		if got := FifthsToName(c.fifths); got != c.want {
			t.Errorf("FifthsToName(%d) = %q, want %q", c.fifths, got, c.want)
		}
	}
}

func TestFifthsNameRoundTrip(t *testing.T) {
	for f := -12; f <= 12; f++ {
		back, err := NameToFifths(FifthsToName(f))
		if err != nil {
			t.Fatalf("round trip of %d failed: %v", f, err)
		}
		if back != f {
			t.Errorf("Round trip of %d gave %d", f, back)
		}
	}
}

func TestPCToName(t *testing.T) {
	if got := PCToName(8); got != "G#" {
		t.Errorf("PCToName(8) = %q, want G#", got)
	}
	if got := PCToName(-1); got != "B" {
		t.Errorf("PCToName(-1) = %q, want B", got)
	}
	if got := PCToName(12); got != "C" {
		t.Errorf("PCToName(12) = %q, want C", got)
	}
}

func TestRomanToFifths(t *testing.T) {
	cases := []struct {
		numeral string
		minor   bool
		want    int
	}{
		{"I", false, 0},
		{"V", false, 1},
		{"IV", false, -1},
		{"vi", false, 3},
		{"iii", false, 4},
		{"bVII", false, -2},
		{"#iv", false, 6},
		{"i", true, 0},
		{"III", true, -3},
		{"VII", true, -2},
		{"VI", true, -4},
		{"v", true, 1},
	}
	for _, c := range cases {
		got, err := RomanToFifths(c.numeral, c.minor)
		if err != nil {
			t.Fatalf("RomanToFifths(%q, %v) failed: %v", c.numeral, c.minor, err)
		}
		if got != c.want {
			t.Errorf("RomanToFifths(%q, %v) = %d, want %d", c.numeral, c.minor, got, c.want)
		}
	}
}

func TestRomanToFifthsInvalid(t *testing.T) {
	for _, numeral := range []string{"", "VIII", "X", "b"} {
		if _, err := RomanToFifths(numeral, false); err == nil {
			t.Errorf("Expected error for %q", numeral)
		}
	}
}

func TestIsMinor(t *testing.T) {
	if !IsMinor("c#") {
		t.Error("Expected c# to be minor")
	}
	if IsMinor("Ab") {
		t.Error("Expected Ab to be major")
	}
}

func TestIsMinorNumeral(t *testing.T) {
	if !IsMinorNumeral("bvii") {
		t.Error("Expected bvii to be minor")
	}
	if IsMinorNumeral("bVII") {
		t.Error("Expected bVII to be major")
	}
}
