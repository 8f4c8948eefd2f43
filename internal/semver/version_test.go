package semver

import "testing"

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"1.2.3",
		"0.0.0",
		"1.2.3-alpha.1",
		"1.2.3+build.5",
		"1.2.3-rc.1+exp.sha.5114f85",
	}

	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			v, err := Parse(s)
			if err != nil {
				t.Fatalf("Parse(%q): %v", s, err)
			}
			v2, err := Parse(v.String())
			if err != nil {
				t.Fatalf("re-parse %q: %v", v.String(), err)
			}
			if !v.Equal(v2) || v.Build != v2.Build {
				t.Fatalf("round trip mismatch: %+v != %+v", v, v2)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []string{"1", "1.2", "1.2.3.4", "a.b.c", "1.2.x", ""}
	for _, s := range cases {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q): expected error, got nil", s)
		}
	}
}

func TestOrdering(t *testing.T) {
	ordered := []string{
		"1.0.0-alpha",
		"1.0.0-alpha.1",
		"1.0.0-beta",
		"1.0.0",
		"1.0.1",
		"1.1.0",
		"2.0.0",
	}

	var versions []Version
	for _, s := range ordered {
		v, err := Parse(s)
		if err != nil {
			t.Fatal(err)
		}
		versions = append(versions, v)
	}

	for i := 0; i < len(versions)-1; i++ {
		a, b := versions[i], versions[i+1]
		if !a.Less(b) {
			t.Errorf("expected %s < %s", a, b)
		}
		if b.Compare(a) <= 0 {
			t.Errorf("expected %s > %s", b, a)
		}
	}
}

func TestBuildIgnoredInOrdering(t *testing.T) {
	a, _ := Parse("1.0.0+build1")
	b, _ := Parse("1.0.0+build2")
	if a.Compare(b) != 0 {
		t.Errorf("build metadata should not affect ordering: %v vs %v", a, b)
	}
}
