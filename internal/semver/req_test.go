package semver

import "testing"

func mustParse(t *testing.T, s string) Version {
	t.Helper()
	v, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return v
}

func TestCaretMatches(t *testing.T) {
	req, err := ParseReq("^1.2.3")
	if err != nil {
		t.Fatal(err)
	}

	matches := []string{"1.2.3", "1.2.4", "1.9.0"}
	for _, s := range matches {
		if !req.Matches(mustParse(t, s)) {
			t.Errorf("%s should match %s", req, s)
		}
	}

	noMatches := []string{"1.2.2", "2.0.0", "0.9.0"}
	for _, s := range noMatches {
		if req.Matches(mustParse(t, s)) {
			t.Errorf("%s should not match %s", req, s)
		}
	}
}

func TestCaretAcceptsHigherPrerelease(t *testing.T) {
	req, _ := ParseReq("^1.2.3")
	if !req.Matches(mustParse(t, "1.3.0-rc.1")) {
		t.Error("^1.2.3 should match 1.3.0-rc.1: same major and ordered above 1.2.3")
	}
}

func TestTildeMatches(t *testing.T) {
	req, _ := ParseReq("~1.2.3")
	if !req.Matches(mustParse(t, "1.2.9")) {
		t.Error("~1.2.3 should match 1.2.9")
	}
	if req.Matches(mustParse(t, "1.3.0")) {
		t.Error("~1.2.3 should not match 1.3.0")
	}
}

func TestWildcard(t *testing.T) {
	req, _ := ParseReq("*")
	if !req.Matches(mustParse(t, "0.0.0")) || !req.Matches(mustParse(t, "99.99.99")) {
		t.Error("wildcard should match everything")
	}
}

func TestPartialRequirement(t *testing.T) {
	req, err := ParseReq("^1")
	if err != nil {
		t.Fatalf("ParseReq(^1): %v", err)
	}
	if !req.Matches(mustParse(t, "1.5.0")) {
		t.Error("^1 should match 1.5.0")
	}
	if req.Matches(mustParse(t, "2.0.0")) {
		t.Error("^1 should not match 2.0.0")
	}
}

func TestSelectBestStablePrefersNonPrerelease(t *testing.T) {
	versions := []Version{
		mustParse(t, "1.0.0"),
		mustParse(t, "1.2.3"),
		mustParse(t, "1.3.0-rc.1"),
	}
	req, _ := ParseReq("^1.0.0")
	best, ok := SelectBestStable(versions, []VersionReq{req})
	if !ok || best.String() != "1.2.3" {
		t.Fatalf("expected 1.2.3, got %v ok=%v", best, ok)
	}
}

func TestSelectPreferredFallsBackToPrerelease(t *testing.T) {
	versions := []Version{mustParse(t, "1.3.0-rc.1")}
	req, _ := ParseReq("^1.0.0")
	best, ok := SelectPreferred(versions, []VersionReq{req}, false)
	if !ok || best.String() != "1.3.0-rc.1" {
		t.Fatalf("expected fallback to prerelease, got %v ok=%v", best, ok)
	}
}
