package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestParseFileBasic(t *testing.T) {
	path := writeTemp(t, "# a comment\n\nfoo = bar\nnum=42\n")
	kv, overrides, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if overrides != nil {
		t.Fatalf("expected no overrides block, got %v", overrides)
	}
	if v, _ := kv.String("foo"); v != "bar" {
		t.Fatalf("foo = %q, want bar", v)
	}
	if n, err := kv.Int("num"); err != nil || n != 42 {
		t.Fatalf("num = %d, err=%v, want 42", n, err)
	}
}

func TestParseFileOverridesBlock(t *testing.T) {
	path := writeTemp(t, "foo = bar\noverrides\n{\n  samplingRates: [1, 2, 3]\n}\n")
	kv, overrides, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if v, _ := kv.String("foo"); v != "bar" {
		t.Fatalf("foo = %q, want bar", v)
	}
	if overrides == nil {
		t.Fatalf("expected overrides block to be parsed")
	}
	rates, ok := overrides["samplingRates"].([]interface{})
	if !ok || len(rates) != 3 {
		t.Fatalf("overrides[samplingRates] = %v", overrides["samplingRates"])
	}
}

func TestParseFileMissingEquals(t *testing.T) {
	path := writeTemp(t, "not-a-kv-line\n")
	if _, _, err := ParseFile(path); err == nil {
		t.Fatalf("expected error for line without '='")
	}
}

func TestRangeParsing(t *testing.T) {
	path := writeTemp(t, "betaRange = 0.01:0.5\n")
	kv, _, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	r, err := kv.Range("betaRange")
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if r.Lo != 0.01 || r.Hi != 0.5 {
		t.Fatalf("Range = %+v", r)
	}
}

func TestParametersRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.txt")
	p := &Parameters{Beta: 0.01, Sigma: 0.2, Gamma: 0.3, Alpha: 0.04, AlphaPrime: 0.05, TestSensitivity: 0.8, MutationRate: 1.5}
	if err := WriteParametersFile(path, p); err != nil {
		t.Fatalf("WriteParametersFile: %v", err)
	}
	got, err := ReadParametersFile(path)
	if err != nil {
		t.Fatalf("ReadParametersFile: %v", err)
	}
	if got.Beta != p.Beta || got.MutationRate != p.MutationRate || got.HasBadgerLifetime {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestParametersWithBadgerLifetime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.txt")
	p := &Parameters{Beta: 1, Sigma: 1, Gamma: 1, Alpha: 1, AlphaPrime: 1, TestSensitivity: 1, MutationRate: 1, InfectedBadgerLifetime: 365, HasBadgerLifetime: true}
	if err := WriteParametersFile(path, p); err != nil {
		t.Fatalf("WriteParametersFile: %v", err)
	}
	got, err := ReadParametersFile(path)
	if err != nil {
		t.Fatalf("ReadParametersFile: %v", err)
	}
	if !got.HasBadgerLifetime || got.Dimension() != 8 {
		t.Fatalf("expected 8-dimensional parameters, got %+v", got)
	}
	vec := got.Vector()
	if len(vec) != 8 {
		t.Fatalf("Vector() length = %d, want 8", len(vec))
	}
}

func TestDiversityModelParsing(t *testing.T) {
	for _, s := range []string{"MAXIMUM", "MINIMUM", "INTERMEDIATE"} {
		if _, err := ParseDiversityModel(s); err != nil {
			t.Fatalf("ParseDiversityModel(%q): %v", s, err)
		}
	}
	if _, err := ParseDiversityModel("BOGUS"); err == nil {
		t.Fatalf("expected error for unknown diversity model")
	}
}
