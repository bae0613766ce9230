// Package config reads the flat key=value configuration and parameters files
// named in spec.md §6. The reader is a direct port of the Scanner loop both
// Java ProjectSettings constructors use (split on the first "=", skip blank
// lines and "#" comments) rather than a general-purpose format library — the
// wire format is fixed by the spec and nothing in the retrieval pack ships a
// matching parser.
//
// As a supplemented feature (SPEC_FULL.md §"Supplemented features" item 6),
// a config file may end with a line reading exactly "overrides" followed by
// an hjson object; that block is parsed with github.com/hjson/hjson-go, the
// same library the teacher repo uses for its own parameter files, and handed
// back as a generic map for callers that want to override list-shaped
// settings inline.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hjson/hjson-go"

	"github.com/anthonyohare/NIBtbClusterModel/internal/errs"
)

// KV is a flat key=value map with typed accessors that report ErrConfig for
// missing or malformed entries.
type KV map[string]string

func (kv KV) Has(key string) bool {
	_, ok := kv[key]
	return ok
}

func (kv KV) String(key string) (string, error) {
	v, ok := kv[key]
	if !ok {
		return "", fmt.Errorf("%w: missing key %q", errs.ErrConfig, key)
	}
	return v, nil
}

func (kv KV) StringOr(key, def string) string {
	if v, ok := kv[key]; ok {
		return v
	}
	return def
}

func (kv KV) Int(key string) (int, error) {
	s, err := kv.String(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: key %q is not an integer: %v", errs.ErrConfig, key, err)
	}
	return n, nil
}

func (kv KV) IntOr(key string, def int) int {
	if v, ok := kv[key]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func (kv KV) Float(key string) (float64, error) {
	s, err := kv.String(key)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: key %q is not a number: %v", errs.ErrConfig, key, err)
	}
	return f, nil
}

func (kv KV) FloatOr(key string, def float64) float64 {
	if v, ok := kv[key]; ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func (kv KV) Bool(key string) (bool, error) {
	s, err := kv.String(key)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%w: key %q is not a boolean: %q", errs.ErrConfig, key, s)
	}
}

func (kv KV) BoolOr(key string, def bool) bool {
	if b, err := kv.Bool(key); err == nil {
		return b
	}
	return def
}

// Range is an inclusive [Lo, Hi] prior bound, parsed from "lo:hi" strings.
type Range struct {
	Lo, Hi float64
}

func (kv KV) Range(key string) (Range, error) {
	s, err := kv.String(key)
	if err != nil {
		return Range{}, err
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("%w: key %q range %q must be lo:hi", errs.ErrConfig, key, s)
	}
	lo, errLo := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	hi, errHi := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLo != nil || errHi != nil {
		return Range{}, fmt.Errorf("%w: key %q range %q is not numeric", errs.ErrConfig, key, s)
	}
	return Range{Lo: lo, Hi: hi}, nil
}

// ParseFile reads path as key=value lines (blank lines and "#" comments
// ignored) up to an optional "overrides" line, after which the remainder of
// the file is parsed as a single hjson value and returned as overrides.
func ParseFile(path string) (KV, map[string]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening %s: %v", errs.ErrConfig, path, err)
	}
	defer f.Close()

	kv := make(KV)
	var overridesBlock strings.Builder
	inOverrides := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if inOverrides {
			overridesBlock.WriteString(line)
			overridesBlock.WriteByte('\n')
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if trimmed == "overrides" {
			inOverrides = true
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			return nil, nil, fmt.Errorf("%w: %s: line %q has no '='", errs.ErrConfig, path, line)
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		kv[key] = val
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: reading %s: %v", errs.ErrConfig, path, err)
	}

	var overrides map[string]interface{}
	if inOverrides && strings.TrimSpace(overridesBlock.String()) != "" {
		if err := hjson.Unmarshal([]byte(overridesBlock.String()), &overrides); err != nil {
			return nil, nil, fmt.Errorf("%w: %s: invalid overrides block: %v", errs.ErrConfig, path, err)
		}
	}
	return kv, overrides, nil
}
