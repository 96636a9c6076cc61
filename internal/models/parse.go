package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseNeed parses the positional requirement string. Entries are
// comma-separated pos:count pairs where pos is the upstream code (1..4) or
// the short label (GK/DEF/MID/FWD); a bare pos counts as one slot. Both ","
// and ";" separate entries. Malformed input is rejected outright — no
// best-effort skipping — so bad requests fail before any scoring runs.
func ParseNeed(s string) (map[Position]int, error) {
	s = strings.ReplaceAll(s, ";", ",")
	out := make(map[Position]int)

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		posPart, countPart, hasCount := strings.Cut(part, ":")
		pos, err := parsePosition(strings.TrimSpace(posPart))
		if err != nil {
			return nil, err
		}

		count := 1
		if hasCount {
			count, err = strconv.Atoi(strings.TrimSpace(countPart))
			if err != nil {
				return nil, fmt.Errorf("invalid need count %q", countPart)
			}
			if count <= 0 {
				return nil, fmt.Errorf("need count must be positive, got %d", count)
			}
		}
		out[pos] += count
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("need is empty")
	}
	return out, nil
}

func parsePosition(s string) (Position, error) {
	if n, err := strconv.Atoi(s); err == nil {
		pos := Position(n)
		if !pos.Valid() {
			return 0, fmt.Errorf("invalid position code %d", n)
		}
		return pos, nil
	}
	if pos, ok := PositionFromCode(strings.ToUpper(s)); ok {
		return pos, nil
	}
	return 0, fmt.Errorf("invalid position %q", s)
}

// ParseExclude parses the comma-separated player identifier list. An empty
// string is a valid empty set.
func ParseExclude(s string) (map[int]struct{}, error) {
	out := make(map[int]struct{})
	s = strings.ReplaceAll(s, ";", ",")
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid player id %q", tok)
		}
		out[id] = struct{}{}
	}
	return out, nil
}
