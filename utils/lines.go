package utils

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ParseIndexedLines reads "<prefix><k> = <value>" lines. Indices must run 0, 1, 2, ...
// without gaps or repeats. Blank lines and lines starting with '#' are skipped.
// The returned values are in index order.
func ParseIndexedLines(text, prefix string) ([]string, error) {
	var values []string
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '='", lineNo)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !strings.HasPrefix(key, prefix) {
			return nil, fmt.Errorf("line %d: expected key with prefix %q, got %q", lineNo, prefix, key)
		}
		idx, err := strconv.Atoi(key[len(prefix):])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad index in %q: %w", lineNo, key, err)
		}
		if idx != len(values) {
			return nil, fmt.Errorf("line %d: expected index %d, got %d", lineNo, len(values), idx)
		}
		values = append(values, value)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// FormatIndexedLines is the inverse of ParseIndexedLines.
func FormatIndexedLines(prefix string, values []string) string {
	var sb strings.Builder
	for i, v := range values {
		fmt.Fprintf(&sb, "%s%d = %s\n", prefix, i, v)
	}
	return sb.String()
}
