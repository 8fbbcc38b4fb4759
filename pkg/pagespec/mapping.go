package pagespec

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ParseMapping parses a per-image override mapping. The source can be a
// path to a CSV file (one "basename:value" or "basename,value" entry
// per line, # comments and blank lines ignored) or an inline
// comma-separated string of "basename:value" pairs.
//
// Parsing is deliberately permissive: entries whose value fails
// parseValue are skipped, leaving the run default in effect for that
// basename. Keys are reduced to their basename so mapping files can
// carry full paths.
func ParseMapping[T any](source string, parseValue func(string) (T, error)) (map[string]T, error) {
	mapping := make(map[string]T)
	source = strings.TrimSpace(source)
	if source == "" {
		return mapping, nil
	}

	if info, err := os.Stat(source); err == nil && info.Mode().IsRegular() {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			addMappingEntry(mapping, line, parseValue)
		}
		return mapping, scanner.Err()
	}

	for _, pair := range strings.Split(source, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		addMappingEntry(mapping, pair, parseValue)
	}
	return mapping, nil
}

// addMappingEntry splits one "key:value" (or "key,value") entry and
// stores the parsed value. Entries without a separator or with an
// unparseable value are dropped silently.
func addMappingEntry[T any](mapping map[string]T, entry string, parseValue func(string) (T, error)) {
	var key, raw string
	if i := strings.Index(entry, ":"); i >= 0 {
		key, raw = entry[:i], entry[i+1:]
	} else if i := strings.Index(entry, ","); i >= 0 {
		key, raw = entry[:i], entry[i+1:]
	} else {
		return
	}

	key = filepath.Base(strings.TrimSpace(key))
	if key == "" || key == "." {
		return
	}
	if v, err := parseValue(strings.TrimSpace(raw)); err == nil {
		mapping[key] = v
	}
}
