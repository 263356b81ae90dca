//go:build unit || e2e

package testutil

import (
	"strconv"
	"strings"
)

// Field sets or, for a nil value, deletes the key at a dotted path.
// Numeric segments index into arrays: "participants.0.first_name".
func Field(path string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		keys := strings.Split(path, ".")
		var cur any = m
		for _, k := range keys[:len(keys)-1] {
			cur = step(cur, k)
			if cur == nil {
				return
			}
		}
		last := keys[len(keys)-1]
		switch node := cur.(type) {
		case map[string]any:
			if value == nil {
				delete(node, last)
			} else {
				node[last] = value
			}
		case []any:
			if i, err := strconv.Atoi(last); err == nil && i < len(node) {
				node[i] = value
			}
		}
	}
}

func step(node any, key string) any {
	switch n := node.(type) {
	case map[string]any:
		return n[key]
	case []any:
		i, err := strconv.Atoi(key)
		if err != nil || i >= len(n) {
			return nil
		}
		return n[i]
	}
	return nil
}
