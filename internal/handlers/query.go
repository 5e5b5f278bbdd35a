package handlers

import (
	"net/url"
	"sort"
	"strings"
)

// nestQuery turns query parameters into a JSON-ready object. Bracketed
// keys nest (user[name]=x gives {"user":{"name":"x"}}), a trailing []
// forces an array, and repeated keys become arrays. A key whose path
// collides with a value already set is kept flat under its raw name.
func nestQuery(q url.Values) map[string]any {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(q))
	for _, k := range keys {
		vs := q[k]
		path, forceArray := splitQueryKey(k)

		var v any = vs
		if len(vs) == 1 && !forceArray {
			v = vs[0]
		}

		if !setPath(out, path, v) {
			out[k] = v
		}
	}
	return out
}

// setPath stores v at path inside m, creating intermediate objects. It
// reports false, leaving m untouched, when the path runs into an existing
// value.
func setPath(m map[string]any, path []string, v any) bool {
	cur := m
	for i, seg := range path {
		existing, ok := cur[seg]
		if i == len(path)-1 {
			if ok {
				return false
			}
			cur[seg] = v
			return true
		}
		if !ok {
			// Check the rest of the path is free before creating anything.
			next := make(map[string]any)
			if !setPath(next, path[i+1:], v) {
				return false
			}
			cur[seg] = next
			return true
		}
		child, isMap := existing.(map[string]any)
		if !isMap {
			return false
		}
		cur = child
	}
	return false
}

// splitQueryKey splits "a[b][c]" into [a b c]. A final empty segment, as
// in "tags[]", is dropped and reported as forceArray. Keys that are not
// well formed come back whole.
func splitQueryKey(k string) (path []string, forceArray bool) {
	i := strings.IndexByte(k, '[')
	if i <= 0 {
		return []string{k}, false
	}
	path = []string{k[:i]}
	rest := k[i:]
	for rest != "" {
		if rest[0] != '[' {
			return []string{k}, false
		}
		j := strings.IndexByte(rest, ']')
		if j < 0 {
			return []string{k}, false
		}
		path = append(path, rest[1:j])
		rest = rest[j+1:]
	}
	if last := len(path) - 1; path[last] == "" {
		path = path[:last]
		forceArray = true
	}
	for _, seg := range path {
		if seg == "" {
			return []string{k}, false
		}
	}
	return path, forceArray
}
