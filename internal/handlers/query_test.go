package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return q
}

func TestNestQuery(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{"flat", "name=Edmundo&single=true",
			map[string]any{"name": "Edmundo", "single": "true"}},
		{"repeated", "tag=a&tag=b",
			map[string]any{"tag": []string{"a", "b"}}},
		{"nested", "user[name]=x&user[age]=30",
			map[string]any{"user": map[string]any{"name": "x", "age": "30"}}},
		{"deep", "a[b][c]=d",
			map[string]any{"a": map[string]any{"b": map[string]any{"c": "d"}}}},
		{"forced array", "tags[]=x",
			map[string]any{"tags": []string{"x"}}},
		{"conflict stays flat", "a=1&a[b]=2",
			map[string]any{"a": "1", "a[b]": "2"}},
		{"malformed", "a[b=1&[x]=2",
			map[string]any{"a[b": "1", "[x]": "2"}},
		{"empty", "", map[string]any{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, nestQuery(parseQuery(t, tc.raw)))
		})
	}
}

func TestSplitQueryKey(t *testing.T) {
	path, arr := splitQueryKey("user[address][city]")
	assert.Equal(t, []string{"user", "address", "city"}, path)
	assert.False(t, arr)

	path, arr = splitQueryKey("ids[]")
	assert.Equal(t, []string{"ids"}, path)
	assert.True(t, arr)

	path, arr = splitQueryKey("a[][b]")
	assert.Equal(t, []string{"a[][b]"}, path)
	assert.False(t, arr)
}
