package compare

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestComputeDiff_PermutedCopyIsEmpty(t *testing.T) {
	oldValue := decode(t, `[
		{"id": "GO-2021-0061", "aliases": ["CVE-2021-1", "GHSA-1"], "affected": [{"ranges": [1, 2, 3]}, {"ranges": []}]},
		{"id": "GO-2021-0062", "aliases": [], "withdrawn": null}
	]`)
	newValue := decode(t, `[
		{"id": "GO-2021-0062", "withdrawn": null, "aliases": []},
		{"affected": [{"ranges": []}, {"ranges": [3, 1, 2]}], "aliases": ["GHSA-1", "CVE-2021-1"], "id": "GO-2021-0061"}
	]`)

	d := ComputeDiff(oldValue, newValue)

	assert.True(t, d.Empty())
	assert.True(t, Equal(oldValue, newValue))
	assert.Empty(t, TextDiff(oldValue, newValue))
}

func TestComputeDiff_IdenticalScalars(t *testing.T) {
	for _, s := range []string{`1`, `"x"`, `true`, `null`, `{}`, `[]`} {
		assert.True(t, ComputeDiff(decode(t, s), decode(t, s)).Empty(), s)
	}
}

func TestComputeDiff_ValueChangeIgnoresOrder(t *testing.T) {
	d := ComputeDiff(decode(t, `{"a": 1, "b": [1, 2, 3]}`), decode(t, `{"a": 2, "b": [3, 2, 1]}`))

	require.Len(t, d, 1)
	assert.Equal(t, Change{Path: "a", Kind: KindValuesChanged, Old: 1.0, New: 2.0}, d[0])

	byPath := d.ByPath()
	assert.Contains(t, byPath, "a")
	assert.NotContains(t, byPath, "b")
}

func TestComputeDiff_ArrayMembership(t *testing.T) {
	d := ComputeDiff(decode(t, `{"b": [1, 2, 3]}`), decode(t, `{"b": [1, 2, 4]}`))

	assert.Equal(t, Diff{
		{Path: "b[2]", Kind: KindIterableItemRemoved, Old: 3.0},
		{Path: "b[2]", Kind: KindIterableItemAdded, New: 4.0},
	}, d)
}

func TestComputeDiff_Multiset(t *testing.T) {
	d := ComputeDiff(decode(t, `[1, 1, 2]`), decode(t, `[2, 1]`))

	assert.Equal(t, Diff{{Path: "[1]", Kind: KindIterableItemRemoved, Old: 1.0}}, d)
}

func TestComputeDiff_DictionaryItems(t *testing.T) {
	d := ComputeDiff(
		decode(t, `{"id": "X", "details": "old", "modified": "2021"}`),
		decode(t, `{"id": "X", "summary": "new", "modified": "2021"}`),
	)

	assert.Equal(t, Diff{
		{Path: "details", Kind: KindDictionaryItemRemoved, Old: "old"},
		{Path: "summary", Kind: KindDictionaryItemAdded, New: "new"},
	}, d)
}

func TestComputeDiff_TypeChanges(t *testing.T) {
	tests := []struct {
		name string
		old  string
		new  string
		path string
	}{
		{"Number to string", `{"v": 1}`, `{"v": "1"}`, "v"},
		{"Null to object", `{"v": null}`, `{"v": {}}`, "v"},
		{"Array to object", `{"v": []}`, `{"v": {}}`, "v"},
		{"Root object to array", `{}`, `[]`, RootPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ComputeDiff(decode(t, tt.old), decode(t, tt.new))
			require.Len(t, d, 1)
			assert.Equal(t, tt.path, d[0].Path)
			assert.Equal(t, KindTypeChanges, d[0].Kind)
		})
	}
}

func TestComputeDiff_NestedPaths(t *testing.T) {
	d := ComputeDiff(
		decode(t, `{"affected": [{"package": {"name": "a", "ecosystem": "Go"}}]}`),
		decode(t, `{"affected": [{"package": {"name": "a", "ecosystem": "PyPI"}}]}`),
	)

	// Unequal array elements are reported as membership changes, not paired.
	assert.Equal(t, []string{"affected[0]", "affected[0]"}, []string{d[0].Path, d[1].Path})
	assert.Equal(t, KindIterableItemRemoved, d[0].Kind)
	assert.Equal(t, KindIterableItemAdded, d[1].Kind)

	d = ComputeDiff(
		decode(t, `{"database_specific": {"source": {"url": "a"}}}`),
		decode(t, `{"database_specific": {"source": {"url": "b"}}}`),
	)
	require.Len(t, d, 1)
	assert.Equal(t, "database_specific.source.url", d[0].Path)
}

func TestDiff_MarshalLogObject(t *testing.T) {
	d := ComputeDiff(decode(t, `{"a": 1, "b": [1, 2, 3]}`), decode(t, `{"a": 2, "b": [1, 2, 4]}`))

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, d.MarshalLogObject(enc))

	assert.Equal(t, map[string]any{
		"values_changed":        map[string]any{"a": map[string]any{"old_value": 1.0, "new_value": 2.0}},
		"iterable_item_removed": map[string]any{"b[2]": 3.0},
		"iterable_item_added":   map[string]any{"b[2]": 4.0},
	}, enc.Fields)
}

func decodeNumbers(t *testing.T, s string) any {
	t.Helper()
	v, err := decodeJSON([]byte(s))
	require.NoError(t, err)
	return v
}

func TestComputeDiff_Numbers(t *testing.T) {
	d := ComputeDiff(decodeNumbers(t, `{"n": 9007199254740993}`), decodeNumbers(t, `{"n": 9007199254740992}`))
	require.Len(t, d, 1)
	assert.Equal(t, KindValuesChanged, d[0].Kind)

	// Same value, different spelling.
	assert.True(t, ComputeDiff(decodeNumbers(t, `[1, 2.50, 1e2]`), decodeNumbers(t, `[100, 1.0, 2.5]`)).Empty())
	assert.True(t, Equal(decodeNumbers(t, `{"n": 1.0}`), decode(t, `{"n": 1}`)))

	d = ComputeDiff(decodeNumbers(t, `[1, 2]`), decodeNumbers(t, `[1, 3]`))
	assert.Equal(t, Diff{
		{Path: "[1]", Kind: KindIterableItemRemoved, Old: json.Number("2")},
		{Path: "[1]", Kind: KindIterableItemAdded, New: json.Number("3")},
	}, d)
}

// packageAnswer builds a pkgs answer with entries advisories of versions
// versions each. reversed flips both the entry and the version order.
func packageAnswer(entries, versions int, reversed bool) []any {
	out := make([]any, entries)
	for i := 0; i < entries; i++ {
		vs := make([]any, versions)
		for j := 0; j < versions; j++ {
			v := j
			if reversed {
				v = versions - 1 - j
			}
			vs[j] = fmt.Sprintf("1.%d.%d", i, v)
		}
		idx := i
		if reversed {
			idx = entries - 1 - i
		}
		out[idx] = map[string]any{
			"id":       fmt.Sprintf("GHSA-%04d", i),
			"modified": "2023-01-01T00:00:00Z",
			"affected": []any{map[string]any{
				"package":  map[string]any{"name": "left-pad", "ecosystem": "npm"},
				"versions": vs,
			}},
		}
	}
	return out
}

func TestComputeDiff_LargePackageAnswer(t *testing.T) {
	oldValue := packageAnswer(250, 200, false)
	newValue := packageAnswer(250, 200, true)

	start := time.Now()
	d := ComputeDiff(oldValue, newValue)
	elapsed := time.Since(start)

	assert.True(t, d.Empty())
	assert.Less(t, elapsed, time.Second)

	start = time.Now()
	assert.True(t, Equal(oldValue, newValue))
	assert.Less(t, time.Since(start), time.Second)
}
