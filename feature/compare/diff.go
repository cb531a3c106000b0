package compare

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strconv"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"
)

// Kind classifies a single difference.
type Kind string

const (
	KindValuesChanged         Kind = "values_changed"
	KindTypeChanges           Kind = "type_changes"
	KindDictionaryItemAdded   Kind = "dictionary_item_added"
	KindDictionaryItemRemoved Kind = "dictionary_item_removed"
	KindIterableItemAdded     Kind = "iterable_item_added"
	KindIterableItemRemoved   Kind = "iterable_item_removed"
)

// RootPath names the top-level value.
const RootPath = "$"

// Change is one difference between the old and the new value at Path.
// Old is unset for additions and New for removals.
type Change struct {
	Path string
	Kind Kind
	Old  any
	New  any
}

// Diff is the list of changes between two JSON values, in document order.
// A nil or empty Diff means the values are equivalent.
type Diff []Change

// Empty reports whether the two compared values were equivalent.
func (d Diff) Empty() bool {
	return len(d) == 0
}

// ByPath groups the changes by JSON path.
func (d Diff) ByPath() map[string][]Change {
	out := make(map[string][]Change, len(d))
	for _, c := range d {
		out[c.Path] = append(out[c.Path], c)
	}
	return out
}

// MarshalLogObject renders the diff grouped by kind, then by path.
func (d Diff) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	byKind := make(map[Kind][]Change)
	var kinds []Kind
	for _, c := range d {
		if _, ok := byKind[c.Kind]; !ok {
			kinds = append(kinds, c.Kind)
		}
		byKind[c.Kind] = append(byKind[c.Kind], c)
	}

	for _, kind := range kinds {
		changes := byKind[kind]
		err := enc.AddObject(string(kind), zapcore.ObjectMarshalerFunc(func(inner zapcore.ObjectEncoder) error {
			for _, c := range changes {
				if err := inner.AddReflected(c.Path, c.describe()); err != nil {
					return err
				}
			}
			return nil
		}))
		if err != nil {
			return err
		}
	}
	return nil
}

func (c Change) describe() any {
	switch c.Kind {
	case KindValuesChanged:
		return map[string]any{"old_value": c.Old, "new_value": c.New}
	case KindTypeChanges:
		return map[string]any{
			"old_type": typeName(c.Old), "new_type": typeName(c.New),
			"old_value": c.Old, "new_value": c.New,
		}
	case KindDictionaryItemAdded, KindIterableItemAdded:
		return c.New
	default:
		return c.Old
	}
}

// Equal reports whether two decoded JSON values are equivalent when array
// element order is ignored. Both sides are normalized once, so go-cmp only
// compares already sorted trees.
func Equal(oldValue, newValue any) bool {
	return cmp.Equal(normalize(oldValue), normalize(newValue))
}

// TextDiff renders a human-readable go-cmp report of the two normalized values.
func TextDiff(oldValue, newValue any) string {
	return cmp.Diff(normalize(oldValue), normalize(newValue))
}

// ComputeDiff returns every difference between two decoded JSON values.
// Arrays are compared as multisets; map keys are significant.
// Numbers may be float64 or json.Number and compare by value.
func ComputeDiff(oldValue, newValue any) Diff {
	var d Diff
	walk(&d, RootPath, oldValue, newValue)
	return d
}

func walk(d *Diff, path string, a, b any) {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok {
			*d = append(*d, Change{Path: path, Kind: KindTypeChanges, Old: a, New: b})
			return
		}
		walkMap(d, path, av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok {
			*d = append(*d, Change{Path: path, Kind: KindTypeChanges, Old: a, New: b})
			return
		}
		walkSlice(d, path, av, bv)
	default:
		if typeName(a) != typeName(b) {
			*d = append(*d, Change{Path: path, Kind: KindTypeChanges, Old: a, New: b})
			return
		}
		if typeName(a) == "number" {
			if numberKey(a) != numberKey(b) {
				*d = append(*d, Change{Path: path, Kind: KindValuesChanged, Old: a, New: b})
			}
			return
		}
		if a != b {
			*d = append(*d, Change{Path: path, Kind: KindValuesChanged, Old: a, New: b})
		}
	}
}

func walkMap(d *Diff, path string, a, b map[string]any) {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		av, inA := a[k]
		bv, inB := b[k]
		child := keyPath(path, k)
		switch {
		case !inB:
			*d = append(*d, Change{Path: child, Kind: KindDictionaryItemRemoved, Old: av})
		case !inA:
			*d = append(*d, Change{Path: child, Kind: KindDictionaryItemAdded, New: bv})
		default:
			walk(d, child, av, bv)
		}
	}
}

// walkSlice pairs equal elements regardless of position. Each element of a
// pairs with at most one element of b, so repeated elements are counted.
func walkSlice(d *Diff, path string, a, b []any) {
	pending := make(map[string][]int, len(b))
	for j, v := range b {
		k := canonical(v)
		pending[k] = append(pending[k], j)
	}

	matched := make([]bool, len(b))
	for i, v := range a {
		k := canonical(v)
		if idx := pending[k]; len(idx) > 0 {
			matched[idx[0]] = true
			pending[k] = idx[1:]
			continue
		}
		*d = append(*d, Change{Path: indexPath(path, i), Kind: KindIterableItemRemoved, Old: v})
	}
	for j, v := range b {
		if !matched[j] {
			*d = append(*d, Change{Path: indexPath(path, j), Kind: KindIterableItemAdded, New: v})
		}
	}
}

func keyPath(parent, key string) string {
	if parent == RootPath {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	if parent == RootPath {
		parent = ""
	}
	return parent + "[" + strconv.Itoa(i) + "]"
}

// canonical returns a string that is identical for two values exactly when
// they are equivalent under multiset array semantics.
func canonical(v any) string {
	b, err := json.Marshal(normalize(v))
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(b)
}

// normalize sorts every array by the canonical form of its elements and
// rewrites numbers to a single spelling. encoding/json already emits map
// keys in sorted order.
func normalize(v any) any {
	switch tv := v.(type) {
	case float64, json.Number:
		return json.Number(numberKey(tv))
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = normalize(e)
		}
		return out
	case []any:
		type keyed struct {
			key   string
			value any
		}
		items := make([]keyed, len(tv))
		for i, e := range tv {
			n := normalize(e)
			b, _ := json.Marshal(n)
			items[i] = keyed{key: string(b), value: n}
		}
		sort.Slice(items, func(i, j int) bool { return items[i].key < items[j].key })
		out := make([]any, len(items))
		for i, it := range items {
			out[i] = it.value
		}
		return out
	default:
		return v
	}
}

// numberKey spells a JSON number so that equal values share one spelling.
// Integers are exact at any size; other values go through float64.
func numberKey(v any) string {
	r := new(big.Rat)
	switch n := v.(type) {
	case float64:
		if r.SetFloat64(n) == nil {
			return strconv.FormatFloat(n, 'g', -1, 64)
		}
	case json.Number:
		if _, ok := r.SetString(string(n)); !ok {
			return string(n)
		}
	default:
		return fmt.Sprint(v)
	}
	if r.IsInt() {
		return r.Num().String()
	}
	f, _ := r.Float64()
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case float64, json.Number:
		return "number"
	case string:
		return "string"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
