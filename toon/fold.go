package toon

import "strings"

// ============================================================
// Key Folding
// ============================================================
//
// Under FoldSafe the encoder collapses chains of single-field objects into
// one dotted key: {"a":{"b":{"c":1}}} becomes "a.b.c: 1". Every joined
// segment must be a plain identifier without dots — the encoder is the side
// introducing ambiguity, so it holds itself to the stricter rule — and no
// sibling key may already start with the folded prefix.

// foldField resolves a field to its emitted key and value. Without folding
// (or when no hop is possible) it returns the field unchanged. A
// non-foldable segment mid-chain stops the fold there: the accumulated
// prefix is emitted with the remaining object nested beneath it.
func (e *emitter) foldField(owner *Value, f Field) (string, *Value) {
	if e.opts.KeyFolding != FoldSafe {
		return f.Key, f.Value
	}
	v := f.Value
	if v.Kind() != KindObject || v.Len() == 0 {
		return f.Key, f.Value
	}
	if !isFoldableSegment(f.Key) {
		return f.Key, f.Value
	}
	if siblingCollides(owner, f.Key) {
		return f.Key, f.Value
	}

	prefix := f.Key
	segs := 1
	cur := v
	for cur.Kind() == KindObject && len(cur.objVal) == 1 {
		child := cur.objVal[0]
		if !isFoldableSegment(child.Key) {
			break
		}
		if segs+1 > e.opts.FlattenDepth {
			break
		}
		prefix += "." + child.Key
		segs++
		cur = child.Value
	}
	if segs == 1 {
		return f.Key, f.Value
	}
	return prefix, cur
}

// siblingCollides reports whether any other key of the owning object
// starts with key + "." — folding under that prefix would merge two
// distinct fields on re-decode.
func siblingCollides(owner *Value, key string) bool {
	pfx := key + "."
	for _, s := range owner.objVal {
		if s.Key != key && strings.HasPrefix(s.Key, pfx) {
			return true
		}
	}
	return false
}
