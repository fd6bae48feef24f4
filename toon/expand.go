package toon

import "strings"

// ============================================================
// Dotted-Path Expansion
// ============================================================

// assign stores a decoded (key, value) pair into an object. With path
// expansion enabled, an unquoted identifier key containing dots is split
// and walked, creating intermediate objects. Quoted keys pass through
// verbatim even when they contain dots.
func (d *decoder) assign(obj *Value, key string, quoted bool, val *Value, line int) *DecodeError {
	if d.opts.ExpandPaths == ExpandSafe && !quoted && expandableKey(key) {
		return d.setWithPath(obj, strings.Split(key, "."), val, line)
	}
	obj.Set(key, val)
	return nil
}

// expandableKey reports whether a key participates in expansion: an
// identifier with at least one dot and no empty segments.
func expandableKey(key string) bool {
	if !strings.Contains(key, ".") || !isIdentifier(key) {
		return false
	}
	for _, seg := range strings.Split(key, ".") {
		if seg == "" {
			return false
		}
	}
	return true
}

// setWithPath walks/creates intermediate objects along the path and
// assigns at the leaf. Collisions with non-object intermediates fail in
// strict mode and resolve last-write-wins otherwise; object-object leaf
// collisions always deep-merge.
func (d *decoder) setWithPath(obj *Value, segs []string, val *Value, line int) *DecodeError {
	cur := obj
	for i := 0; i < len(segs)-1; i++ {
		seg := segs[i]
		existing := cur.Get(seg)
		if existing == nil {
			next := Obj()
			cur.Set(seg, next)
			cur = next
			continue
		}
		if existing.Kind() == KindObject {
			cur = existing
			continue
		}
		if d.opts.Strict {
			return decErr(line, "Expansion conflict at path '%s' (object vs primitive)", strings.Join(segs[:i+1], "."))
		}
		next := Obj()
		cur.Set(seg, next)
		cur = next
	}

	leaf := segs[len(segs)-1]
	old := cur.Get(leaf)
	if old == nil {
		cur.Set(leaf, val)
		return nil
	}
	if old.Kind() == KindObject && val.Kind() == KindObject {
		deepMergeInto(old, val)
		return nil
	}
	if (old.Kind() == KindObject) != (val.Kind() == KindObject) && d.opts.Strict {
		return decErr(line, "Expansion conflict at path '%s' (object vs primitive)", strings.Join(segs, "."))
	}
	cur.Set(leaf, val)
	return nil
}

// deepMergeInto merges src into dst: same key with objects on both sides
// recurses, anything else the incoming value wins.
func deepMergeInto(dst, src *Value) {
	if dst.Kind() != KindObject || src.Kind() != KindObject {
		return
	}
	for _, f := range src.objVal {
		old := dst.Get(f.Key)
		if old != nil && old.Kind() == KindObject && f.Value.Kind() == KindObject {
			deepMergeInto(old, f.Value)
			continue
		}
		dst.Set(f.Key, f.Value)
	}
}
