package toon

import (
	"io"
	"strconv"
	"strings"
)

// Encode serialises a Value tree to a TOON document. Encoding never fails
// for in-domain input: non-finite floats are normalised to null.
func Encode(v *Value, opts Options) []byte {
	return []byte(EncodeString(v, opts))
}

// EncodeString serialises a Value tree to a TOON document string.
func EncodeString(v *Value, opts Options) string {
	e := &emitter{opts: opts.normalized()}
	e.encodeRoot(v)
	return e.sb.String()
}

// EncodeTo writes the encoded document to w.
func EncodeTo(w io.Writer, v *Value, opts Options) error {
	_, err := io.WriteString(w, EncodeString(v, opts))
	return err
}

// emitter writes the line stream for one Encode call.
type emitter struct {
	sb   strings.Builder
	opts Options
}

func (e *emitter) encodeRoot(v *Value) {
	switch v.Kind() {
	case KindObject:
		fields, _ := v.Fields()
		if len(fields) == 0 {
			return
		}
		e.emitFields(v, 0)
	case KindArray:
		e.emitArray("", v, 0, false)
	default:
		e.sb.WriteString(e.canonPrimitive(v))
		e.sb.WriteByte('\n')
	}
}

// ============================================================
// Objects
// ============================================================

func (e *emitter) emitFields(obj *Value, depth int) {
	for _, f := range obj.objVal {
		e.emitField(obj, f, depth)
	}
}

func (e *emitter) emitField(owner *Value, f Field, depth int) {
	key, val := e.foldField(owner, f)
	switch val.Kind() {
	case KindObject:
		e.writeIndent(depth)
		e.sb.WriteString(encodeKey(key))
		e.sb.WriteString(":\n")
		e.emitFields(val, depth+1)
	case KindArray:
		e.emitArray(key, val, depth, false)
	default:
		e.writeIndent(depth)
		e.sb.WriteString(encodeKey(key))
		e.sb.WriteString(": ")
		e.sb.WriteString(e.canonPrimitive(val))
		e.sb.WriteByte('\n')
	}
}

// ============================================================
// Array Shape Selection
// ============================================================

type arrayShape uint8

const (
	shapeEmpty arrayShape = iota
	shapeInline
	shapeTabular
	shapeList
)

// chooseShape inspects the array: tabular for non-empty arrays of objects
// with identical ordered key-sets and primitive values, inline when every
// element is primitive, expanded list otherwise.
func chooseShape(arr *Value) (arrayShape, []string) {
	items := arr.arrVal
	if len(items) == 0 {
		return shapeEmpty, nil
	}
	if cols, ok := tabularColumns(items); ok {
		return shapeTabular, cols
	}
	for _, it := range items {
		if !isPrimitive(it) {
			return shapeList, nil
		}
	}
	return shapeInline, nil
}

func isPrimitive(v *Value) bool {
	switch v.Kind() {
	case KindArray, KindObject:
		return false
	default:
		return true
	}
}

func tabularColumns(items []*Value) ([]string, bool) {
	first := items[0]
	if first.Kind() != KindObject || first.Len() == 0 {
		return nil, false
	}
	cols := make([]string, len(first.objVal))
	for i, f := range first.objVal {
		cols[i] = f.Key
	}
	for _, it := range items {
		if it.Kind() != KindObject || len(it.objVal) != len(cols) {
			return nil, false
		}
		for i, f := range it.objVal {
			if f.Key != cols[i] || !isPrimitive(f.Value) {
				return nil, false
			}
		}
	}
	return cols, true
}

// ============================================================
// Array Emission
// ============================================================

// emitArray writes an array with an optional key, at the given depth. When
// onHyphen is set the header line continues a "- " list item already
// started by the caller; the body then sits one level below the hyphen.
func (e *emitter) emitArray(key string, arr *Value, depth int, onHyphen bool) {
	shape, cols := chooseShape(arr)
	n := arr.Len()

	if !onHyphen {
		e.writeIndent(depth)
	}
	if key != "" {
		e.sb.WriteString(encodeKey(key))
	}
	e.sb.WriteByte('[')
	e.sb.WriteString(strconv.Itoa(n))
	if e.opts.Delimiter != ',' {
		e.sb.WriteByte(e.opts.Delimiter)
	}
	e.sb.WriteByte(']')

	switch shape {
	case shapeEmpty:
		e.sb.WriteString(":\n")

	case shapeInline:
		e.sb.WriteString(": ")
		for i, it := range arr.arrVal {
			if i > 0 {
				e.sb.WriteByte(e.opts.Delimiter)
			}
			e.sb.WriteString(e.canonPrimitive(it))
		}
		e.sb.WriteByte('\n')

	case shapeTabular:
		e.sb.WriteByte('{')
		for i, col := range cols {
			if i > 0 {
				e.sb.WriteByte(e.opts.Delimiter)
			}
			e.sb.WriteString(encodeKey(col))
		}
		e.sb.WriteString("}:\n")
		for _, row := range arr.arrVal {
			e.writeIndent(depth + 1)
			for i, f := range row.objVal {
				if i > 0 {
					e.sb.WriteByte(e.opts.Delimiter)
				}
				e.sb.WriteString(e.canonPrimitive(f.Value))
			}
			e.sb.WriteByte('\n')
		}

	case shapeList:
		e.sb.WriteString(":\n")
		for _, it := range arr.arrVal {
			e.emitListItem(it, depth+1)
		}
	}
}

// emitListItem writes one "- " item of an expanded list at the body depth.
// An object item puts its first field on the hyphen line when that field is
// a primitive, an array or an empty object; a non-empty object-valued first
// field forces the bare "-" form with every field one level below.
func (e *emitter) emitListItem(item *Value, depth int) {
	switch item.Kind() {
	case KindArray:
		e.writeIndent(depth)
		e.sb.WriteString("- ")
		e.emitArray("", item, depth, true)

	case KindObject:
		if item.Len() == 0 {
			e.writeIndent(depth)
			e.sb.WriteString("-\n")
			return
		}
		first := item.objVal[0]
		switch first.Value.Kind() {
		case KindArray:
			e.writeIndent(depth)
			e.sb.WriteString("- ")
			e.emitArray(first.Key, first.Value, depth, true)
		case KindObject:
			if first.Value.Len() == 0 {
				e.writeIndent(depth)
				e.sb.WriteString("- ")
				e.sb.WriteString(encodeKey(first.Key))
				e.sb.WriteString(":\n")
				break
			}
			// First field needs its own nesting: emit the whole item
			// one level below a bare hyphen.
			e.writeIndent(depth)
			e.sb.WriteString("-\n")
			e.emitFields(item, depth+1)
			return
		default:
			e.writeIndent(depth)
			e.sb.WriteString("- ")
			e.sb.WriteString(encodeKey(first.Key))
			e.sb.WriteString(": ")
			e.sb.WriteString(e.canonPrimitive(first.Value))
			e.sb.WriteByte('\n')
		}
		for _, f := range item.objVal[1:] {
			e.emitField(item, f, depth+1)
		}

	default:
		e.writeIndent(depth)
		e.sb.WriteString("- ")
		e.sb.WriteString(e.canonPrimitive(item))
		e.sb.WriteByte('\n')
	}
}

// ============================================================
// Primitives and Indentation
// ============================================================

// canonPrimitive returns the canonical token for a primitive value. The
// document delimiter is the active delimiter everywhere the encoder emits
// cells, so a single check covers both quoting rules.
func (e *emitter) canonPrimitive(v *Value) string {
	switch v.Kind() {
	case KindNull:
		return canonNull()
	case KindBool:
		return canonBool(v.boolVal)
	case KindInt:
		return canonInt(v.intVal)
	case KindFloat:
		return canonFloat(v.floatVal)
	case KindString:
		if needsQuotes(v.strVal, e.opts.Delimiter, e.opts.Delimiter) {
			return quoteString(v.strVal)
		}
		return v.strVal
	default:
		return canonNull()
	}
}

func (e *emitter) writeIndent(depth int) {
	for i := 0; i < depth*e.opts.IndentSize; i++ {
		e.sb.WriteByte(' ')
	}
}
