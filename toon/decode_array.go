package toon

import "strings"

// ============================================================
// Array Parsing
// ============================================================
//
// The header decides the shape: inline values on the header line, tabular
// rows under a field list, or an expanded "- " list. The limited flag is
// set when the header sits on a list-item hyphen line: there the body and
// the item's sibling fields share a depth, so the declared count bounds
// how many body lines belong to the array.

func (d *decoder) parseArrayBody(hdr *header, depth, line int, limited bool) (*Value, *DecodeError) {
	if hdr.inline != "" {
		return d.parseInlineArray(hdr, line)
	}
	if hdr.hasFields {
		return d.parseTabularArray(hdr, depth, line, limited)
	}
	return d.parseListArray(hdr, depth, line, limited)
}

// parseInlineArray splits the header tail on the active delimiter and
// parses each cell as a primitive.
func (d *decoder) parseInlineArray(hdr *header, line int) (*Value, *DecodeError) {
	cells := splitCells(hdr.inline, hdr.delim)
	arr := Arr()
	for _, cell := range cells {
		v, err := d.parsePrimitive(cell, line)
		if err != nil {
			return nil, err
		}
		arr.Append(v)
	}
	if d.opts.Strict && arr.Len() != hdr.count {
		return nil, decErr(line, "Inline array length mismatch. Header declared %d, found %d.", hdr.count, arr.Len())
	}
	return arr, nil
}

// nextBodyFrame positions the cursor on the next body line at depth+1.
// It returns nil when the array body has ended. A blank line strictly
// between body lines is a strict-mode violation; blanks that precede a
// dedent are padding after the array.
func (d *decoder) nextBodyFrame(depth int, done bool) (*frame, *DecodeError) {
	for {
		f := d.cur.peek()
		if f == nil {
			return nil, nil
		}
		if f.blank {
			n := d.cur.peekNonBlank()
			if n == nil || n.depth <= depth {
				return nil, nil
			}
			if d.opts.Strict && !done {
				return nil, decErr(f.line, "Blank line inside array")
			}
			d.cur.advance()
			continue
		}
		if f.depth <= depth || done {
			return nil, nil
		}
		return f, nil
	}
}

// parseTabularArray reads one row object per body line, pairing header
// fields with parsed cells.
func (d *decoder) parseTabularArray(hdr *header, depth, hline int, limited bool) (*Value, *DecodeError) {
	arr := Arr()
	for {
		f, err := d.nextBodyFrame(depth, limited && arr.Len() >= hdr.count)
		if err != nil {
			return nil, err
		}
		if f == nil {
			break
		}
		if f.depth > depth+1 && d.opts.Strict {
			return nil, decErr(f.line, "Invalid indentation")
		}
		cells := splitCells(f.text, hdr.delim)
		if d.opts.Strict && len(cells) != len(hdr.fields) {
			return nil, decErr(f.line, "Tabular row width mismatch: header declared %d fields, row has %d", len(hdr.fields), len(cells))
		}
		d.cur.advance()
		row := Obj()
		for i, fld := range hdr.fields {
			var v *Value
			if i < len(cells) {
				pv, perr := d.parsePrimitive(cells[i], f.line)
				if perr != nil {
					return nil, perr
				}
				v = pv
			} else {
				v = Null()
			}
			if aerr := d.assign(row, fld.name, fld.quoted, v, f.line); aerr != nil {
				return nil, aerr
			}
		}
		arr.Append(row)
	}
	if d.opts.Strict && arr.Len() != hdr.count {
		return nil, decErr(hline, "Array count mismatch. Header declared %d, found %d.", hdr.count, arr.Len())
	}
	return arr, nil
}

// parseListArray reads "- " items at depth+1.
func (d *decoder) parseListArray(hdr *header, depth, hline int, limited bool) (*Value, *DecodeError) {
	arr := Arr()
	for {
		f, err := d.nextBodyFrame(depth, limited && arr.Len() >= hdr.count)
		if err != nil {
			return nil, err
		}
		if f == nil {
			break
		}
		if f.depth > depth+1 && d.opts.Strict {
			return nil, decErr(f.line, "Invalid indentation")
		}
		var rest string
		switch {
		case f.text == "-":
			rest = ""
		case strings.HasPrefix(f.text, "- "):
			rest = f.text[2:]
		default:
			if d.opts.Strict {
				return nil, decErr(f.line, "Array item must start with '- '")
			}
			rest = f.text
		}
		d.cur.advance()
		item, ierr := d.parseListItem(strings.TrimSpace(rest), depth+1, f.line)
		if ierr != nil {
			return nil, ierr
		}
		arr.Append(item)
	}
	if d.opts.Strict && arr.Len() != hdr.count {
		return nil, decErr(hline, "Array count mismatch. Header declared %d, found %d.", hdr.count, arr.Len())
	}
	return arr, nil
}

// parseListItem interprets the remainder of a "- " line, trying in order:
// an anonymous nested header, a keyed nested header (object whose first
// field is the array), a key/value pair, an empty remainder, and finally a
// primitive token. Object items may continue with sibling fields one level
// below the hyphen line, which deep-merge into the item.
func (d *decoder) parseListItem(rest string, itemDepth, line int) (*Value, *DecodeError) {
	if rest == "" {
		if n := d.cur.peekNonBlank(); n != nil && n.depth > itemDepth {
			return d.parseObject(itemDepth + 1)
		}
		return Obj(), nil
	}

	if hdr, ok := parseHeader(rest, d.opts.Delimiter, d.opts.Strict); ok {
		arr, err := d.parseArrayBody(hdr, itemDepth, line, true)
		if err != nil {
			return nil, err
		}
		if !hdr.hasKey {
			return arr, nil
		}
		obj := Obj()
		if aerr := d.assign(obj, hdr.key, hdr.keyQuoted, arr, line); aerr != nil {
			return nil, aerr
		}
		return d.mergeItemSiblings(obj, itemDepth)
	}

	if idx := splitColon(rest); idx >= 0 {
		key, keyQuoted, kerr := d.decodeKey(strings.TrimSpace(rest[:idx]), line)
		if kerr != nil {
			return nil, kerr
		}
		valText := strings.TrimSpace(rest[idx+1:])
		var val *Value
		if valText == "" {
			if n := d.cur.peekNonBlank(); n != nil && n.depth > itemDepth+1 {
				child, err := d.parseObject(itemDepth + 2)
				if err != nil {
					return nil, err
				}
				val = child
			} else {
				val = Obj()
			}
		} else {
			v, err := d.parsePrimitive(valText, line)
			if err != nil {
				return nil, err
			}
			val = v
		}
		obj := Obj()
		if aerr := d.assign(obj, key, keyQuoted, val, line); aerr != nil {
			return nil, aerr
		}
		return d.mergeItemSiblings(obj, itemDepth)
	}

	return d.parsePrimitive(rest, line)
}

// mergeItemSiblings reads the remaining fields of a list-item object one
// level below the hyphen line and deep-merges them into the item.
func (d *decoder) mergeItemSiblings(obj *Value, itemDepth int) (*Value, *DecodeError) {
	n := d.cur.peekNonBlank()
	if n == nil || n.depth != itemDepth+1 {
		return obj, nil
	}
	more, err := d.parseObject(itemDepth + 1)
	if err != nil {
		return nil, err
	}
	deepMergeInto(obj, more)
	return obj, nil
}
