package toon

import (
	"fmt"
	"io"
	"strings"
)

// DecodeError represents a decoding failure with its source line.
type DecodeError struct {
	Message string
	Line    int // 1-based; 0 means position unavailable
}

func (e *DecodeError) Error() string {
	if e.Line == 0 {
		return "toon: " + e.Message
	}
	return fmt.Sprintf("toon: %s (line %d)", e.Message, e.Line)
}

func decErr(line int, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Message: fmt.Sprintf(format, args...), Line: line}
}

// Decode parses a whole TOON document into a Value tree.
func Decode(data []byte, opts Options) (*Value, error) {
	return DecodeString(string(data), opts)
}

// DecodeString parses a TOON document given as a string.
func DecodeString(input string, opts Options) (*Value, error) {
	opts = opts.normalized()
	frames, ferr := frameLines(input, opts)
	if ferr != nil {
		return nil, ferr
	}
	d := &decoder{cur: cursor{frames: frames}, opts: opts}
	v, derr := d.parseRoot()
	if derr != nil {
		return nil, derr
	}
	return v, nil
}

// DecodeFrom reads the whole document from r and decodes it.
func DecodeFrom(r io.Reader, opts Options) (*Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data, opts)
}

// decoder is a recursive-descent parser over a depth-indexed frame stream.
// One decoder serves one Decode call; it owns its cursor and shares nothing.
type decoder struct {
	cur  cursor
	opts Options
}

// ============================================================
// Root Form
// ============================================================

// parseRoot discriminates the four root forms: bare array header, keyed
// header or key/value object, and single-primitive document.
func (d *decoder) parseRoot() (*Value, *DecodeError) {
	d.cur.skipBlanks()
	f := d.cur.peek()
	if f == nil {
		return Obj(), nil
	}

	if hdr, ok := parseHeader(f.text, d.opts.Delimiter, d.opts.Strict); ok {
		if !hdr.hasKey {
			d.cur.advance()
			arr, err := d.parseArrayBody(hdr, f.depth, f.line, false)
			if err != nil {
				return nil, err
			}
			if d.opts.Strict {
				if t := d.cur.peekNonBlank(); t != nil {
					return nil, decErr(t.line, "Unexpected line after root array")
				}
			}
			return arr, nil
		}
		// A keyed header is an object field; the document is an object.
		return d.parseObject(0)
	}

	if splitColon(f.text) >= 0 {
		return d.parseObject(0)
	}

	// Single primitive document.
	if d.opts.Strict {
		probe := d.cur
		probe.advance()
		if t := probe.peekNonBlank(); t != nil {
			return nil, decErr(t.line, "Missing colon after key.")
		}
	}
	d.cur.advance()
	return d.parsePrimitive(f.text, f.line)
}

// ============================================================
// Object Parsing
// ============================================================

// parseObject accumulates fields at the given depth until dedent or EOF.
func (d *decoder) parseObject(depth int) (*Value, *DecodeError) {
	obj := Obj()
	for {
		d.cur.skipBlanks()
		f := d.cur.peek()
		if f == nil || f.depth < depth {
			return obj, nil
		}
		if f.depth > depth && d.opts.Strict {
			return nil, decErr(f.line, "Invalid indentation")
		}

		if hdr, ok := parseHeader(f.text, d.opts.Delimiter, d.opts.Strict); ok && hdr.hasKey {
			d.cur.advance()
			arr, err := d.parseArrayBody(hdr, depth, f.line, false)
			if err != nil {
				return nil, err
			}
			if err := d.assign(obj, hdr.key, hdr.keyQuoted, arr, f.line); err != nil {
				return nil, err
			}
			continue
		}

		idx := splitColon(f.text)
		if idx < 0 {
			if d.opts.Strict {
				return nil, decErr(f.line, "Missing colon after key.")
			}
			d.cur.advance()
			continue
		}

		key, keyQuoted, kerr := d.decodeKey(strings.TrimSpace(f.text[:idx]), f.line)
		if kerr != nil {
			return nil, kerr
		}
		valText := strings.TrimSpace(f.text[idx+1:])
		d.cur.advance()

		var val *Value
		if valText == "" {
			if n := d.cur.peekNonBlank(); n != nil && n.depth > depth {
				child, err := d.parseObject(depth + 1)
				if err != nil {
					return nil, err
				}
				val = child
			} else {
				val = Obj()
			}
		} else {
			v, err := d.parsePrimitive(valText, f.line)
			if err != nil {
				return nil, err
			}
			val = v
		}
		if err := d.assign(obj, key, keyQuoted, val, f.line); err != nil {
			return nil, err
		}
	}
}

// decodeKey unescapes a quoted key or takes an unquoted key literally.
// The quoted flag disables dotted-path expansion on the key.
func (d *decoder) decodeKey(keyText string, line int) (key string, quoted bool, err *DecodeError) {
	if len(keyText) > 0 && keyText[0] == '"' {
		content, rest, serr := scanQuoted(keyText, d.opts.Strict)
		if serr != nil {
			return "", false, decErr(line, "%s", serr.msg)
		}
		if strings.TrimSpace(rest) != "" {
			if d.opts.Strict {
				return "", false, decErr(line, "Missing colon after key.")
			}
		}
		return content, true, nil
	}
	if keyText == "" && d.opts.Strict {
		return "", false, decErr(line, "Missing colon after key.")
	}
	return keyText, false, nil
}

// ============================================================
// Primitive Tokens
// ============================================================

// parsePrimitive decodes one primitive token: a quoted string or a bare
// token classified by the number-precedence rules.
func (d *decoder) parsePrimitive(tok string, line int) (*Value, *DecodeError) {
	tok = strings.TrimSpace(tok)
	if len(tok) > 0 && tok[0] == '"' {
		content, rest, serr := scanQuoted(tok, d.opts.Strict)
		if serr != nil {
			return nil, decErr(line, "%s", serr.msg)
		}
		if strings.TrimSpace(rest) != "" && d.opts.Strict {
			return nil, decErr(line, "Unexpected text after closing quote")
		}
		return Str(content), nil
	}
	return classifyBare(tok), nil
}
