package toon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expandOpts() Options {
	opts := DefaultOptions()
	opts.ExpandPaths = ExpandSafe
	return opts
}

func TestExpand_DottedKeys(t *testing.T) {
	input := "server.port: 8080\nserver.host: localhost\n"
	v := mustDecode(t, input, expandOpts())
	want := Obj(KV("server", Obj(KV("port", Int(8080)), KV("host", Str("localhost")))))
	assert.True(t, Equal(want, v), "got %s", mustJSON(t, v))
}

func TestExpand_Disabled(t *testing.T) {
	v := mustDecode(t, "server.port: 8080\n", DefaultOptions())
	want := Obj(KV("server.port", Int(8080)))
	assert.True(t, Equal(want, v))
}

func TestExpand_QuotedKeyPassesThrough(t *testing.T) {
	v := mustDecode(t, `"server.port": 8080`+"\n", expandOpts())
	want := Obj(KV("server.port", Int(8080)))
	assert.True(t, Equal(want, v))
}

func TestExpand_DeepPathsAndMerge(t *testing.T) {
	input := "a.b.c: 1\na.b.d: 2\na.e: 3\n"
	v := mustDecode(t, input, expandOpts())
	want := Obj(KV("a", Obj(
		KV("b", Obj(KV("c", Int(1)), KV("d", Int(2)))),
		KV("e", Int(3)),
	)))
	assert.True(t, Equal(want, v), "got %s", mustJSON(t, v))
}

func TestExpand_MergesWithExplicitNesting(t *testing.T) {
	input := "server:\n  host: localhost\nserver.port: 8080\n"
	v := mustDecode(t, input, expandOpts())
	want := Obj(KV("server", Obj(KV("host", Str("localhost")), KV("port", Int(8080)))))
	assert.True(t, Equal(want, v), "got %s", mustJSON(t, v))
}

func TestExpand_ConflictStrict(t *testing.T) {
	derr := decodeErr(t, "a: 1\na.b: 2\n", expandOpts())
	assert.Contains(t, derr.Message, "Expansion conflict at path 'a' (object vs primitive)")
	assert.Equal(t, 2, derr.Line)

	// Deeper conflict: the path a.b.c needs an object where the primitive
	// a.b lives.
	derr = decodeErr(t, "a.b: 1\na.b.c: 2\n", expandOpts())
	assert.Contains(t, derr.Message, "Expansion conflict")
}

func TestExpand_ConflictNonStrict(t *testing.T) {
	opts := expandOpts()
	opts.Strict = false

	v := mustDecode(t, "a: 1\na.b: 2\n", opts)
	want := Obj(KV("a", Obj(KV("b", Int(2)))))
	assert.True(t, Equal(want, v), "got %s", mustJSON(t, v))

	// Primitive leaf collision: last write wins in both modes.
	v = mustDecode(t, "a.b: 1\na.b: 2\n", opts)
	assert.True(t, Equal(Obj(KV("a", Obj(KV("b", Int(2))))), v))
}

func TestExpand_TabularFieldNames(t *testing.T) {
	input := "rows[1]{pos.x,pos.y}:\n  1,2\n"
	v := mustDecode(t, input, expandOpts())
	want := Obj(KV("rows", Arr(
		Obj(KV("pos", Obj(KV("x", Int(1)), KV("y", Int(2))))),
	)))
	assert.True(t, Equal(want, v), "got %s", mustJSON(t, v))
}

func TestDeepMergeInto(t *testing.T) {
	dst := Obj(KV("a", Obj(KV("x", Int(1)))), KV("b", Int(2)))
	src := Obj(KV("a", Obj(KV("y", Int(3)))), KV("b", Int(9)), KV("c", Int(4)))
	deepMergeInto(dst, src)
	want := Obj(
		KV("a", Obj(KV("x", Int(1)), KV("y", Int(3)))),
		KV("b", Int(9)),
		KV("c", Int(4)),
	)
	require.True(t, Equal(want, dst))
}
