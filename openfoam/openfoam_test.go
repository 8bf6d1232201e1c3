package openfoam

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bp "github.com/escad/byteparse"
)

func TestBlockComment(t *testing.T) {
	v, err := bp.ParseBytes(BlockComment, []byte("/* Hello, World! */"))
	require.NoError(t, err)
	assert.Equal(t, " Hello, World! ", v)
}

func TestLineComment(t *testing.T) {
	v, err := bp.ParseBytes(LineComment, []byte("// a remark\nrest"))
	require.NoError(t, err)
	assert.Equal(t, " a remark", v)
}

func TestIdentifier(t *testing.T) {
	v, err := bp.ParseBytes(Identifier, []byte("thisShouldWork0"))
	require.NoError(t, err)
	assert.Equal(t, "thisShouldWork0", v)

	v, err = bp.ParseBytes(Identifier, []byte("this_should_also_work_1"))
	require.NoError(t, err)
	assert.Equal(t, "this_should_also_work_1", v)

	_, err = bp.ParseBytes(Identifier, []byte("676test"))
	assert.Error(t, err)

	// identifiers stop at the first non-identifier byte
	v, err = bp.ParseBytes(Identifier, []byte("call-with-current-continuation"))
	require.NoError(t, err)
	assert.Equal(t, "call", v)
}

func TestKeyValuePair(t *testing.T) {
	v, err := bp.ParseBytes(KeyValuePair, []byte("alpha 1;"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"key": "alpha", "value": 1}, v)
}

func TestDictionary(t *testing.T) {
	input := []byte("{\n    version 2.0;\n    format ascii;\n}\n")
	v, err := bp.ParseBytes(Dictionary, input)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"version": 2.0, "format": "ascii"}, v)
}

func TestVectorValue(t *testing.T) {
	v, err := bp.ParseBytes(Value, []byte("(1 2 3)"))
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, 3}, v)
}

func TestDimensions(t *testing.T) {
	v, err := bp.ParseBytes(Dimensions, []byte("[0 2 -1 0 0 0 0]"))
	require.NoError(t, err)
	assert.Equal(t, []any{0, 2, -1, 0, 0, 0, 0}, v)
}

func TestQuotedValue(t *testing.T) {
	v, err := bp.ParseBytes(Value, []byte(`"quoted value";`))
	require.NoError(t, err)
	assert.Equal(t, "quoted value", v)
}

const asciiCase = `/*--------------------------------*- C++ -*----------------------------------*/
FoamFile
{
    version     2.0;
    format      ascii;
    class       volScalarField;
    object      T;
}

dimensions      [0 0 0 1 0 0 0];

internalField   uniform 300;

boundaryField
{
    inlet
    {
        type            fixedValue;
        value           uniform 300;
    }
}
`

func TestParseAsciiCase(t *testing.T) {
	doc, err := Parse([]byte(asciiCase))
	require.NoError(t, err)

	pre := doc["preamble"].(map[string]any)
	assert.Equal(t, "FoamFile", pre["name"])
	content := pre["content"].(map[string]any)
	assert.Equal(t, "ascii", content["format"])
	assert.Equal(t, 2.0, content["version"])

	data := doc["data"].(map[string]any)
	assert.Equal(t, []any{0, 0, 0, 1, 0, 0, 0}, data["dimensions"])
	assert.Equal(t, []any{"uniform", 300}, data["internalField"])

	boundary := data["boundaryField"].(map[string]any)
	inlet := boundary["inlet"].(map[string]any)
	assert.Equal(t, "fixedValue", inlet["type"])
}

func TestNumberedList(t *testing.T) {
	v, err := bp.ParseBytes(Value, []byte("faces 4 (1 2 3 4)"))
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, "faces", m["name"])
	assert.Equal(t, 4, m["size"])
	assert.Equal(t, []any{1, 2, 3, 4}, m["data"])
}

func TestTypedList(t *testing.T) {
	v, err := bp.ParseBytes(Value, []byte("field List<scalar> 2 (0.5 1.5)"))
	require.NoError(t, err)
	m := v.(map[string]any)
	assert.Equal(t, "scalar", m["dtype"])
	assert.Equal(t, 2, m["size"])
	assert.Equal(t, []any{0.5, 1.5}, m["data"])
}

func TestParseBinaryCase(t *testing.T) {
	values := []float64{1.5, -2.25, 8e-3, 64}

	head := "FoamFile\n{\n    format binary;\n}\n\ninternalField nonuniform List<scalar> 4 "
	// pad with spaces so the block after "(" is 8-byte aligned within the
	// buffer; real case files are written with aligned blocks
	pad := (8 - (len(head)+1)%8) % 8
	head += strings.Repeat(" ", pad)

	data := []byte(head)
	data = append(data, '(')
	for _, v := range values {
		data = binary.NativeEndian.AppendUint64(data, math.Float64bits(v))
	}
	data = append(data, []byte(")\n;\n")...)

	// the head of the buffer must itself be aligned for the pad to work;
	// copy into a fresh allocation
	buf := make([]byte, len(data))
	copy(buf, data)

	doc, err := Parse(buf)
	require.NoError(t, err)

	field := doc["data"].(map[string]any)["internalField"].(map[string]any)
	assert.Equal(t, "nonuniform", field["name"])
	assert.Equal(t, 4, field["size"])
	assert.Equal(t, values, field["data"])
}

func TestBinaryViewMutation(t *testing.T) {
	head := "FoamFile\n{\n    format binary;\n}\nfield nonuniform List<scalar> 2 "
	pad := (8 - (len(head)+1)%8) % 8
	head += strings.Repeat(" ", pad)

	buf := []byte(head)
	buf = append(buf, '(')
	blockStart := len(buf)
	buf = append(buf, make([]byte, 16)...)
	buf = append(buf, []byte(");")...)

	doc, err := Parse(buf)
	require.NoError(t, err)

	view := doc["data"].(map[string]any)["field"].(map[string]any)["data"].([]float64)
	view[1] = 0.125

	// the write went through the view into the original buffer
	got := math.Float64frombits(binary.NativeEndian.Uint64(buf[blockStart+8:]))
	assert.Equal(t, 0.125, got)
}

// A header that never records a format leaves list bodies ascii.
func TestHeaderWithoutFormatDefaultsToAscii(t *testing.T) {
	input := "FoamFile\n{\n    version 2.0;\n}\nfield faces 2 (7 9);\n"
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	field := doc["data"].(map[string]any)["field"].(map[string]any)
	assert.Equal(t, 2, field["size"])
	assert.Equal(t, []any{7, 9}, field["data"])
}

// A case file may declare any list size it likes; an absurd one must
// surface as a parse failure, not a crash.
func TestBinaryListDeclaredSizeTooLarge(t *testing.T) {
	input := "FoamFile\n{\n    format binary;\n}\n" +
		"field nonuniform List<scalar> 2000000000000000000 ("
	_, err := Parse([]byte(input))
	require.Error(t, err)
	var pe bp.ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParseFailureReporting(t *testing.T) {
	_, err := Parse([]byte("FoamFile { format ascii; }\nbroken ???"))
	require.Error(t, err)
	var pe bp.ParseError
	assert.ErrorAs(t, err, &pe, "grammar failures stay within the core taxonomy")
}
