package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentMethodsSingleLine(t *testing.T) {
	body := "\n  getValue: () => string,\n  setValue: (string) => unit,\n"

	methods, diags := SegmentMethods(body, 0)
	require.Empty(t, diags)
	require.Len(t, methods, 2)

	assert.Equal(t, "getValue", methods[0].Name)
	assert.Equal(t, "() => string", methods[0].Signature)
	assert.False(t, methods[0].Optional)

	assert.Equal(t, "setValue", methods[1].Name)
	assert.Equal(t, "(string) => unit", methods[1].Signature)
}

func TestSegmentMethodsMultiLine(t *testing.T) {
	body := "\n  getValues: (\n    string,\n  ) => array<string>,\n  getValue: () => string,\n"

	methods, diags := SegmentMethods(body, 0)
	require.Empty(t, diags)
	require.Len(t, methods, 2)

	assert.Equal(t, "getValues", methods[0].Name)
	assert.Equal(t, "( string, ) => array<string>", methods[0].Signature)
	assert.Equal(t, "getValue", methods[1].Name)
	assert.Equal(t, "() => string", methods[1].Signature)
}

func TestSegmentMethodsOptional(t *testing.T) {
	body := "getName?: () => string,"

	methods, diags := SegmentMethods(body, 0)
	require.Empty(t, diags)
	require.Len(t, methods, 1)
	assert.Equal(t, "getName", methods[0].Name)
	assert.True(t, methods[0].Optional)
	assert.Equal(t, "() => string", methods[0].Signature)
}

func TestSegmentMethodsSkipsSpreadLines(t *testing.T) {
	body := "\n  ...TurboModule.spec,\n  getValue: () => string,\n  ...View.viewProps,\n"

	methods, diags := SegmentMethods(body, 0)
	require.Empty(t, diags)
	require.Len(t, methods, 1)
	assert.Equal(t, "getValue", methods[0].Name)
}

func TestSegmentMethodsSkipsStrayText(t *testing.T) {
	body := "\n  not a member line\n  getValue: () => string,\n"

	methods, diags := SegmentMethods(body, 0)
	assert.Empty(t, diags)
	require.Len(t, methods, 1)
	assert.Equal(t, "getValue", methods[0].Name)
}

func TestSegmentMethodsOffsets(t *testing.T) {
	body := "\n  getValue: () => string,\n"
	base := 100

	methods, diags := SegmentMethods(body, base)
	require.Empty(t, diags)
	require.Len(t, methods, 1)

	m := methods[0]
	assert.Equal(t, base+3, m.NameStart)
	assert.Equal(t, base+3+len("getValue"), m.NameEnd)
	assert.Equal(t, "getValue", body[m.NameStart-base:m.NameEnd-base])
	assert.Equal(t, "() => string", body[m.SigStart-base:m.SigStart-base+len(m.Signature)])
	assert.Equal(t, m.NameStart, m.Start)
	assert.Equal(t, "getValue: () => string", body[m.Start-base:m.End-base])
}

func TestSegmentMethodsLastMemberWithoutComma(t *testing.T) {
	body := "getValue: () => string"

	methods, diags := SegmentMethods(body, 0)
	require.Empty(t, diags)
	require.Len(t, methods, 1)
	assert.Equal(t, "() => string", methods[0].Signature)
}

func TestSegmentMethodsPreservesOrder(t *testing.T) {
	body := "b: unit,\na: string,\nc: unit,"

	methods, _ := SegmentMethods(body, 0)
	require.Len(t, methods, 3)
	assert.Equal(t, "b", methods[0].Name)
	assert.Equal(t, "a", methods[1].Name)
	assert.Equal(t, "c", methods[2].Name)
}

func TestSplitParams(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "string", []string{"string"}},
		{"two", "string, unit", []string{"string", "unit"}},
		{"trailing comma", "string,", []string{"string"}},
		{"nested function keeps its comma", "(string, unit) => unit, string",
			[]string{"(string, unit) => unit", "string"}},
		{"function then plain", "(string) => unit, string",
			[]string{"(string) => unit", "string"}},
		{"wrappers", "option<string>, array<unit>",
			[]string{"option<string>", "array<unit>"}},
		{"blank fragments dropped", "string, , unit", []string{"string", "unit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragments, diags := SplitParams(tt.raw, 0)
			assert.Empty(t, diags)

			var texts []string
			for _, f := range fragments {
				texts = append(texts, f.Text)
			}
			assert.Equal(t, tt.want, texts)
		})
	}
}

func TestSplitParamsOffsets(t *testing.T) {
	raw := "  string , unit"
	base := 50

	fragments, diags := SplitParams(raw, base)
	require.Empty(t, diags)
	require.Len(t, fragments, 2)

	assert.Equal(t, "string", fragments[0].Text)
	assert.Equal(t, base+2, fragments[0].Start)
	assert.Equal(t, "unit", fragments[1].Text)
	assert.Equal(t, base+11, fragments[1].Start)
}
