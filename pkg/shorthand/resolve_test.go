package shorthand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		plain string
		kind  Kind
		want  string
	}{
		{"", KindNull, "null"},
		{"~", KindNull, "null"},
		{"NULL", KindNull, "null"},
		{"nil", KindString, `"nil"`},
		{"yes", KindBool, "true"},
		{"No", KindBool, "false"},
		{"ON", KindBool, "true"},
		{"off", KindBool, "false"},
		{"y", KindString, `"y"`},
		{"tRUE", KindString, `"tRUE"`},
		{"0", KindInt, "0"},
		{"-17", KindInt, "-17"},
		{"+42", KindInt, "42"},
		{"1_000", KindInt, "1000"},
		{"0o17", KindString, `"0o17"`},
		{"017", KindInt, "15"},
		{"08", KindString, `"08"`},
		{"0xff", KindInt, "255"},
		{"-0b11", KindInt, "-3"},
		{"3.25", KindFloat, "3.25"},
		{"-2.", KindFloat, "-2.0"},
		{"6.02e+23", KindFloat, "6.02e+23"},
		{"1e3", KindString, `"1e3"`},
		{"1e+3", KindFloat, "1000.0"},
		{"1e-05", KindFloat, "1e-05"},
		{"1.0e5", KindString, `"1.0e5"`},
		{"1.0e+5", KindFloat, "100000.0"},
		{".5", KindFloat, "0.5"},
		{"-.5", KindString, `"-.5"`},
		{"+.5", KindString, `"+.5"`},
		{"1.2.3", KindString, `"1.2.3"`},
		{"#ff0000", KindString, `"#ff0000"`},
		{"red", KindString, `"red"`},
	}
	for _, tt := range tests {
		t.Run(tt.plain, func(t *testing.T) {
			got := Resolve(tt.plain)
			assert.Equal(t, tt.kind, got.Kind())
			assert.Equal(t, tt.want, Encode(got))
		})
	}
}

func TestResolve_SpecialFloats(t *testing.T) {
	t.Run("Should resolve infinities", func(t *testing.T) {
		f, ok := Resolve(".inf").AsFloat()
		require.True(t, ok)
		assert.True(t, math.IsInf(f, 1))

		f, ok = Resolve("-.Inf").AsFloat()
		require.True(t, ok)
		assert.True(t, math.IsInf(f, -1))
	})

	t.Run("Should resolve NaN", func(t *testing.T) {
		f, ok := Resolve(".NaN").AsFloat()
		require.True(t, ok)
		assert.True(t, math.IsNaN(f))
	})

	t.Run("Should saturate overflowing floats", func(t *testing.T) {
		f, ok := Resolve("1e+999").AsFloat()
		require.True(t, ok)
		assert.True(t, math.IsInf(f, 1))
	})
}
