package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/markovsim/builder"
)

func TestLabelFns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		fn          builder.LabelFn
		input       int
		want        string
		shouldPanic bool
	}{
		{"Decimal_zero", builder.DecimalLabel, 0, "0", false},
		{"Decimal_multi", builder.DecimalLabel, 123, "123", false},
		{"Excel_A", builder.ExcelColumnLabel, 0, "A", false},
		{"Excel_Z", builder.ExcelColumnLabel, 25, "Z", false},
		{"Excel_AA", builder.ExcelColumnLabel, 26, "AA", false},
		{"Excel_AZ", builder.ExcelColumnLabel, 51, "AZ", false},
		{"Excel_neg", builder.ExcelColumnLabel, -1, "", true},
		{"Prefix_s3", builder.PrefixLabel("s"), 3, "s3", false},
		{"Prefix_neg", builder.PrefixLabel("s"), -1, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.shouldPanic {
				assertPanics(t, func() { tc.fn(tc.input) }, tc.name)
				return
			}
			assert.Equal(t, tc.want, tc.fn(tc.input))
		})
	}
}

func TestLabelScheme(t *testing.T) {
	t.Parallel()

	fn, err := builder.LabelScheme("excel")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, builder.Labels(3, fn))

	fn, err = builder.LabelScheme("prefix:state")
	require.NoError(t, err)
	assert.Equal(t, []string{"state0", "state1"}, builder.Labels(2, fn))

	fn, err = builder.LabelScheme("")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1"}, builder.Labels(2, fn))

	_, err = builder.LabelScheme("roman")
	require.Error(t, err)
}
