package policies

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodingPolicyPalettes(t *testing.T) {
	policy := NewEncodingPolicy()

	require.Len(t, policy.Colors(), 8)
	require.Len(t, policy.Sizes(), 8)
	require.Len(t, policy.Symbols(), 8)
	if diff := cmp.Diff("rgba(31,119,180,1.0)", policy.Colors()[0]); diff != "" {
		t.Fatalf("unexpected first colour (-want +got):\n%s", diff)
	}

	lo, hi := policy.SizeRange()
	assert.Equal(t, float64(DefaultSizeMin), lo)
	assert.Equal(t, float64(DefaultSizeMax), hi)

	lo, hi = policy.WithSizeRange(30, 10).SizeRange()
	assert.Equal(t, 10.0, lo)
	assert.Equal(t, 30.0, hi)
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "long hex", input: "#ff0000", want: "rgba(255,0,0,1.0)"},
		{name: "short hex", input: "#0f0", want: "rgba(0,255,0,1.0)"},
		{name: "rgb", input: "rgb(1,2,3)", want: "rgba(1,2,3,1.0)"},
		{name: "named colour kept", input: "red", want: "red"},
		{name: "trimmed", input: "  #000000 ", want: "rgba(0,0,0,1.0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeColor(tt.input))
		})
	}
}
