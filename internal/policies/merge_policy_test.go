package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"layerplot/internal/types"
)

func TestLastNonNull(t *testing.T) {
	values := []types.Node{
		types.Scalar{Value: "first"},
		types.Scalar{Value: "second"},
		types.Omit,
		types.Scalar{Value: ""},
	}
	assert.Equal(t, types.Scalar{Value: "second"}, LastNonNull(values))
	assert.True(t, types.IsOmit(LastNonNull(nil)))
}

func TestFirstNonNull(t *testing.T) {
	values := []types.Node{
		types.Omit,
		types.Scalar{},
		types.Scalar{Value: "group"},
		types.Scalar{Value: "overlay"},
	}
	assert.Equal(t, types.Scalar{Value: "group"}, FirstNonNull(values))
	assert.True(t, types.IsOmit(FirstNonNull([]types.Node{types.Omit})))
}

func TestPreferLiteral(t *testing.T) {
	literal := types.Scalar{Value: "red"}
	mapped := types.Scalar{Value: "rgba(31,119,180,1.0)"}

	assert.Equal(t, literal, PreferLiteral(literal, mapped))
	assert.Equal(t, mapped, PreferLiteral(types.Omit, mapped))
	assert.True(t, types.IsOmit(PreferLiteral(types.Omit, nil)))
}
