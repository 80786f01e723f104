package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smilemakc/archsim/internal/types"
)

func TestNormalizeAliases(t *testing.T) {
	cases := map[string]types.CanonicalType{
		"user":              types.User,
		"Load Balancer":     types.LoadBalancer,
		"load-balancer":     types.LoadBalancer,
		"API_Gateway":       types.APIGateway,
		"redis":             types.Cache,
		"EventQueue":        types.EventStream,
		"":                  types.Server,
		"  CustomWidget  ":  types.CanonicalType("CustomWidget"),
	}
	for raw, want := range cases {
		assert.Equal(t, want, types.Normalize(raw), "normalizing %q", raw)
	}
}

func TestLayerOfUnknownTypeDefaultsToCompute(t *testing.T) {
	assert.Equal(t, types.LayerCompute, types.LayerOf(types.CanonicalType("SomethingNew")))
}

func TestAllowedTargets(t *testing.T) {
	assert.True(t, types.AllowedTargets(types.LayerExternal, types.LayerEdge))
	assert.False(t, types.AllowedTargets(types.LayerExternal, types.LayerCompute))
	assert.False(t, types.AllowedTargets(types.LayerNotification, types.LayerAsync))
	assert.True(t, types.AllowedTargets(types.LayerAsync, types.LayerStorage))
}
