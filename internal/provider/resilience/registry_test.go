package resilience

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndHealth(t *testing.T) {
	registry := NewRegistry()
	client := NewClient(ClientConfig{Name: "stopdata"})

	registry.Register("stopdata", client)

	health := registry.GetHealth("stopdata")
	require.NotNil(t, health)
	assert.Equal(t, "stopdata", health.Name)
	assert.True(t, health.IsHealthy())
	assert.Nil(t, health.LastSuccessAt)
	assert.Nil(t, health.LastFailureAt)
}

func TestRegistry_UnknownProvider(t *testing.T) {
	registry := NewRegistry()
	assert.Nil(t, registry.GetHealth("missing"))
}

func TestRegistry_RecordOutcomes(t *testing.T) {
	registry := NewRegistry()
	registry.Register("stopdata", NewClient(ClientConfig{Name: "stopdata"}))

	registry.RecordSuccess("stopdata")
	health := registry.GetHealth("stopdata")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastSuccessAt)

	registry.RecordFailure("stopdata", errors.New("connection refused"))
	health = registry.GetHealth("stopdata")
	require.NotNil(t, health)
	assert.NotNil(t, health.LastFailureAt)
	assert.Equal(t, "connection refused", health.LastError)
}

func TestRegistry_GetAllHealth(t *testing.T) {
	registry := NewRegistry()
	registry.Register("a", NewClient(ClientConfig{Name: "a"}))
	registry.Register("b", NewClient(ClientConfig{Name: "b"}))

	all := registry.GetAllHealth()
	assert.Len(t, all, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, registry.GetProviderNames())
	assert.Equal(t, 2, registry.ProviderCount())

	registry.Unregister("a")
	assert.Equal(t, 1, registry.ProviderCount())
}
