package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestAddAndGet(t *testing.T) {
	c := openTestCatalog(t)
	require.NoError(t, c.Add("onboarding", "function Main() {}"))

	s, err := c.Get("onboarding")
	require.NoError(t, err)
	assert.Equal(t, "onboarding", s.Name)
	assert.Equal(t, "function Main() {}", s.Source)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestAddReplacesExisting(t *testing.T) {
	c := openTestCatalog(t)
	require.NoError(t, c.Add("onboarding", "v1"))
	require.NoError(t, c.Add("onboarding", "v2"))

	s, err := c.Get("onboarding")
	require.NoError(t, err)
	assert.Equal(t, "v2", s.Source)
}

func TestGetMissingScript(t *testing.T) {
	c := openTestCatalog(t)
	_, err := c.Get("nope")
	assert.Error(t, err)
}

func TestListOrdersByName(t *testing.T) {
	c := openTestCatalog(t)
	require.NoError(t, c.Add("zeta", "z"))
	require.NoError(t, c.Add("alpha", "a"))

	scripts, err := c.List()
	require.NoError(t, err)
	require.Len(t, scripts, 2)
	assert.Equal(t, "alpha", scripts[0].Name)
	assert.Equal(t, "zeta", scripts[1].Name)
}
