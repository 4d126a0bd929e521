package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChartCache_SetAndGet(t *testing.T) {
	c, err := NewChartCache(128)
	require.NoError(t, err)
	defer c.Close()

	png := []byte("png-bytes")
	c.Set(Key("USD", "2026-08-21"), png)
	c.cache.Wait()

	got, ok := c.Get(Key("USD", "2026-08-21"))
	require.True(t, ok)
	require.Equal(t, png, got)
}

func TestChartCache_GetMissWhenEmpty(t *testing.T) {
	c, err := NewChartCache(64)
	require.NoError(t, err)
	defer c.Close()

	png, ok := c.Get(Key("EUR", "2026-08-21"))
	require.False(t, ok)
	require.Nil(t, png)
}

func TestChartCache_NewDateIsSeparateEntry(t *testing.T) {
	c, err := NewChartCache(256)
	require.NoError(t, err)
	defer c.Close()

	c.Set(Key("USD", "2026-08-20"), []byte("old"))
	c.Set(Key("USD", "2026-08-21"), []byte("new"))
	c.cache.Wait()

	old, ok := c.Get(Key("USD", "2026-08-20"))
	require.True(t, ok)
	require.Equal(t, []byte("old"), old)

	fresh, ok := c.Get(Key("USD", "2026-08-21"))
	require.True(t, ok)
	require.Equal(t, []byte("new"), fresh)
}

func TestKey(t *testing.T) {
	require.Equal(t, "USD:2026-08-21", Key("USD", "2026-08-21"))
}
