package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache(t *testing.T) {
	t.Run("SetAndGet", func(t *testing.T) {
		c := New(time.Minute)
		c.Set("a", 1)
		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)
	})

	t.Run("MissingKey", func(t *testing.T) {
		c := New(time.Minute)
		_, ok := c.Get("nope")
		assert.False(t, ok)
	})

	t.Run("ExpiredEntryIsAMiss", func(t *testing.T) {
		c := New(time.Millisecond)
		c.Set("a", 1)
		time.Sleep(5 * time.Millisecond)
		_, ok := c.Get("a")
		assert.False(t, ok)
	})

	t.Run("DeleteAndFlush", func(t *testing.T) {
		c := New(time.Minute)
		c.Set("a", 1)
		c.Set("b", 2)
		c.Delete("a")
		_, ok := c.Get("a")
		assert.False(t, ok)
		assert.Equal(t, 1, c.Len())
		c.Flush()
		assert.Equal(t, 0, c.Len())
	})

	t.Run("OverwriteResetsValue", func(t *testing.T) {
		c := New(time.Minute)
		c.Set("a", 1)
		c.Set("a", 2)
		v, _ := c.Get("a")
		assert.Equal(t, 2, v)
	})
}
