package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSetDelete(t *testing.T) {
	c := New[string, []string](time.Minute, time.Minute)
	defer c.Close()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("user-1", []string{"User", "Administrator"})
	roles, ok := c.Get("user-1")
	assert.True(t, ok)
	assert.Equal(t, []string{"User", "Administrator"}, roles)

	c.Delete("user-1")
	_, ok = c.Get("user-1")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New[string, int](30*time.Millisecond, time.Minute)
	defer c.Close()

	c.Set("k", 42)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	time.Sleep(40 * time.Millisecond)

	// Süresi dolan entry okunamaz — fiziksel silme beklenmez.
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	_, ok := c.Get("a")
	assert.False(t, ok)
}
