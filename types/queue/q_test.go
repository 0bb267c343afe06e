package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func drain(q *Q) []string {
	var seen []string
	for q.Reset(); q.HasNext(); {
		seen = append(seen, q.Next())
	}

	return seen
}

func TestQ_ReIteration(t *testing.T) {
	q := New([]string{"a", "b", "c"})

	first := drain(q)
	second := drain(q)

	assert.Equal(t, []string{"a", "b", "c"}, first)
	assert.Equal(t, first, second, "re-iterating after Reset should yield the same tokens")
	assert.Equal(t, 3, q.Len())
}

func TestQ_RemovalDuringIteration(t *testing.T) {
	q := New([]string{"a", "b", "c", "d"})

	var seen []string
	for q.Reset(); q.HasNext(); {
		item := q.Next()
		seen = append(seen, item)
		if item == "b" {
			before := q.Len()
			assert.Equal(t, "b", q.PopCurrent())
			assert.Equal(t, before-1, q.Len())
		}
	}

	assert.Equal(t, []string{"a", "b", "c", "d"}, seen, "no token should be skipped or repeated")
	assert.Equal(t, []string{"a", "c", "d"}, q.Items())
}

func TestQ_RemoveEverything(t *testing.T) {
	q := New([]string{"a", "b", "c"})

	for q.Reset(); q.HasNext(); {
		q.Next()
		q.PopCurrent()
	}

	assert.Equal(t, 0, q.Len())
	assert.False(t, q.Reset().HasNext())
}

func TestQ_PopPair(t *testing.T) {
	q := New([]string{"x", "--param", "value", "y"})

	var kept []string
	for q.Reset(); q.HasNext(); {
		item := q.Next()
		if item == "--param" {
			q.PopCurrent()
			if assert.True(t, q.HasNext()) {
				assert.Equal(t, "value", q.Next())
				q.PopCurrent()
			}
			continue
		}
		kept = append(kept, item)
	}

	assert.Equal(t, []string{"x", "y"}, kept)
	assert.Equal(t, []string{"x", "y"}, q.Items())
}

func TestQ_PeekCurrent(t *testing.T) {
	q := New([]string{"first", "second"})

	item, ok := q.PeekCurrent()
	assert.True(t, ok)
	assert.Equal(t, "first", item)
	assert.Equal(t, 2, q.Len(), "peek should not consume")

	assert.Equal(t, "first", q.PopCurrent())
	item, ok = q.Reset().PeekCurrent()
	assert.True(t, ok)
	assert.Equal(t, "second", item)

	q.PopAll()
	_, ok = q.PeekCurrent()
	assert.False(t, ok)
}

func TestQ_PopAll(t *testing.T) {
	original := []string{"a", "b"}
	q := New(original)
	q.Next()

	assert.Equal(t, []string{"a", "b"}, q.PopAll())
	assert.Equal(t, 0, q.Len())
	assert.False(t, q.HasNext())
	assert.Equal(t, []string{"a", "b"}, original, "the source slice must not be modified")
}

func TestQ_PopCurrentOnEmpty(t *testing.T) {
	q := New(nil)

	assert.Panics(t, func() { q.PopCurrent() })
}

func TestQ_ForEach(t *testing.T) {
	q := New([]string{"-a", "keep", "-b"})

	q.ForEach(func(item string, index int) bool {
		if item[0] == '-' {
			q.PopCurrent()
		}
		return true
	})
	assert.Equal(t, []string{"keep"}, q.Items())

	count := 0
	q = New([]string{"1", "2", "3"})
	q.ForEach(func(item string, index int) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count, "returning false should stop the iteration")
}

func TestQ_At(t *testing.T) {
	q := New([]string{"only"})

	item, ok := q.At(0)
	assert.True(t, ok)
	assert.Equal(t, "only", item)

	_, ok = q.At(-1)
	assert.False(t, ok)
	_, ok = q.At(1)
	assert.False(t, ok)
}
