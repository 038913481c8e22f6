package ecs

import (
	"fmt"
	"iter"
	"math/bits"
	"reflect"
)

// column is type-erased storage for one component type of an archetype.
type column interface {
	add(item any) int
	remove(index int)
	at(index int) any
	size() int
	indices() iter.Seq[int]
}

const chunkSize = 64

// chunk holds chunkSize values and a bitmask of the live slots.
type chunk[T any] struct {
	values [chunkSize]T
	live   uint64
}

// blockColumn stores values in fixed chunks so pointers handed out by at stay
// valid while the column grows. Freed slots are reused last-in first-out.
type blockColumn[T any] struct {
	chunks []*chunk[T]
	free   []int
	next   int
	count  int
}

func (c *blockColumn[T]) add(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		panic(fmt.Sprintf("ecs: cannot store %T in a %s column", item, reflect.TypeFor[T]()))
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
		if index/chunkSize == len(c.chunks) {
			c.chunks = append(c.chunks, new(chunk[T]))
		}
	}

	ch := c.chunks[index/chunkSize]
	ch.values[index%chunkSize] = value
	ch.live |= 1 << (index % chunkSize)
	c.count++
	return index
}

func (c *blockColumn[T]) slot(index int) (*chunk[T], uint64) {
	if index < 0 || index/chunkSize >= len(c.chunks) {
		return nil, 0
	}
	ch := c.chunks[index/chunkSize]
	bit := uint64(1) << (index % chunkSize)
	if ch.live&bit == 0 {
		return nil, 0
	}
	return ch, bit
}

// at returns a *T for a live slot, or nil.
func (c *blockColumn[T]) at(index int) any {
	ch, _ := c.slot(index)
	if ch == nil {
		return nil
	}
	return &ch.values[index%chunkSize]
}

func (c *blockColumn[T]) remove(index int) {
	ch, bit := c.slot(index)
	if ch == nil {
		return
	}

	var zero T
	ch.values[index%chunkSize] = zero
	ch.live &^= bit
	c.free = append(c.free, index)
	c.count--
}

func (c *blockColumn[T]) size() int { return c.count }

// indices yields live slots in ascending order.
func (c *blockColumn[T]) indices() iter.Seq[int] {
	return func(yield func(int) bool) {
		for ci, ch := range c.chunks {
			for live := ch.live; live != 0; live &= live - 1 {
				if !yield(ci*chunkSize + bits.TrailingZeros64(live)) {
					return
				}
			}
		}
	}
}
