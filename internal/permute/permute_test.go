package permute_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwinsor/phenolph/internal/permute"
)

type tagged struct{ id int }

func (t tagged) Tid() int { return t.id }

func TestNop_LeavesOrderUnchanged(t *testing.T) {
	items := []permute.HasTid{tagged{0}, tagged{1}, tagged{2}}
	permute.Nop{}.Permute(items)
	for i, item := range items {
		assert.Equal(t, i, item.(tagged).id)
	}
}

func TestRandom_PreservesMultiset(t *testing.T) {
	items := []permute.HasTid{tagged{0}, tagged{1}, tagged{2}, tagged{3}}
	permute.Random{}.Permute(items)

	seen := make(map[int]bool)
	for _, item := range items {
		seen[item.(tagged).id] = true
	}
	assert.Len(t, seen, 4)
}

func TestMakeNop_ReturnsNop(t *testing.T) {
	p := permute.MakeNop()
	assert.IsType(t, permute.Nop{}, p)
}

func TestMakeRandom_ReturnsRandom(t *testing.T) {
	p := permute.MakeRandom()
	assert.IsType(t, permute.Random{}, p)
}
