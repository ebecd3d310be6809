package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[int]string{3: "c", 1: "a", 2: "b"}
	assert.Equal(t, []int{1, 2, 3}, SortedKeys(m))
}

func TestCount(t *testing.T) {
	assert.Equal(t, 2, Count([]bool{true, false, true}, func(b bool) bool { return b }))
}
