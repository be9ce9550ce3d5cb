// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/snipbin/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))
}

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4}, even))
	assert.NotNil(t, slice.Filter(nil, even))
	assert.Empty(t, slice.Filter([]int{1, 3}, even))
}
