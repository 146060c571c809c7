package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineSplitPointsNeverCutsALine(t *testing.T) {
	data := []byte("aaa\nbb\nccccc\nd\nee\n")
	points := lineSplitPoints(data, 4)

	require := assert.New(t)
	require.Equal(0, points[0])
	require.Equal(len(data), points[len(points)-1])
	for i := 1; i < len(points)-1; i++ {
		if points[i] == len(data) {
			continue
		}
		require.Equal(byte('\n'), data[points[i]-1], "point %d does not land right after a newline", i)
	}
}

func TestLineSplitPointsSingleWorker(t *testing.T) {
	data := []byte("a\nb\nc\n")
	points := lineSplitPoints(data, 1)
	assert.Equal(t, []int{0, len(data)}, points)
}

func TestLineSplitPointsEmptyData(t *testing.T) {
	points := lineSplitPoints(nil, 4)
	for _, p := range points {
		assert.Equal(t, 0, p)
	}
}

func TestLineSplitPointsNoTrailingNewline(t *testing.T) {
	data := []byte("aaa\nbbb")
	points := lineSplitPoints(data, 2)
	assert.Equal(t, 0, points[0])
	assert.Equal(t, len(data), points[len(points)-1])
}
