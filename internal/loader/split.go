package loader

import "bytes"

// lineSplitPoints computes n+1 offsets into data such that data[points[i]:points[i+1]]
// is a contiguous run of whole lines for every i. It advances each tentative
// midpoint size/n*i forward to the next newline, so no worker ever sees a
// partial line at its slice boundary.
//
// The first point is always 0 and the last is always len(data).
func lineSplitPoints(data []byte, n int) []int {
	size := len(data)
	points := make([]int, 0, n+1)
	points = append(points, 0)

	for i := 1; i < n; i++ {
		begin := size / n * i
		if begin >= size {
			points = append(points, size)
			continue
		}
		if offset := bytes.IndexByte(data[begin:], '\n'); offset >= 0 {
			points = append(points, begin+offset+1)
		} else {
			points = append(points, size)
		}
	}
	points = append(points, size)
	return points
}
