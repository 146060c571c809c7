package loader

import (
	"bytes"

	"github.com/vxgraph/louvain/internal/edge"
)

// charsPerLineEstimate sizes the initial capacity of a worker's output slice;
// it is a heuristic, not a correctness requirement.
const charsPerLineEstimate = 8

// parseSlice parses every whitespace-separated "u v" line in data and
// appends both packed orientations (u,v) and (v,u) to the result, so the
// directed edge array materializes the undirected graph. Lines that do not
// parse as two non-negative integers fitting in 32 bits are skipped silently.
func parseSlice(data []byte) []uint64 {
	out := make([]uint64, 0, len(data)/charsPerLineEstimate)

	for len(data) > 0 {
		nl := bytes.IndexByte(data, '\n')
		var line []byte
		if nl >= 0 {
			line, data = data[:nl], data[nl+1:]
		} else {
			line, data = data, nil
		}
		line = bytes.TrimSuffix(line, []byte{'\r'})

		u, v, ok := parseLine(line)
		if !ok {
			continue
		}
		out = append(out, edge.Pack(u, v), edge.Pack(v, u))
	}
	return out
}

// parseLine parses a single "u v" line into two vertex IDs. Any token that
// is empty, non-numeric, or exceeds uint32 range causes the whole line to be
// rejected; malformed lines are skipped, not fatal.
func parseLine(line []byte) (u, v uint32, ok bool) {
	fields := splitWhitespace(line)
	if len(fields) != 2 {
		return 0, 0, false
	}
	a, ok1 := parseUint32(fields[0])
	b, ok2 := parseUint32(fields[1])
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return a, b, true
}

// splitWhitespace splits on runs of ASCII whitespace, discarding empty
// fields, mirroring the tolerance for irregular spacing real edge-list
// exports have.
func splitWhitespace(line []byte) [][]byte {
	return bytes.FieldsFunc(line, func(r rune) bool {
		switch r {
		case ' ', '\t', '\v', '\f':
			return true
		}
		return false
	})
}

// parseUint32 parses a non-negative decimal integer that fits in uint32.
// It deliberately avoids strconv.ParseUint's general-purpose overhead: this
// is the single hottest loop in the loader (one call per token, two tokens
// per line, millions of lines).
func parseUint32(token []byte) (uint32, bool) {
	if len(token) == 0 || len(token) > 10 {
		return 0, false
	}
	var value uint64
	for _, c := range token {
		if c < '0' || c > '9' {
			return 0, false
		}
		value = value*10 + uint64(c-'0')
		if value > 0xFFFFFFFF {
			return 0, false
		}
	}
	return uint32(value), true
}
