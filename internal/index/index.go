// Package index searches sorted, newline-delimited text blobs.
package index

import (
	"strconv"
	"strings"
)

// FindLine returns the line of blob that starts with key. Lines must be sorted
// by byte order. A blob that is not sorted gives unspecified results but never
// causes a panic.
//
// Index lines have the form "key,offset,offset"; callers search for key+","
// so that a key does not match a longer key sharing its prefix.
func FindLine(blob, key string) (string, bool) {
	lo, hi := 0, len(blob)
	for lo < hi {
		mid := lo + (hi-lo)/2
		start := strings.LastIndexByte(blob[:mid], '\n') + 1
		end := strings.IndexByte(blob[mid:], '\n')
		if end < 0 {
			end = len(blob)
		} else {
			end += mid
		}

		line := blob[start:end]
		prefix := line
		if len(prefix) > len(key) {
			prefix = prefix[:len(key)]
		}

		switch {
		case key < prefix:
			hi = start
		case key > prefix:
			lo = end + 1
		default:
			return line, true
		}
	}
	return "", false
}

// Offsets looks up key in an index blob and returns its record offsets.
// Malformed offsets are skipped.
func Offsets(idx, key string) []int {
	line, ok := FindLine(idx, key+",")
	if !ok {
		return nil
	}
	fields := strings.Split(line[len(key)+1:], ",")
	offsets := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			continue
		}
		offsets = append(offsets, n)
	}
	return offsets
}

// Record returns the line of dict starting at byte offset off.
func Record(dict string, off int) (string, bool) {
	if off < 0 || off >= len(dict) {
		return "", false
	}
	end := strings.IndexByte(dict[off:], '\n')
	if end < 0 {
		return dict[off:], true
	}
	return dict[off : off+end], true
}
