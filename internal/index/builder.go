package index

import (
	"sort"
	"strconv"
	"strings"
)

// Builder assembles a dictionary blob and the matching sorted index.
type Builder struct {
	dict strings.Builder
	keys map[string][]int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{keys: make(map[string][]int)}
}

// Add appends record to the dictionary and indexes it under each key.
// Newlines in record are replaced with spaces.
func (b *Builder) Add(record string, keys ...string) {
	off := b.dict.Len()
	b.dict.WriteString(strings.ReplaceAll(record, "\n", " "))
	b.dict.WriteByte('\n')
	for _, k := range keys {
		if k == "" {
			continue
		}
		offs := b.keys[k]
		if len(offs) > 0 && offs[len(offs)-1] == off {
			continue
		}
		b.keys[k] = append(offs, off)
	}
}

// Len returns the number of distinct keys.
func (b *Builder) Len() int { return len(b.keys) }

// Dict returns the dictionary blob.
func (b *Builder) Dict() string { return b.dict.String() }

// Index returns the index blob, one "key,offset,..." line per key, sorted by
// byte order of the full line.
func (b *Builder) Index() string {
	lines := make([]string, 0, len(b.keys))
	for k, offs := range b.keys {
		var sb strings.Builder
		sb.WriteString(k)
		for _, off := range offs {
			sb.WriteByte(',')
			sb.WriteString(strconv.Itoa(off))
		}
		lines = append(lines, sb.String())
	}
	sort.Strings(lines)

	var out strings.Builder
	for _, l := range lines {
		out.WriteString(l)
		out.WriteByte('\n')
	}
	return out.String()
}
