// Package deinflect reverses Japanese verb and adjective conjugations using a
// table of suffix rewrite rules.
package deinflect

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// Word class bits used by the embedded rule table. The dictionary's
// part-of-speech gate relies on the same assignments.
const (
	Ichidan  uint16 = 1 << iota // v1
	Godan                       // v5*
	AdjI                        // adj-i
	Kuru                        // vk
	Suru                        // vs-*
	_
	_
	Surface // unconjugated surface form

	// AnyType is the class of the identity candidate.
	AnyType uint16 = 0xFF
)

var classNames = []struct {
	bit  uint16
	name string
}{
	{Ichidan, "v1"},
	{Godan, "v5"},
	{AdjI, "adj-i"},
	{Kuru, "vk"},
	{Suru, "vs"},
	{Surface, "surface"},
}

// ClassNames lists the classes set in mask using dictionary tag names.
func ClassNames(mask uint16) []string {
	if mask == AnyType {
		return []string{"any"}
	}
	var names []string
	for _, c := range classNames {
		if mask&c.bit != 0 {
			names = append(names, c.name)
		}
	}
	return names
}

// Rule rewrites a trailing From into To. The low byte of Type is the set of
// classes the rule accepts as input; the high byte is the class of the word it
// produces.
type Rule struct {
	From   string
	To     string
	Type   uint16
	Reason int
}

// InputMask returns the classes this rule applies to.
func (r Rule) InputMask() uint16 { return r.Type & 0xFF }

// OutputMask returns the class of the rewritten word.
func (r Rule) OutputMask() uint16 { return r.Type >> 8 }

// Group is a run of consecutive rules sharing the same From length in runes.
type Group struct {
	FromLen int
	Rules   []Rule
}

// Table is a parsed rule file. Groups keep the order in which they appear
// in the source; rules are tried in that order.
type Table struct {
	Reasons []string
	Groups  []Group
}

// ParseError reports a rule line that could not be parsed.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("deinflect rules line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a tab-separated rule file. The first line is a header and is
// ignored. A line with one field adds a reason; a line with four fields
// (from, to, type, reason index) adds a rule. Reasons must be declared before
// the rules that reference them. Lines with any other field count are skipped.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{}
	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum == 1 {
			continue
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		switch len(fields) {
		case 1:
			t.Reasons = append(t.Reasons, fields[0])
		case 4:
			rule, err := parseRule(fields, len(t.Reasons))
			if err != nil {
				return nil, &ParseError{Line: lineNum, Err: err}
			}
			t.add(rule)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading deinflect rules: %w", err)
	}

	return t, nil
}

func parseRule(fields []string, numReasons int) (Rule, error) {
	if fields[0] == "" {
		return Rule{}, errors.New("empty from")
	}
	typ, err := strconv.ParseUint(fields[2], 10, 16)
	if err != nil {
		return Rule{}, fmt.Errorf("type %q: %w", fields[2], err)
	}
	reason, err := strconv.Atoi(fields[3])
	if err != nil {
		return Rule{}, fmt.Errorf("reason index %q: %w", fields[3], err)
	}
	if reason < 0 || reason >= numReasons {
		return Rule{}, fmt.Errorf("reason index %d out of range (%d reasons)", reason, numReasons)
	}
	return Rule{From: fields[0], To: fields[1], Type: uint16(typ), Reason: reason}, nil
}

// add appends a rule, opening a new group whenever the From length differs
// from the previous rule's.
func (t *Table) add(rule Rule) {
	n := utf8.RuneCountInString(rule.From)
	if len(t.Groups) == 0 || t.Groups[len(t.Groups)-1].FromLen != n {
		t.Groups = append(t.Groups, Group{FromLen: n})
	}
	g := &t.Groups[len(t.Groups)-1]
	g.Rules = append(g.Rules, rule)
}

// NumRules returns the total number of rules across all groups.
func (t *Table) NumRules() int {
	n := 0
	for _, g := range t.Groups {
		n += len(g.Rules)
	}
	return n
}

//go:embed deinflect.dat
var defaultRules string

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the built-in rule table.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(strings.NewReader(defaultRules))
		if err != nil {
			panic(fmt.Sprintf("embedded deinflect rules: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}
