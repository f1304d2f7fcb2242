// Package dict implements dictionary lookups over sorted flat-text indices:
// longest-prefix word and name search with deinflection, single kanji lookup
// and whole-text translation.
package dict

import (
	"log/slog"

	"github.com/f3rmion/yomi/internal/deinflect"
	"github.com/f3rmion/yomi/internal/entry"
	"github.com/f3rmion/yomi/internal/pinyin"
)

// Default result budgets.
const (
	DefaultMaxWords     = 7
	DefaultMaxNames     = 20
	DefaultMaxTranslate = 7
)

// Source is a dictionary blob and its index. Each index line is
// "key,offset,offset,..." where offsets are byte offsets of records in Dict.
type Source struct {
	Dict  string
	Index string
}

// Empty reports whether the source has no index entries.
func (s Source) Empty() bool { return s.Index == "" }

// Options are the lookup settings shared by New and Open.
type Options struct {
	MaxWords      int
	MaxNames      int
	MaxTranslate  int
	KanjiFallback bool

	// Encoding of the data files read by Open: "utf-8" (default), "euc-jp"
	// or "shift_jis".
	Encoding string

	Logger *slog.Logger
}

// Config holds already loaded data for New.
type Config struct {
	Words    Source
	Kanji    string // kanji records, one per line, sorted
	Radicals entry.Radicals
	Rules    *deinflect.Table // nil selects the built-in table
	Names    NameLoader       // nil disables name search

	Options
}

// Dictionary answers lookups. It is immutable after construction apart from
// the lazily loaded names dictionary and is safe for concurrent use.
type Dictionary struct {
	words    Source
	kanji    string
	radicals entry.Radicals
	rules    *deinflect.Table
	names    namesGate
	pinyin   *pinyin.Parser

	maxWords      int
	maxNames      int
	maxTranslate  int
	kanjiFallback bool

	log *slog.Logger
}

// New creates a Dictionary from loaded data.
func New(cfg Config) *Dictionary {
	d := &Dictionary{
		words:         cfg.Words,
		kanji:         cfg.Kanji,
		radicals:      cfg.Radicals,
		rules:         cfg.Rules,
		names:         namesGate{load: cfg.Names},
		pinyin:        pinyin.NewParser(),
		maxWords:      orDefault(cfg.MaxWords, DefaultMaxWords),
		maxNames:      orDefault(cfg.MaxNames, DefaultMaxNames),
		maxTranslate:  orDefault(cfg.MaxTranslate, DefaultMaxTranslate),
		kanjiFallback: cfg.KanjiFallback,
		log:           cfg.Logger,
	}
	if d.rules == nil {
		d.rules = deinflect.Default()
	}
	if d.log == nil {
		d.log = slog.New(slog.DiscardHandler)
	}
	return d
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Rules returns the deinflection table in use.
func (d *Dictionary) Rules() *deinflect.Table { return d.rules }
