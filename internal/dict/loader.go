package dict

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/f3rmion/yomi/internal/deinflect"
	"github.com/f3rmion/yomi/internal/entry"
	"github.com/f3rmion/yomi/internal/index"
	"github.com/f3rmion/yomi/internal/kana"
)

// Data file names inside a data directory.
const (
	WordsFile      = "dict.dat"
	WordsIndexFile = "dict.idx"
	NamesFile      = "names.dat"
	NamesIndexFile = "names.idx"
	KanjiFile      = "kanji.dat"
	RadicalsFile   = "radicals.dat"
)

// Paths locates the data files. Only Words is required. A missing index is
// rebuilt in memory from its dictionary.
type Paths struct {
	Words      string
	WordsIndex string
	Names      string
	NamesIndex string
	Kanji      string
	Radicals   string
	Rules      string // empty selects the built-in rule table
}

// DataPaths returns the standard file layout under dir.
func DataPaths(dir string) Paths {
	return Paths{
		Words:      filepath.Join(dir, WordsFile),
		WordsIndex: filepath.Join(dir, WordsIndexFile),
		Names:      filepath.Join(dir, NamesFile),
		NamesIndex: filepath.Join(dir, NamesIndexFile),
		Kanji:      filepath.Join(dir, KanjiFile),
		Radicals:   filepath.Join(dir, RadicalsFile),
	}
}

// Open reads the data files and returns a ready Dictionary. Files are read
// concurrently; the names dictionary is read on the first name search.
//
// Data in a legacy encoding is decoded to UTF-8. Index offsets on disk refer
// to the encoded bytes, so for such data the indices are rebuilt after
// decoding.
func Open(ctx context.Context, paths Paths, opts Options) (*Dictionary, error) {
	dec, err := decoderFor(opts.Encoding)
	if err != nil {
		return nil, err
	}

	var (
		words    Source
		kanji    string
		radicals string
		rules    *deinflect.Table
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		words, err = loadSource(gctx, paths.Words, paths.WordsIndex, dec)
		return err
	})
	g.Go(func() error {
		var err error
		kanji, err = readOptional(gctx, paths.Kanji, dec)
		if err == nil {
			kanji = sortLines(strings.ReplaceAll(kanji, "\r\n", "\n"))
		}
		return err
	})
	g.Go(func() error {
		var err error
		radicals, err = readOptional(gctx, paths.Radicals, dec)
		return err
	})
	if paths.Rules != "" {
		g.Go(func() error {
			var err error
			rules, err = LoadRules(paths.Rules)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cfg := Config{
		Words:    words,
		Kanji:    kanji,
		Radicals: entry.ParseRadicals(radicals),
		Rules:    rules,
		Options:  opts,
	}
	if exists(paths.Names) {
		cfg.Names = func(ctx context.Context) (Source, error) {
			if opts.Logger != nil {
				opts.Logger.Debug("loading names dictionary", "path", paths.Names)
			}
			return loadSource(ctx, paths.Names, paths.NamesIndex, dec)
		}
	}

	d := New(cfg)
	d.log.Debug("dictionary loaded",
		"words_bytes", len(words.Dict),
		"kanji_bytes", len(kanji),
		"radicals", len(cfg.Radicals),
		"rules", d.rules.NumRules(),
	)
	return d, nil
}

func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "euc-jp", "eucjp":
		return japanese.EUCJP.NewDecoder(), nil
	case "shift_jis", "shift-jis", "sjis":
		return japanese.ShiftJIS.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", name)
	}
}

func readFile(ctx context.Context, path string, dec *encoding.Decoder) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	var r io.Reader = f
	if dec != nil {
		r = transform.NewReader(f, dec)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return string(data), nil
}

func readOptional(ctx context.Context, path string, dec *encoding.Decoder) (string, error) {
	if path == "" {
		return "", nil
	}
	s, err := readFile(ctx, path, dec)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	return s, err
}

func loadSource(ctx context.Context, dictPath, indexPath string, dec *encoding.Decoder) (Source, error) {
	data, err := readFile(ctx, dictPath, dec)
	if err != nil {
		return Source{}, err
	}

	if dec == nil {
		idx, err := readOptional(ctx, indexPath, nil)
		if err != nil {
			return Source{}, err
		}
		if idx != "" {
			return Source{Dict: data, Index: idx}, nil
		}
	}
	return BuildSource(data), nil
}

// LoadRules reads a deinflection rule file.
func LoadRules(path string) (*deinflect.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rules: %w", err)
	}
	defer f.Close()
	return deinflect.Parse(f)
}

// BuildSource indexes a word or name dictionary. Every parsable record is
// keyed by its headword and by the hiragana forms of its headword and
// reading. Unparsable lines are left out of the index.
func BuildSource(data string) Source {
	b := index.NewBuilder()
	for _, line := range strings.Split(strings.TrimRight(data, "\n"), "\n") {
		line = strings.TrimRight(line, "\r")
		e, err := entry.ParseWord(line)
		if err != nil {
			b.Add(line)
			continue
		}
		reading := e.Reading
		if reading == "" {
			reading = e.Headword
		}
		b.Add(line, e.Headword, kana.ToHiragana(e.Headword), kana.ToHiragana(reading))
	}
	return Source{Dict: b.Dict(), Index: b.Index()}
}

func sortLines(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if sort.StringsAreSorted(lines) {
		return s
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n") + "\n"
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
