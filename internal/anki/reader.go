// Package anki reads Anki .apkg packages and writes lookup results back into
// their notes.
package anki

import (
	"archive/zip"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// fieldSeparator joins note fields in the flds column.
const fieldSeparator = "\x1f"

// Package is an extracted Anki .apkg file.
type Package struct {
	path    string
	tempDir string
	db      *sql.DB

	Models map[int64]*Model
	Decks  map[int64]*Deck
	Notes  []*Note
	Cards  int
}

// Model is an Anki note type. raw holds every key of the stored JSON;
// saving replaces only the field list.
type Model struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Fields []Field `json:"flds"`
	SortF  int     `json:"sortf"`

	raw map[string]json.RawMessage
}

// Field is a field of a note type.
type Field struct {
	Name   string `json:"name"`
	Ord    int    `json:"ord"`
	Sticky bool   `json:"sticky"`
	RTL    bool   `json:"rtl"`
	Font   string `json:"font"`
	Size   int    `json:"size"`
}

// Deck is an Anki deck.
type Deck struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Note is an Anki note.
type Note struct {
	ID      int64
	GUID    string
	ModelID int64
	Mod     int64
	Tags    string
	Fields  []string
	SFLD    string
	CSum    int64

	dirty bool
}

// OpenPackage extracts an .apkg file to a temporary directory and loads
// its collection.
func OpenPackage(path string) (*Package, error) {
	tempDir, err := os.MkdirTemp("", "yomi-anki-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	pkg := &Package{
		path:    path,
		tempDir: tempDir,
		Models:  make(map[int64]*Model),
		Decks:   make(map[int64]*Deck),
	}

	if err := pkg.open(); err != nil {
		pkg.Close()
		return nil, err
	}
	return pkg, nil
}

func (p *Package) open() error {
	if err := extract(p.path, p.tempDir); err != nil {
		return err
	}

	dbPath := filepath.Join(p.tempDir, "collection.anki21")
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		dbPath = filepath.Join(p.tempDir, "collection.anki2")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("package has no collection: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	p.db = db

	if err := p.loadCollection(); err != nil {
		return err
	}
	if err := p.loadNotes(); err != nil {
		return err
	}
	if err := p.db.QueryRow("SELECT count(*) FROM cards").Scan(&p.Cards); err != nil {
		return fmt.Errorf("counting cards: %w", err)
	}
	return nil
}

// extract unzips src into dir, rejecting entries that escape dir.
func extract(src, dir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	root := filepath.Clean(dir) + string(os.PathSeparator)
	for _, f := range r.File {
		fpath := filepath.Join(dir, f.Name)
		if !strings.HasPrefix(fpath, root) {
			return fmt.Errorf("illegal file path: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, 0755); err != nil {
				return err
			}
			continue
		}
		if err := extractFile(f, fpath); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// loadCollection loads models and decks from the col table.
func (p *Package) loadCollection() error {
	var models, decks string
	if err := p.db.QueryRow("SELECT models, decks FROM col").Scan(&models, &decks); err != nil {
		return fmt.Errorf("reading collection: %w", err)
	}

	var modelsMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(models), &modelsMap); err != nil {
		return fmt.Errorf("parsing models: %w", err)
	}
	for _, raw := range modelsMap {
		var model Model
		if err := json.Unmarshal(raw, &model); err != nil {
			continue // Skip malformed models
		}
		if err := json.Unmarshal(raw, &model.raw); err != nil {
			continue
		}
		p.Models[model.ID] = &model
	}

	var decksMap map[string]json.RawMessage
	if err := json.Unmarshal([]byte(decks), &decksMap); err != nil {
		return fmt.Errorf("parsing decks: %w", err)
	}
	for _, raw := range decksMap {
		var deck Deck
		if err := json.Unmarshal(raw, &deck); err != nil {
			continue // Skip malformed decks
		}
		p.Decks[deck.ID] = &deck
	}

	return nil
}

// loadNotes loads all notes from the database.
func (p *Package) loadNotes() error {
	rows, err := p.db.Query(`SELECT id, guid, mid, mod, tags, flds, sfld, csum FROM notes ORDER BY id`)
	if err != nil {
		return fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			note Note
			flds string
		)
		if err := rows.Scan(&note.ID, &note.GUID, &note.ModelID, &note.Mod,
			&note.Tags, &flds, &note.SFLD, &note.CSum); err != nil {
			return fmt.Errorf("scanning note: %w", err)
		}
		note.Fields = strings.Split(flds, fieldSeparator)
		p.Notes = append(p.Notes, &note)
	}

	return rows.Err()
}

// GetModel returns the model for a note.
func (p *Package) GetModel(note *Note) *Model {
	return p.Models[note.ModelID]
}

// GetFieldValue returns a field value from a note by field name.
func (p *Package) GetFieldValue(note *Note, fieldName string) string {
	model := p.GetModel(note)
	if model == nil {
		return ""
	}
	for _, field := range model.Fields {
		if strings.EqualFold(field.Name, fieldName) && field.Ord < len(note.Fields) {
			return note.Fields[field.Ord]
		}
	}
	return ""
}

// GetFieldNames returns all field names for a note's model.
func (p *Package) GetFieldNames(note *Note) []string {
	model := p.GetModel(note)
	if model == nil {
		return nil
	}
	names := make([]string, len(model.Fields))
	for i, field := range model.Fields {
		names[i] = field.Name
	}
	return names
}

// Close removes the extracted files.
func (p *Package) Close() error {
	var err error
	if p.db != nil {
		err = p.db.Close()
	}
	if p.tempDir != "" {
		if rmErr := os.RemoveAll(p.tempDir); err == nil {
			err = rmErr
		}
	}
	return err
}

// Summary returns a summary of the package contents.
func (p *Package) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Anki Package: %s\n", p.path)
	fmt.Fprintf(&sb, "  Decks: %d\n", len(p.Decks))
	for _, name := range sortedNames(p.Decks, func(d *Deck) string { return d.Name }) {
		fmt.Fprintf(&sb, "    - %s\n", name)
	}
	fmt.Fprintf(&sb, "  Note types: %d\n", len(p.Models))
	for _, m := range p.Models {
		fmt.Fprintf(&sb, "    - %s: %s\n", m.Name, strings.Join(fieldNames(m), ", "))
	}
	fmt.Fprintf(&sb, "  Notes: %d\n", len(p.Notes))
	fmt.Fprintf(&sb, "  Cards: %d\n", p.Cards)

	return sb.String()
}

func fieldNames(m *Model) []string {
	names := make([]string, len(m.Fields))
	for i, f := range m.Fields {
		names[i] = f.Name
	}
	return names
}

func sortedNames[T any](m map[int64]T, name func(T) string) []string {
	names := make([]string, 0, len(m))
	for _, v := range m {
		names = append(names, name(v))
	}
	sort.Strings(names)
	return names
}
