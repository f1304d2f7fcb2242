package anki

import (
	"archive/zip"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Lookup field names added to augmented notes.
const (
	FieldReading    = "Yomi_Reading"
	FieldMeaning    = "Yomi_Meaning"
	FieldInflection = "Yomi_Inflection"
)

// LookupFields are the fields added to augmented note types, in order.
var LookupFields = []string{FieldReading, FieldMeaning, FieldInflection}

// LookupData holds the dictionary data written into a note.
type LookupData struct {
	Reading    string
	Meaning    string
	Inflection string
}

// AddLookupFields appends the lookup fields missing from a model and pads
// the model's notes with empty values for them.
func (p *Package) AddLookupFields(modelID int64) error {
	model, ok := p.Models[modelID]
	if !ok {
		return fmt.Errorf("model %d not found", modelID)
	}

	existing := make(map[string]bool, len(model.Fields))
	for _, f := range model.Fields {
		existing[f.Name] = true
	}

	font, size := "Arial", 20
	if len(model.Fields) > 0 {
		font, size = model.Fields[0].Font, model.Fields[0].Size
	}
	for _, name := range LookupFields {
		if existing[name] {
			continue
		}
		model.Fields = append(model.Fields, Field{
			Name: name,
			Ord:  len(model.Fields),
			Font: font,
			Size: size,
		})
	}

	for _, note := range p.Notes {
		if note.ModelID != modelID {
			continue
		}
		for len(note.Fields) < len(model.Fields) {
			note.Fields = append(note.Fields, "")
			note.dirty = true
		}
	}

	return nil
}

// SetNoteLookup writes lookup data into a note. AddLookupFields must have
// been called for the note's model.
func (p *Package) SetNoteLookup(note *Note, data LookupData) error {
	model := p.GetModel(note)
	if model == nil {
		return fmt.Errorf("model %d not found for note %d", note.ModelID, note.ID)
	}

	values := map[string]string{
		FieldReading:    data.Reading,
		FieldMeaning:    data.Meaning,
		FieldInflection: data.Inflection,
	}
	set := 0
	for _, field := range model.Fields {
		v, ok := values[field.Name]
		if !ok {
			continue
		}
		if field.Ord >= len(note.Fields) {
			return fmt.Errorf("note %d has no field %s", note.ID, field.Name)
		}
		note.Fields[field.Ord] = v
		set++
	}
	if set != len(values) {
		return fmt.Errorf("model %s is missing lookup fields", model.Name)
	}

	note.dirty = true
	return nil
}

// SaveAs writes the modified package to a new .apkg file.
func (p *Package) SaveAs(outputPath string) error {
	if err := p.updateDatabase(); err != nil {
		return fmt.Errorf("updating database: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	w := zip.NewWriter(out)
	walkErr := filepath.Walk(p.tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(p.tempDir, path)
		if err != nil {
			return err
		}
		return addZipFile(w, path, filepath.ToSlash(rel))
	})
	if walkErr != nil {
		w.Close()
		out.Close()
		return walkErr
	}

	if err := w.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func addZipFile(w *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := w.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(dst, src)
	return err
}

// updateDatabase writes models and dirty notes back to the collection.
func (p *Package) updateDatabase() error {
	if err := p.updateModels(); err != nil {
		return err
	}
	return p.updateNotes()
}

func (p *Package) updateModels() error {
	var models string
	if err := p.db.QueryRow("SELECT models FROM col").Scan(&models); err != nil {
		return err
	}

	var modelsMap map[string]map[string]json.RawMessage
	if err := json.Unmarshal([]byte(models), &modelsMap); err != nil {
		return err
	}

	for key, raw := range modelsMap {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		model, ok := p.Models[id]
		if !ok {
			continue
		}
		flds, err := p.mergeFields(model)
		if err != nil {
			return err
		}
		raw["flds"] = flds
	}

	out, err := json.Marshal(modelsMap)
	if err != nil {
		return err
	}

	_, err = p.db.Exec("UPDATE col SET models = ?, mod = ?", string(out), time.Now().UnixMilli())
	return err
}

// mergeFields re-encodes the model's field list, keeping the stored keys of
// existing fields that this package does not model.
func (p *Package) mergeFields(model *Model) (json.RawMessage, error) {
	var stored []map[string]any
	if raw, ok := model.raw["flds"]; ok {
		if err := json.Unmarshal(raw, &stored); err != nil {
			return nil, err
		}
	}

	flds := make([]map[string]any, len(model.Fields))
	for i, f := range model.Fields {
		m := map[string]any{}
		if i < len(stored) {
			m = stored[i]
		}
		m["name"] = f.Name
		m["ord"] = f.Ord
		m["sticky"] = f.Sticky
		m["rtl"] = f.RTL
		m["font"] = f.Font
		m["size"] = f.Size
		if _, ok := m["media"]; !ok {
			m["media"] = []string{}
		}
		flds[i] = m
	}
	return json.Marshal(flds)
}

func (p *Package) updateNotes() error {
	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("UPDATE notes SET flds = ?, sfld = ?, csum = ?, mod = ?, usn = -1 WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, note := range p.Notes {
		if !note.dirty {
			continue
		}
		sortField := 0
		if model := p.GetModel(note); model != nil && model.SortF < len(note.Fields) {
			sortField = model.SortF
		}
		note.SFLD = note.Fields[sortField]
		note.CSum = checksum(note.Fields[0])
		note.Mod = now

		if _, err := stmt.Exec(strings.Join(note.Fields, fieldSeparator), note.SFLD, note.CSum, note.Mod, note.ID); err != nil {
			return fmt.Errorf("updating note %d: %w", note.ID, err)
		}
		note.dirty = false
	}

	return tx.Commit()
}

// checksum is the first 8 hex digits of the SHA-1 of the field with markup
// removed, as Anki computes it.
func checksum(field string) int64 {
	sum := sha1.Sum([]byte(StripHTML(field)))
	n, _ := strconv.ParseInt(fmt.Sprintf("%x", sum[:4]), 16, 64)
	return n
}

// AugmentedPath returns the default output path for an augmented copy of
// the package at path: "deck.apkg" becomes "deck.yomi.apkg".
func AugmentedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".yomi" + ext
}
