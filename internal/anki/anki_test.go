package anki

import (
	"archive/zip"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/yomi/internal/dict"
)

const testModels = `{"100": {"id": 100, "name": "Japanese", "sortf": 0,
 "flds": [
  {"name": "Expression", "ord": 0, "sticky": false, "rtl": false, "font": "Noto Sans JP", "size": 24, "media": [], "description": "word"},
  {"name": "Notes", "ord": 1, "sticky": false, "rtl": false, "font": "Noto Sans JP", "size": 24, "media": []}
 ],
 "tmpls": [{"name": "Card 1", "qfmt": "{{Expression}}", "afmt": "{{Notes}}"}]}}`

const testDecks = `{"1": {"id": 1, "name": "Default"}, "2": {"id": 2, "name": "Core 2k"}}`

// writePackage builds a minimal .apkg holding the given note fields.
func writePackage(t *testing.T, notes ...[]string) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "collection.anki2")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	for _, stmt := range []string{
		`CREATE TABLE col (id integer primary key, mod integer, models text, decks text)`,
		`CREATE TABLE notes (id integer primary key, guid text, mid integer, mod integer, usn integer,
			tags text, flds text, sfld text, csum integer, flags integer, data text)`,
		`CREATE TABLE cards (id integer primary key, nid integer, did integer, ord integer)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	_, err = db.Exec(`INSERT INTO col VALUES (1, 0, ?, ?)`, testModels, testDecks)
	require.NoError(t, err)
	for i, flds := range notes {
		id := int64(i + 1)
		_, err = db.Exec(`INSERT INTO notes VALUES (?, ?, 100, 0, 0, '', ?, ?, 0, 0, '')`,
			id, "guid"+flds[0], strings.Join(flds, fieldSeparator), flds[0])
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO cards VALUES (?, ?, 2, 0)`, id, id)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	apkg := filepath.Join(dir, "deck.apkg")
	writeZip(t, apkg, map[string]string{
		"collection.anki2": readFile(t, dbPath),
		"media":            "{}",
	})
	return apkg
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

type fakeSearcher map[string]*dict.LookupResult

func (f fakeSearcher) WordSearch(text string, limit int) *dict.LookupResult {
	return f[text]
}

var searcher = fakeSearcher{
	"食べた": {
		Matches:  []dict.Match{{Record: "食べる [たべる] /(v1) to eat/(P)/", Reason: "< past"}},
		MatchLen: 3,
	},
	"すし": {
		Matches:  []dict.Match{{Record: "すし /(n) sushi/"}},
		MatchLen: 2,
	},
}

func TestOpenPackage(t *testing.T) {
	pkg, err := OpenPackage(writePackage(t, []string{"食べた", "eat"}, []string{"<b>すし</b>", ""}))
	require.NoError(t, err)
	defer pkg.Close()

	require.Len(t, pkg.Notes, 2)
	assert.Equal(t, 2, pkg.Cards)
	assert.Len(t, pkg.Decks, 2)

	note := pkg.Notes[0]
	assert.Equal(t, "食べた", pkg.GetFieldValue(note, "expression"))
	assert.Equal(t, "eat", pkg.GetFieldValue(note, "Notes"))
	assert.Equal(t, "", pkg.GetFieldValue(note, "Missing"))
	assert.Equal(t, []string{"Expression", "Notes"}, pkg.GetFieldNames(note))

	summary := pkg.Summary()
	assert.Contains(t, summary, "Decks: 2\n    - Core 2k\n    - Default\n")
	assert.Contains(t, summary, "Japanese: Expression, Notes")
	assert.Contains(t, summary, "Notes: 2")
	assert.Contains(t, summary, "Cards: 2")
}

func TestOpenPackage_Errors(t *testing.T) {
	_, err := OpenPackage(filepath.Join(t.TempDir(), "missing.apkg"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.apkg")
	writeZip(t, empty, map[string]string{"media": "{}"})
	_, err = OpenPackage(empty)
	assert.ErrorContains(t, err, "no collection")

	evil := filepath.Join(t.TempDir(), "evil.apkg")
	writeZip(t, evil, map[string]string{"../escape": "x"})
	_, err = OpenPackage(evil)
	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(os.TempDir(), "escape"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestAugment(t *testing.T) {
	pkg, err := OpenPackage(writePackage(t,
		[]string{"食べた", "eat"},
		[]string{"<b>すし</b>", ""},
		[]string{"xyz", ""},
	))
	require.NoError(t, err)
	defer pkg.Close()

	stats, err := Augment(context.Background(), pkg, searcher, AugmentOptions{Field: "Expression"})
	require.NoError(t, err)
	assert.Equal(t, AugmentStats{Notes: 3, Matched: 2}, stats)

	out := filepath.Join(t.TempDir(), "out.apkg")
	require.NoError(t, pkg.SaveAs(out))

	saved, err := OpenPackage(out)
	require.NoError(t, err)
	defer saved.Close()

	model := saved.Models[100]
	require.NotNil(t, model)
	assert.Equal(t, []string{"Expression", "Notes", FieldReading, FieldMeaning, FieldInflection}, fieldNames(model))
	assert.Contains(t, model.raw, "tmpls")
	assert.Equal(t, "Noto Sans JP", model.Fields[2].Font)

	eaten := saved.Notes[0]
	require.Len(t, eaten.Fields, 5)
	assert.Equal(t, "たべる", saved.GetFieldValue(eaten, FieldReading))
	assert.Equal(t, "(v1) to eat; (P)", saved.GetFieldValue(eaten, FieldMeaning))
	assert.Equal(t, "past", saved.GetFieldValue(eaten, FieldInflection))
	assert.Equal(t, "食べた", eaten.SFLD)
	assert.Equal(t, checksum("食べた"), eaten.CSum)

	sushi := saved.Notes[1]
	assert.Equal(t, "すし", saved.GetFieldValue(sushi, FieldReading))
	assert.Equal(t, "(n) sushi", saved.GetFieldValue(sushi, FieldMeaning))
	assert.Equal(t, "", saved.GetFieldValue(sushi, FieldInflection))

	unmatched := saved.Notes[2]
	assert.Len(t, unmatched.Fields, 5)
	assert.Equal(t, "", saved.GetFieldValue(unmatched, FieldMeaning))
}

func TestAugment_SkipsAugmentedNotes(t *testing.T) {
	pkg, err := OpenPackage(writePackage(t, []string{"食べた", ""}, []string{"xyz", ""}))
	require.NoError(t, err)
	defer pkg.Close()

	_, err = Augment(context.Background(), pkg, searcher, AugmentOptions{Field: "Expression"})
	require.NoError(t, err)

	stats, err := Augment(context.Background(), pkg, searcher, AugmentOptions{Field: "Expression"})
	require.NoError(t, err)
	assert.Equal(t, AugmentStats{Notes: 2, Skipped: 1}, stats)

	stats, err = Augment(context.Background(), pkg, searcher, AugmentOptions{Field: "Expression", Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, AugmentStats{Notes: 2, Matched: 1}, stats)
	assert.Len(t, pkg.GetModel(pkg.Notes[0]).Fields, 5)
}

func TestAugment_Errors(t *testing.T) {
	pkg, err := OpenPackage(writePackage(t, []string{"食べた", ""}))
	require.NoError(t, err)
	defer pkg.Close()

	_, err = Augment(context.Background(), pkg, searcher, AugmentOptions{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Augment(ctx, pkg, searcher, AugmentOptions{Field: "Expression"})
	assert.ErrorIs(t, err, context.Canceled)

	stats, err := Augment(context.Background(), pkg, searcher, AugmentOptions{Field: "Reading"})
	require.NoError(t, err)
	assert.Equal(t, AugmentStats{}, stats)
}

func TestSetNoteLookup_RequiresFields(t *testing.T) {
	pkg, err := OpenPackage(writePackage(t, []string{"食べた", ""}))
	require.NoError(t, err)
	defer pkg.Close()

	err = pkg.SetNoteLookup(pkg.Notes[0], LookupData{Reading: "たべる"})
	assert.ErrorContains(t, err, "missing lookup fields")

	assert.Error(t, pkg.AddLookupFields(999))
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"食べる", "食べる"},
		{"<b>食べる</b>", "食べる"},
		{"<div>猫\n</div><br/>", "猫"},
		{"犬[sound:inu.mp3]", "犬"},
		{"&lt;tag&gt; &amp;", "<tag> &"},
		{" &nbsp;", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.in))
		})
	}
}

func TestAugmentedPath(t *testing.T) {
	assert.Equal(t, "decks/core.yomi.apkg", AugmentedPath("decks/core.apkg"))
	assert.Equal(t, "core.yomi", AugmentedPath("core"))
}
