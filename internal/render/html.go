package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/f3rmion/yomi/internal/dict"
	"github.com/f3rmion/yomi/internal/entry"
)

var wordTemplate = template.Must(template.New("words").Parse(
	`{{if .Names}}<div class="w-title">Names Dictionary</div>{{end}}` +
		`{{range .Words}}<div class="w-entry">` +
		`<span class="w-kanji">{{.Headword}}</span>` +
		`{{if .Reading}}<span class="w-kana">{{.Reading}}</span>{{end}}` +
		`{{if .Reason}}<span class="w-conj">({{.Reason}})</span>{{end}}` +
		`<br><span class="w-def">{{.Gloss}}</span></div>{{end}}` +
		`{{if .More}}<div class="w-more">...</div>{{end}}`))

var kanjiTemplate = template.Must(template.New("kanji").Parse(
	`<table class="k-main-tb"><tr><td>` +
		`<div class="k-kanji">{{.Kanji}}</div>` +
		`<div class="k-eigo">{{.English}}</div>` +
		`<div class="k-yomi">{{.Readings}}</div>` +
		`{{if .Nanori}}<div class="k-yomi-ti">名乗り</div><div class="k-yomi">{{.Nanori}}</div>{{end}}` +
		`{{if .RadicalName}}<div class="k-yomi-ti">部首名</div><div class="k-yomi">{{.RadicalName}}</div>{{end}}` +
		`</td></tr>` +
		`{{if .Components}}<tr><td><table class="k-bbox-tb">` +
		`{{range .Components}}<tr><td class="k-bbox">{{.Radical}}</td><td class="k-bbox">{{.Yomi}}</td><td class="k-bbox">{{.English}}</td></tr>{{end}}` +
		`</table></td></tr>{{end}}` +
		`{{if .Rows}}<tr><td><table class="k-mix-tb">` +
		`{{range .Rows}}<tr><td class="k-mix-td">{{.Label}}</td><td class="k-mix-td">{{.Value}}</td></tr>{{end}}` +
		`</table></td></tr>{{end}}` +
		`</table>`))

// HTML renders a word or name lookup as HTML.
func HTML(res *dict.LookupResult, opts Options) (string, error) {
	if res == nil {
		return "", nil
	}
	data := struct {
		Names bool
		More  bool
		Words []Word
	}{res.Names, res.Truncated, Words(res, opts)}

	var b strings.Builder
	if err := wordTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering words: %w", err)
	}
	return b.String(), nil
}

// KanjiHTML renders a kanji entry as HTML.
func KanjiHTML(e *entry.KanjiEntry, opts Options) (string, error) {
	if e == nil {
		return "", nil
	}
	var b strings.Builder
	if err := kanjiTemplate.Execute(&b, KanjiView(e, opts)); err != nil {
		return "", fmt.Errorf("rendering kanji: %w", err)
	}
	return b.String(), nil
}

// ResultHTML renders a dict.Result as HTML.
func ResultHTML(res *dict.Result, opts Options) (string, error) {
	switch {
	case res == nil:
		return "", nil
	case res.Kanji != nil:
		return KanjiHTML(res.Kanji, opts)
	default:
		return HTML(res.Words, opts)
	}
}
