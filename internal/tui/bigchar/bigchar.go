// Package bigchar renders a kanji as large block art using half-block
// characters.
package bigchar

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// fontPaths are common locations of fonts with Japanese coverage.
var fontPaths = []string{
	// macOS
	"/System/Library/Fonts/ヒラギノ角ゴシック W3.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/opentype/ipafont-gothic/ipag.ttf",
	"/usr/share/fonts/truetype/takao-gothic/TakaoGothic.ttf",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	// Windows
	"C:\\Windows\\Fonts\\msgothic.ttc",
	"C:\\Windows\\Fonts\\YuGothR.ttc",
	"C:\\Windows\\Fonts\\meiryo.ttc",
}

// threshold is the brightness above which a half cell is drawn.
const threshold = 40

type cacheKey struct {
	s          string
	cols, rows int
}

// Renderer draws glyphs of one font face and caches the results.
type Renderer struct {
	face font.Face

	mu    sync.Mutex
	cache map[cacheKey]string
}

// New returns a renderer for face. A nil face renders nothing.
func New(face font.Face) *Renderer {
	return &Renderer{face: face, cache: make(map[cacheKey]string)}
}

// Load returns a renderer using the first system font found in fontPaths.
func Load() *Renderer {
	for _, path := range fontPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if face := parseFace(data); face != nil {
			return New(face)
		}
	}
	return New(nil)
}

func parseFace(data []byte) font.Face {
	opts := &opentype.FaceOptions{Size: 64, DPI: 72}

	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			if face, err := opentype.NewFace(fnt, opts); err == nil {
				return face
			}
		}
	}
	if fnt, err := opentype.Parse(data); err == nil {
		if face, err := opentype.NewFace(fnt, opts); err == nil {
			return face
		}
	}
	return nil
}

// Available reports whether a font was found.
func (r *Renderer) Available() bool {
	return r != nil && r.face != nil
}

// Render draws the first rune of s in a cols x rows cell grid.
func (r *Renderer) Render(s string, cols, rows int) string {
	if !r.Available() || s == "" || cols <= 0 || rows <= 0 {
		return ""
	}

	key := cacheKey{s, cols, rows}
	r.mu.Lock()
	defer r.mu.Unlock()
	if out, ok := r.cache[key]; ok {
		return out
	}
	out := r.render([]rune(s)[0], cols, rows)
	r.cache[key] = out
	return out
}

func (r *Renderer) render(ch rune, cols, rows int) string {
	bounds, _, ok := r.face.GlyphBounds(ch)
	if !ok {
		return ""
	}
	glyphWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	const padding = 4
	srcWidth := max(glyphWidth+padding*2, cols)
	srcHeight := max(glyphHeight+padding*2, rows*2)

	src := image.NewGray(image.Rect(0, 0, srcWidth, srcHeight))
	draw.Draw(src, src.Bounds(), &image.Uniform{color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: r.face,
		Dot: fixed.P(
			(srcWidth-glyphWidth)/2-bounds.Min.X.Floor(),
			srcHeight-padding-bounds.Max.Y.Ceil(),
		),
	}
	d.DrawString(string(ch))

	return halfBlocks(scaleDown(src, cols, rows*2), cols, rows)
}

// scaleDown shrinks a grayscale image by area averaging.
func scaleDown(src *image.Gray, dstWidth, dstHeight int) *image.Gray {
	srcWidth, srcHeight := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, dstWidth, dstHeight))

	xRatio := float64(srcWidth) / float64(dstWidth)
	yRatio := float64(srcHeight) / float64(dstHeight)

	for dy := range dstHeight {
		sy1, sy2 := int(float64(dy)*yRatio), min(int(float64(dy+1)*yRatio), srcHeight)
		for dx := range dstWidth {
			sx1, sx2 := int(float64(dx)*xRatio), min(int(float64(dx+1)*xRatio), srcWidth)

			sum, count := 0, 0
			for sy := sy1; sy < sy2; sy++ {
				for sx := sx1; sx < sx2; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(dx, dy, color.Gray{Y: uint8(sum / count)})
			}
		}
	}

	return dst
}

// halfBlocks maps each pair of vertical pixels to one of ' ', ▀, ▄, █.
func halfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder
	for row := range rows {
		for col := range cols {
			top := brightness(img, col, row*2) > threshold
			bottom := brightness(img, col, row*2+1) > threshold
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func brightness(img *image.Gray, x, y int) uint8 {
	if !(image.Point{x, y}).In(img.Bounds()) {
		return 0
	}
	return img.GrayAt(x, y).Y
}
