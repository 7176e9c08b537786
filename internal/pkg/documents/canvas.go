package documents

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// LineHeight is the multiplier applied to the font size for wrapped text.
const LineHeight = 1.15

// renderDate is stamped into every PDF so identical inputs produce
// identical bytes.
var renderDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Canvas is the drawing surface templates write to. Coordinates are points
// from the top-left corner of the page; Text places the baseline at y.
type Canvas interface {
	SetFont(family, style string, size float64)
	SetLineWidth(width float64)
	Text(x, y float64, s string)
	Line(x1, y1, x2, y2 float64)
	Rect(x, y, w, h float64)
	StringWidth(s string) float64
}

// The core fonts are cp1252 encoded; tr converts UTF-8 input before any
// text is drawn or measured.
type pdfCanvas struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPDFCanvas(pdf *fpdf.Fpdf) *pdfCanvas {
	return &pdfCanvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func newPDF(orientation string) *fpdf.Fpdf {
	pdf := fpdf.New(orientation, "pt", "Letter", "")
	pdf.SetCreationDate(renderDate)
	pdf.SetModificationDate(renderDate)
	pdf.SetCompression(true)
	pdf.SetCatalogSort(true)
	pdf.SetProducer("ftpr", false)
	pdf.SetAutoPageBreak(false, 0)
	return pdf
}

func (c *pdfCanvas) SetFont(family, style string, size float64) {
	c.pdf.SetFont(family, style, size)
}

func (c *pdfCanvas) SetLineWidth(width float64) { c.pdf.SetLineWidth(width) }

func (c *pdfCanvas) Text(x, y float64, s string) { c.pdf.Text(x, y, c.tr(s)) }

func (c *pdfCanvas) Line(x1, y1, x2, y2 float64) { c.pdf.Line(x1, y1, x2, y2) }

func (c *pdfCanvas) Rect(x, y, w, h float64) { c.pdf.Rect(x, y, w, h, "D") }

func (c *pdfCanvas) StringWidth(s string) float64 { return c.pdf.GetStringWidth(c.tr(s)) }

// Op is one recorded drawing call.
type Op struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	X2     float64 `json:"x2,omitempty"`
	Y2     float64 `json:"y2,omitempty"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
	Text   string  `json:"text,omitempty"`
	Family string  `json:"family,omitempty"`
	Style  string  `json:"style,omitempty"`
	Size   float64 `json:"size,omitempty"`
}

func (o Op) String() string {
	switch o.Kind {
	case "font":
		return fmt.Sprintf("font %s %q %.1f", o.Family, o.Style, o.Size)
	case "linewidth":
		return fmt.Sprintf("linewidth %.2f", o.W)
	case "text":
		return fmt.Sprintf("text %.2f,%.2f %q", o.X, o.Y, o.Text)
	case "line":
		return fmt.Sprintf("line %.2f,%.2f %.2f,%.2f", o.X, o.Y, o.X2, o.Y2)
	case "rect":
		return fmt.Sprintf("rect %.2f,%.2f %.2fx%.2f", o.X, o.Y, o.W, o.H)
	}
	return o.Kind
}

// recorder captures drawing calls. Text measurement is delegated to an
// fpdf instance so wrapping matches the rendered output.
type recorder struct {
	ops     []Op
	measure *pdfCanvas
}

func newRecorder(orientation string) *recorder {
	m := newPDF(orientation)
	m.AddPage()
	return &recorder{measure: newPDFCanvas(m)}
}

func (r *recorder) SetFont(family, style string, size float64) {
	r.measure.SetFont(family, style, size)
	r.ops = append(r.ops, Op{Kind: "font", Family: family, Style: style, Size: size})
}

func (r *recorder) SetLineWidth(width float64) {
	r.ops = append(r.ops, Op{Kind: "linewidth", W: width})
}

func (r *recorder) Text(x, y float64, s string) {
	r.ops = append(r.ops, Op{Kind: "text", X: x, Y: y, Text: s})
}

func (r *recorder) Line(x1, y1, x2, y2 float64) {
	r.ops = append(r.ops, Op{Kind: "line", X: x1, Y: y1, X2: x2, Y2: y2})
}

func (r *recorder) Rect(x, y, w, h float64) {
	r.ops = append(r.ops, Op{Kind: "rect", X: x, Y: y, W: w, H: h})
}

func (r *recorder) StringWidth(s string) float64 { return r.measure.StringWidth(s) }

// WrapText breaks text into lines no wider than maxWidth, greedily adding
// words while they fit. Explicit newlines start a new line. A single word
// wider than maxWidth gets a line of its own.
func WrapText(c Canvas, text string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, w := range words[1:] {
			candidate := current + " " + w
			if c.StringWidth(candidate) <= maxWidth {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = w
		}
		lines = append(lines, current)
	}
	return lines
}

// drawWrapped writes wrapped text starting at baseline y and returns the
// vertical space consumed.
func drawWrapped(c Canvas, x, y float64, text string, maxWidth, fontSize float64) float64 {
	lines := WrapText(c, text, maxWidth)
	step := fontSize * LineHeight
	for i, line := range lines {
		if line == "" {
			continue
		}
		c.Text(x, y+float64(i)*step, line)
	}
	return float64(len(lines)) * step
}

// Render draws t with f into a single-page PDF.
func Render(t Template, f Fields) ([]byte, error) {
	pdf := newPDF(t.Orientation)
	pdf.AddPage()
	t.draw(newPDFCanvas(pdf), f)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", t.Key, err)
	}
	return buf.Bytes(), nil
}

// Record returns the drawing calls t issues for f, without producing a PDF.
func Record(t Template, f Fields) []Op {
	r := newRecorder(t.Orientation)
	t.draw(r, f)
	return r.ops
}
