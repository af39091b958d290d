// Package extractor turns PDF statement bytes into ordered page text.
package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrInvalidPDF means the bytes could not be read as a PDF document.
	ErrInvalidPDF = errors.New("invalid PDF")
	// ErrEncrypted means the document is password protected.
	ErrEncrypted = errors.New("PDF is password protected")
	// ErrNoText means no extraction method produced readable text, which is
	// typical of scanned or image-only statements.
	ErrNoText = errors.New("no readable text in PDF")
)

const (
	minTextLen     = 20
	minTextQuality = 0.6
)

// ExtractFile reads the PDF at path and returns the text of each page.
func ExtractFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ExtractText(data)
}

// ExtractText returns the text content of each page of the PDF in data.
// Extraction methods are tried in order and the first readable result wins.
func ExtractText(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: PDF library crashed: %v", ErrInvalidPDF, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return nil, fmt.Errorf("%w: %v", ErrEncrypted, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("%w: document has no pages", ErrInvalidPDF)
	}

	// Method 1: GetTextByRow keeps the statement's row layout.
	if pages = extractByRow(r, numPages); IsReadableText(pages) {
		return pages, nil
	}

	// Method 2: rebuild rows from positioned text objects.
	if pages = extractByContent(r, numPages); IsReadableText(pages) {
		return pages, nil
	}

	// Method 3: per-page plain text with the page's fonts.
	if pages = extractByPagePlainText(r, numPages); IsReadableText(pages) {
		return pages, nil
	}

	// Method 4: whole-document plain text.
	if plain := extractByReaderPlainText(r); IsReadableText([]string{plain}) {
		return []string{plain}, nil
	}

	return nil, ErrNoText
}

// textQuality returns the share of characters that are plain ASCII letters,
// digits, whitespace, common punctuation or the rupee sign. Garbage from
// identity-encoded fonts scores low.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			if isReadableRune(r) {
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

func isReadableRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return strings.ContainsRune(".,-/:;()'\"₹$%&@#!?+=*|•·–—_", r)
}

// IsReadableText reports whether pages hold at least minTextLen characters
// of text and at least 60% of them are readable.
func IsReadableText(pages []string) bool {
	if totalTextLen(pages) < minTextLen {
		return false
	}
	return textQuality(pages) >= minTextQuality
}

func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// extractByContent groups text objects by Y coordinate into rows and orders
// each row left to right.
func extractByContent(r *pdf.Reader, numPages int) []string {
	type textItem struct {
		x float64
		s string
	}

	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			y := int(math.Round(t.Y))
			rowMap[y] = append(rowMap[y], textItem{x: t.X, s: t.S})
		}

		// PDF Y grows upwards.
		ys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			ys = append(ys, y)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(ys)))

		var lines []string
		for _, y := range ys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool { return items[a].x < items[b].x })

			var sb strings.Builder
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					sb.WriteString("  ")
				}
				sb.WriteString(item.s)
				prevX = item.x
			}
			if line := strings.TrimSpace(sb.String()); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

func extractByPagePlainText(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fonts := make(map[string]*pdf.Font)
		for _, name := range page.Fonts() {
			f := page.Font(name)
			fonts[name] = &f
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len([]rune(strings.TrimSpace(p)))
	}
	return n
}
