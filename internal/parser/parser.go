package parser

import (
	"fmt"
	"strings"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// Parser defines the interface for statement parsers.
type Parser interface {
	// ParsePages takes raw text from PDF pages and returns the parsed statement.
	ParsePages(pages []string) (*models.ParseResult, error)
	// Name returns the human-readable statement source.
	Name() string
}

// New returns the parser for the given statement source.
func New(source models.SourceType, c Classifier, opts ...Option) (Parser, error) {
	switch source {
	case models.SourcePhonePe:
		return NewStatementParser(c, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported statement source: %q", source)
	}
}

// ParseSource maps a user-supplied name onto a SourceType.
func ParseSource(name string) (models.SourceType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "phonepe", "phone pe":
		return models.SourcePhonePe, nil
	default:
		return "", fmt.Errorf("unknown statement source %q; supported: phonepe", name)
	}
}

// phonePeMarkers are strings printed on every PhonePe statement export.
var phonePeMarkers = []string{"phonepe", "transaction statement for", "utr no"}

// AutoDetect tries to identify the statement source from its text. The
// result is a hint only; callers may still parse undetected text.
func AutoDetect(pages []string) (models.SourceType, error) {
	combined := strings.ToLower(strings.Join(pages, "\n"))
	for _, marker := range phonePeMarkers {
		if strings.Contains(combined, marker) {
			return models.SourcePhonePe, nil
		}
	}
	return "", fmt.Errorf("could not recognise statement source from content")
}
