// Package api serves the statement upload and parse endpoints over fiber.
package api

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/insightdelivered/upi-statement-parser/internal/category"
	"github.com/insightdelivered/upi-statement-parser/internal/extractor"
	"github.com/insightdelivered/upi-statement-parser/internal/logger"
	"github.com/insightdelivered/upi-statement-parser/internal/metrics"
	"github.com/insightdelivered/upi-statement-parser/internal/models"
	"github.com/insightdelivered/upi-statement-parser/internal/parser"
)

// PageBreak separates pages in client-extracted text.
const PageBreak = "\n---PAGE_BREAK---\n"

const mimePDF = "application/pdf"

// ParseResponse is the JSON body of a successful upload or parse.
type ParseResponse struct {
	Success      bool                 `json:"success"`
	Count        int                  `json:"count"`
	Message      string               `json:"message"`
	Source       string               `json:"source"`
	Transactions []models.Transaction `json:"transactions"`
	LineCount    int                  `json:"lineCount"`
	MatchedCount int                  `json:"matchedCount"`
	Summary      models.Summary       `json:"summary"`
	UploadID     string               `json:"uploadId,omitempty"`
	DebugLines   []models.DebugLine   `json:"debugLines,omitempty"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	LineCount *int   `json:"lineCount,omitempty"`
}

// ParseRequest is the JSON body accepted by /api/parse.
type ParseRequest struct {
	Text  string `json:"text"`
	Debug bool   `json:"debug"`
}

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	Classifier     *category.Classifier
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	MaxUploadBytes int
	StaticDir      string
	Version        string

	RateLimitPerSecond int
	RateLimitBurst     int
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": h.Version,
		"engine":  "fiber",
	})
}

// HandleTaxonomy returns the category taxonomy in use.
func (h *Handler) HandleTaxonomy(c *fiber.Ctx) error {
	return c.JSON(h.Classifier.Taxonomy())
}

// HandleUpload accepts a PDF statement in the "pdf" form field, extracts
// its text unless the client already sent it, and parses the transactions.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	log := logger.FromCtx(c)

	file, err := c.FormFile("pdf")
	if err != nil {
		h.Metrics.ObserveOutcome(metrics.OutcomeRejected)
		return writeError(c, fiber.StatusBadRequest, `No PDF file uploaded. Use field name "pdf".`)
	}
	if !isPDF(file.Filename, file.Header.Get(fiber.HeaderContentType)) {
		h.Metrics.ObserveOutcome(metrics.OutcomeRejected)
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are allowed.")
	}
	if h.MaxUploadBytes > 0 && file.Size > int64(h.MaxUploadBytes) {
		h.Metrics.ObserveOutcome(metrics.OutcomeRejected)
		return writeError(c, fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("PDF exceeds the %d byte upload limit.", h.MaxUploadBytes))
	}

	uploadID := uuid.NewString()
	log = log.With(zap.String("upload_id", uploadID), zap.String("filename", file.Filename))

	// Text extracted in the browser takes precedence over server extraction.
	pages := splitPages(c.FormValue("extractedText"))
	if len(pages) == 0 {
		f, err := file.Open()
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
		}

		start := time.Now()
		pages, err = extractor.ExtractText(data)
		h.Metrics.ObserveExtract(time.Since(start))
		if err != nil {
			h.Metrics.ObserveOutcome(metrics.OutcomeExtractFailed)
			log.Warn("pdf extraction failed", zap.Error(err))
			return writeError(c, fiber.StatusBadRequest, extractionMessage(err))
		}
	}

	res, err := h.parse(pages, c.FormValue("debug") == "true", log)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to process PDF.")
	}

	if len(res.Transactions) == 0 {
		lineCount := res.LineCount
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message:   "No transactions found in this PDF. Ensure it is a PhonePe UPI statement.",
			LineCount: &lineCount,
		})
	}

	log.Info("statement parsed",
		zap.Int("transactions", res.MatchedCount),
		zap.Int("lines", res.LineCount),
	)

	resp := newParseResponse(res)
	resp.UploadID = uploadID
	resp.Message = fmt.Sprintf("%d transactions imported from %q.", resp.Count, file.Filename)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleParse parses already extracted statement text. An empty result is
// still a 200; the caller decides what to do with it.
func (h *Handler) HandleParse(c *fiber.Ctx) error {
	var req ParseRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "Request body must be JSON.")
	}
	if strings.TrimSpace(req.Text) == "" {
		return writeError(c, fiber.StatusBadRequest, `Field "text" is required.`)
	}

	res, err := h.parse(splitPages(req.Text), req.Debug, logger.FromCtx(c))
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to parse statement.")
	}

	resp := newParseResponse(res)
	resp.Message = fmt.Sprintf("%d transactions parsed.", resp.Count)
	return c.JSON(resp)
}

func (h *Handler) parse(pages []string, debug bool, log *zap.Logger) (*models.ParseResult, error) {
	if _, err := parser.AutoDetect(pages); err != nil {
		log.Debug("statement not recognised as PhonePe, parsing anyway")
	}

	var opts []parser.Option
	if debug {
		opts = append(opts, parser.WithDebug())
	}
	p, err := parser.New(models.SourcePhonePe, h.Classifier, opts...)
	if err != nil {
		return nil, err
	}

	res, err := p.ParsePages(pages)
	if err != nil {
		return nil, err
	}
	h.Metrics.ObserveParse(res)
	return res, nil
}

func newParseResponse(res *models.ParseResult) ParseResponse {
	return ParseResponse{
		Success:      true,
		Count:        len(res.Transactions),
		Source:       string(res.Source),
		Transactions: res.Transactions,
		LineCount:    res.LineCount,
		MatchedCount: res.MatchedCount,
		Summary:      models.Summarize(res.Transactions),
		DebugLines:   res.DebugLines,
	}
}

func extractionMessage(err error) string {
	switch {
	case errors.Is(err, extractor.ErrEncrypted), errors.Is(err, extractor.ErrNoText):
		return "Could not extract text from this PDF. It may be a scanned image or encrypted."
	default:
		return "Invalid or corrupted PDF file. Could not read contents."
	}
}

func isPDF(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return strings.HasPrefix(strings.ToLower(contentType), mimePDF)
}

func splitPages(text string) []string {
	var pages []string
	for _, page := range strings.Split(text, PageBreak) {
		if page = strings.TrimSpace(page); page != "" {
			pages = append(pages, page)
		}
	}
	return pages
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Success: false, Message: msg})
}
