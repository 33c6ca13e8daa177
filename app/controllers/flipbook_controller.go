package controllers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/dailypress/newsroom/internal/pkg/apperr"
	"github.com/dailypress/newsroom/internal/pkg/flipbook"
	"github.com/dailypress/newsroom/internal/pkg/magazine"
)

const flipbookTitle = "Daily News Magazine"

// FlipbookController converts a generated magazine into a hosted flipbook.
type FlipbookController struct {
	client    *flipbook.Client
	outputDir string
}

// NewFlipbookController creates a flipbook controller over the conversion
// client and the magazine output directory.
func NewFlipbookController(client *flipbook.Client, outputDir string) *FlipbookController {
	return &FlipbookController{client: client, outputDir: outputDir}
}

type flipbookRequest struct {
	PDFPath string `json:"pdfPath"`
}

// HandleConvert resolves the requested PDF, validates it and hands it to the
// conversion service. Upstream failures surface with the provider's payload
// attached.
func (fc *FlipbookController) HandleConvert(c *fiber.Ctx) error {
	var req flipbookRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, apperr.Validation("", "invalid request body: %v", err))
	}
	if req.PDFPath == "" {
		return respondError(c, apperr.Validation("pdfPath", "no PDF path provided"))
	}

	fullPath, err := fc.resolvePath(req.PDFPath)
	if err != nil {
		return respondError(c, err)
	}
	if err := magazine.ValidatePDFFile(fullPath); err != nil {
		return respondError(c, err)
	}

	pdfURL, err := fc.client.ResolvePublicURL(c.Context(), fullPath, fc.outputDir)
	if err != nil {
		return respondError(c, err)
	}
	log.Infof("[Flipbook] converting %s", pdfURL)

	book, err := fc.client.Convert(c.Context(), pdfURL, flipbookTitle)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"flipbookUrl": book.URL,
		"thumbnail":   book.Thumbnail,
		"pdf":         book.SourcePDF,
	})
}

// resolvePath accepts an absolute path, a path relative to the output
// directory, or a bare filename in it.
func (fc *FlipbookController) resolvePath(pdfPath string) (string, error) {
	candidates := []string{pdfPath}
	if !filepath.IsAbs(pdfPath) {
		candidates = []string{
			filepath.Join(fc.outputDir, pdfPath),
			filepath.Join(fc.outputDir, filepath.Base(pdfPath)),
		}
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", apperr.NotFound("pdf", pdfPath)
}
