package magazine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/dailypress/newsroom/internal/pkg/apperr"
	"github.com/dailypress/newsroom/internal/pkg/summary"
)

// Summarizer produces the masthead topic line; satisfied by summary.Service.
type Summarizer interface {
	IssueSummary(ctx context.Context, headlines []summary.Headline) string
}

// Archiver stores a finished magazine off-host. Optional; archive failures
// never fail a run.
type Archiver interface {
	Store(ctx context.Context, path string) error
}

// Result describes one generated magazine.
type Result struct {
	Filename string `json:"filename"`
	PDFURL   string `json:"pdfUrl"`
	PDFPath  string `json:"-"`
}

// Generator runs the magazine pipeline: summary, page composition, headless
// rendering, integrity-checked merge, optional archive. One run is one
// sequential unit of work; the rendering session it acquires is released on
// every exit path.
type Generator struct {
	OutputDir  string
	LogoSrc    string
	Renderer   Renderer
	Assembler  *Assembler
	Summarizer Summarizer
	Archiver   Archiver
}

// MagazineFilename names a generated magazine by its generation date, so a
// re-run on the same day overwrites rather than accumulates.
func MagazineFilename(t time.Time) string {
	return fmt.Sprintf("DailyNews_%s.pdf", t.Format("2006-01-02"))
}

// Generate produces the merged magazine PDF for the given page layout.
func (g *Generator) Generate(ctx context.Context, pages []Page) (*Result, error) {
	if len(pages) == 0 {
		return nil, apperr.Validation("pages", "at least one page is required")
	}
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	issueSummary := ""
	if g.Summarizer != nil {
		issueSummary = g.Summarizer.IssueSummary(ctx, headlines(pages))
	}

	// Compose and keep the HTML on disk. The files are deliberately not
	// cleaned up so a bad print run can be inspected afterwards.
	mainHTMLPath := filepath.Join(g.OutputDir, "main_page.html")
	mainHTML := ComposeMainPage(pages[0], g.LogoSrc, issueSummary)
	if err := os.WriteFile(mainHTMLPath, []byte(mainHTML), 0o644); err != nil {
		return nil, fmt.Errorf("write main page html: %w", err)
	}

	htmlPaths := []string{mainHTMLPath}
	if len(pages) > 1 {
		furtherHTMLPath := filepath.Join(g.OutputDir, "further_pages.html")
		if err := os.WriteFile(furtherHTMLPath, []byte(ComposeFurtherPages(pages[1:])), 0o644); err != nil {
			return nil, fmt.Errorf("write further pages html: %w", err)
		}
		htmlPaths = append(htmlPaths, furtherHTMLPath)
	}

	session, err := g.Renderer.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	runID := uuid.NewString()[:8]
	var pagePDFs []string
	for _, htmlPath := range htmlPaths {
		pdf, err := session.RenderFile(htmlPath)
		if err != nil {
			return nil, err
		}
		base := strings.TrimSuffix(filepath.Base(htmlPath), ".html")
		if err := ValidatePDFBytes(base, pdf); err != nil {
			return nil, err
		}
		pdfPath := filepath.Join(g.OutputDir, fmt.Sprintf("%s_%s.pdf", base, runID))
		if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
			return nil, fmt.Errorf("write page pdf: %w", err)
		}
		pagePDFs = append(pagePDFs, pdfPath)
	}

	filename := MagazineFilename(time.Now())
	outPath := filepath.Join(g.OutputDir, filename)
	if err := g.Assembler.Assemble(pagePDFs, outPath); err != nil {
		return nil, err
	}

	if g.Archiver != nil {
		if err := g.Archiver.Store(ctx, outPath); err != nil {
			log.Warnf("[Magazine] archive upload failed for %s: %v", filename, err)
		}
	}

	return &Result{
		Filename: filename,
		PDFURL:   "/generated-pdfs/" + filename,
		PDFPath:  outPath,
	}, nil
}

// headlines collects the titles placed on the issue's pages for the
// summarizer.
func headlines(pages []Page) []summary.Headline {
	var hs []summary.Headline
	for _, page := range pages {
		for _, item := range page.News {
			hs = append(hs, summary.Headline{Title: item.Title})
		}
	}
	return hs
}

// ListGenerated enumerates previously generated magazine PDFs in the output
// directory, newest name last.
func ListGenerated(outputDir string) ([]string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read output dir: %w", err)
	}

	var pdfs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		pdfs = append(pdfs, entry.Name())
	}
	sort.Strings(pdfs)
	return pdfs, nil
}
