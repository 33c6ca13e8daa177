package magazine

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2/log"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/dailypress/newsroom/internal/pkg/apperr"
)

var pdfMagic = []byte("%PDF-")

// minPDFSize rejects files that carry a magic marker but no usable body.
const minPDFSize = 100

// ValidatePDFBytes runs the minimal integrity check on rendered PDF bytes:
// non-empty, plausible length and the PDF magic marker. A corrupted render
// caught here stops the run before it can reach end users or the flipbook
// converter.
func ValidatePDFBytes(name string, data []byte) error {
	if len(data) == 0 {
		return apperr.Integrity(name, "rendered PDF is empty")
	}
	if len(data) < minPDFSize {
		return apperr.Integrity(name, "rendered PDF is suspiciously small (%d bytes)", len(data))
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return apperr.Integrity(name, "missing PDF signature")
	}
	return nil
}

// ValidatePDFFile applies the same check to a file on disk.
func ValidatePDFFile(path string) error {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return apperr.Integrity(name, "missing intermediate PDF: %v", err)
	}
	if info.Size() < minPDFSize {
		return apperr.Integrity(name, "intermediate PDF is suspiciously small (%d bytes)", info.Size())
	}

	head := make([]byte, len(pdfMagic))
	f, err := os.Open(path)
	if err != nil {
		return apperr.Integrity(name, "unreadable intermediate PDF: %v", err)
	}
	defer f.Close()
	if _, err := io.ReadFull(f, head); err != nil || !bytes.HasPrefix(head, pdfMagic) {
		return apperr.Integrity(name, "missing PDF signature")
	}
	return nil
}

// Merger merges ordered page PDFs into one document.
type Merger interface {
	Merge(inFiles []string, outFile string) error
}

// PDFCPUMerger merges with pdfcpu, a pure binary page-stream concatenation in
// input order.
type PDFCPUMerger struct{}

// Merge writes the merged document to outFile.
func (PDFCPUMerger) Merge(inFiles []string, outFile string) error {
	if err := api.MergeCreateFile(inFiles, outFile, false, nil); err != nil {
		return fmt.Errorf("merge PDFs: %w", err)
	}
	return nil
}

// PageCount returns the number of pages in a PDF file.
func PageCount(path string) (int, error) {
	return api.PageCountFile(path)
}

// Assembler validates and merges the per-page PDFs of one generation run.
type Assembler struct {
	Merger Merger
}

// NewAssembler builds an assembler over the pdfcpu merger.
func NewAssembler() *Assembler {
	return &Assembler{Merger: PDFCPUMerger{}}
}

// Assemble checks every intermediate PDF, merges them in order into outFile
// and removes the intermediates afterwards. Any integrity failure aborts
// before the merge; the intermediates are then left in place for inspection.
func (a *Assembler) Assemble(inFiles []string, outFile string) error {
	if len(inFiles) == 0 {
		return apperr.Integrity(filepath.Base(outFile), "no page PDFs to merge")
	}
	for _, in := range inFiles {
		if err := ValidatePDFFile(in); err != nil {
			return err
		}
	}

	if err := a.Merger.Merge(inFiles, outFile); err != nil {
		return err
	}

	for _, in := range inFiles {
		if err := os.Remove(in); err != nil {
			log.Warnf("[Magazine] could not remove intermediate %s: %v", in, err)
		}
	}
	return nil
}
