// Package extract turns PDF bytes into cleaned plain text.
package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kalambet/docask/internal/textclean"
)

// Text extracts the text of every page in order, appends a newline after
// each page, and returns the result passed through textclean.Clean. Any
// parse failure is returned as an error value; the pdf library panics on
// some malformed files, so panics are recovered and converted too.
func Text(r io.ReaderAt, size int64) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text = ""
			err = fmt.Errorf("parsing PDF: %v", p)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	return textclean.Clean(sb.String()), nil
}

// TextFromFile reads a PDF from disk and extracts its text with the same
// semantics as Text.
func TextFromFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stating %s: %w", path, err)
	}

	return Text(f, info.Size())
}
