package source

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/spf13/afero"

	"github.com/Veraticus/painel/internal/common"
)

// Document is the plain text of a .pdf, .docx or .txt file.
type Document struct {
	Path string
	Type string
	Text string
	Size int64
}

// Document types.
const (
	DocumentPDF  = "application/pdf"
	DocumentDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	DocumentText = "text/plain"
)

var documentTypes = map[string]string{
	".pdf":  DocumentPDF,
	".docx": DocumentDOCX,
	".txt":  DocumentText,
}

// LoadText opens path on fs and returns its text, one paragraph (or PDF
// line) per line.
func LoadText(fs afero.Fs, path string) (Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	docType, ok := documentTypes[ext]
	if !ok {
		return Document{}, common.NewUserError(
			fmt.Sprintf("Formato de arquivo não suportado: %s (use PDF, DOCX ou TXT)", filepath.Base(path)),
			fmt.Errorf("%w: extension %q", common.ErrUnreadableSource, ext),
		)
	}

	f, err := fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, notFound(path, err)
		}
		return Document{}, unreadable(path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close document", "path", path, "error", closeErr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return Document{}, unreadable(path, err)
	}

	var text string
	switch docType {
	case DocumentPDF:
		text, err = readPDF(f, info.Size())
	case DocumentDOCX:
		text, err = readDOCX(f, info.Size())
	default:
		text, err = readAll(f)
	}
	if err != nil {
		return Document{}, unreadable(path, err)
	}

	slog.Debug("Loaded document", "path", path, "type", docType, "chars", len(text))
	return Document{Path: path, Type: docType, Text: text, Size: info.Size()}, nil
}

func readPDF(r io.ReaderAt, size int64) (text string, err error) {
	// The parser panics on some malformed object streams.
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf: %v", p)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	return readAll(plain)
}

// readDOCX walks word/document.xml, emitting w:t runs and ending a line at
// each paragraph.
func readDOCX(r io.ReaderAt, size int64) (string, error) {
	archive, err := zip.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}

	var body *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", errors.New("docx has no word/document.xml")
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document body: %w", err)
	}
	defer func() { _ = rc.Close() }()

	var (
		b      strings.Builder
		inText bool
	)
	dec := xml.NewDecoder(rc)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document body: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
