package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/diillson/erp-reports/internal/domain/entity"
	"github.com/diillson/erp-reports/internal/domain/repository"
	"github.com/diillson/erp-reports/internal/shared/types"
)

// Formatos suportados pelo ExportRepository.
const (
	FormatXLSX    = "xlsx"
	FormatCSV     = "csv"
	FormatJSON    = "json"
	FormatPDF     = "pdf"
	FormatHTML    = "html"
	FormatHTMLPDF = "html-pdf"
)

type writerFunc func(io.Writer, entity.Document) error

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	writers map[string]writerFunc
	printer HTMLPrinter
	now     func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
// printer é usado apenas pelo formato html-pdf; nil o desabilita.
func NewExportRepository(printer HTMLPrinter) repository.ExportRepository {
	return newExportRepository(printer)
}

func newExportRepository(printer HTMLPrinter) *ExportRepositoryImpl {
	return &ExportRepositoryImpl{
		writers: map[string]writerFunc{
			FormatXLSX: writeXLSX,
			FormatCSV:  writeCSV,
			FormatJSON: writeJSON,
			FormatPDF:  writePDF,
			FormatHTML: writeHTML,
		},
		printer: printer,
		now:     time.Now,
	}
}

// SupportedFormats lists the formats this repository can write.
func (r *ExportRepositoryImpl) SupportedFormats() []string {
	formats := []string{FormatXLSX, FormatCSV, FormatJSON, FormatPDF, FormatHTML}
	if r.printer != nil {
		formats = append(formats, FormatHTMLPDF)
	}
	return formats
}

// Export renders doc in the given format and writes it under outputDir.
// The file is only created once rendering succeeded.
func (r *ExportRepositoryImpl) Export(ctx context.Context, format string, doc entity.Document, filename, outputDir string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))

	var buf bytes.Buffer
	ext := format
	switch {
	case format == FormatHTMLPDF && r.printer != nil:
		html, err := RenderHTML(doc)
		if err != nil {
			return "", err
		}
		data, err := r.printer.PrintPDF(ctx, html)
		if err != nil {
			return "", err
		}
		buf.Write(data)
		ext = FormatPDF
	case r.writers[format] != nil:
		if err := r.writers[format](&buf, doc); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, format)
	}

	outputFilename, err := r.generateFilename(filename, outputDir, ext)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(outputFilename, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("error creating %s file: %w", strings.ToUpper(format), err)
	}

	return filepath.Abs(outputFilename)
}

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", safeBaseName(base), timestamp, ext)
	return filepath.Join(dir, filename), nil
}

var unsafeFilenameRegex = regexp.MustCompile(`[^\pL\pN._-]+`)

// safeBaseName mantém letras, números, ponto, hífen e sublinhado.
func safeBaseName(base string) string {
	base = strings.Trim(unsafeFilenameRegex.ReplaceAllString(strings.TrimSpace(base), "_"), "_.")
	if base == "" {
		return "report"
	}
	return base
}

// cellText renders a grid cell as text; numbers keep their natural form.
func cellText(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
