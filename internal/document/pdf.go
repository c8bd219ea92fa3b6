package document

import (
	"context"
	"fmt"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/rs/zerolog"
)

// Renderer turns invoice HTML into a binary PDF. The engine behind it is
// opaque to callers.
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

type wkhtmltopdfRenderer struct {
	logger zerolog.Logger
}

func NewWkhtmltopdfRenderer(logger zerolog.Logger) Renderer {
	return &wkhtmltopdfRenderer{logger: logger}
}

func (r *wkhtmltopdfRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.MarginTop.Set(20)
	pdfg.MarginRight.Set(15)
	pdfg.MarginBottom.Set(20)
	pdfg.MarginLeft.Set(15)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.EnableLocalFileAccess.Set(false)
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}

	r.logger.Debug().Int("size", pdfg.Buffer().Len()).Msg("Invoice PDF rendered")

	return pdfg.Bytes(), nil
}
