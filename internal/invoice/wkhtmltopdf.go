package invoice

import (
	"bytes"
	"context"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/go-faster/errors"
)

// Wkhtmltopdf converts HTML through the wkhtmltopdf binary.
type Wkhtmltopdf struct {
	// Path overrides the binary lookup in PATH and WKHTMLTOPDF_PATH.
	Path string
}

var _ Converter = Wkhtmltopdf{}

// Convert renders html as a single A4 page stream.
func (c Wkhtmltopdf) Convert(ctx context.Context, html []byte) ([]byte, error) {
	if c.Path != "" {
		wkhtmltopdf.SetPath(c.Path)
	}
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, errors.Wrap(err, "create pdf generator")
	}
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.Dpi.Set(300)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, errors.Wrap(err, "wkhtmltopdf")
	}
	return pdfg.Bytes(), nil
}
