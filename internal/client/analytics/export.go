package analytics

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"time"

	"github.com/dmitrijs2005/expenses/internal/archive"
	"github.com/dmitrijs2005/expenses/internal/client/currency"
	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/dmitrijs2005/expenses/internal/logging"
)

// A4WidthMM is the page width of exported reports.
const A4WidthMM = 210.0

// Capturer rasterises HTML and lays images out as PDF pages.
type Capturer interface {
	// CapturePNG renders doc and screenshots the element matching selector.
	CapturePNG(ctx context.Context, doc []byte, selector string) ([]byte, error)
	// PrintPDF places img on a single page of the given size.
	PrintPDF(ctx context.Context, img []byte, widthMM, heightMM float64) ([]byte, error)
}

// View is the analytics screen being exported.
type View interface {
	SetViewMode(models.RecurrenceFilter)
	Expenses() []models.Expense
}

type ExporterOption func(*Exporter)

// WithSettle sets how long to wait after switching the view mode.
func WithSettle(d time.Duration) ExporterOption {
	return func(e *Exporter) { e.settle = d }
}

func WithExportClock(now func() time.Time) ExporterOption {
	return func(e *Exporter) { e.now = now }
}

func WithExportLogger(l logging.Logger) ExporterOption {
	return func(e *Exporter) { e.logger = l }
}

type Exporter struct {
	capturer Capturer
	sink     archive.Sink
	money    currency.Formatter
	settle   time.Duration
	now      func() time.Time
	logger   logging.Logger
}

func NewExporter(c Capturer, sink archive.Sink, money currency.Formatter, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		capturer: c,
		sink:     sink,
		money:    money,
		settle:   50 * time.Millisecond,
		now:      time.Now,
		logger:   logging.Discard(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// PageHeightMM keeps the image aspect ratio at A4 width.
func PageHeightMM(widthPx, heightPx int) float64 {
	if widthPx <= 0 {
		return 0
	}
	return float64(heightPx) * A4WidthMM / float64(widthPx)
}

// ExportPDF switches view to all expenses, captures the analytics panel and
// stores a single-page PDF. It returns the sink location.
func (e *Exporter) ExportPDF(ctx context.Context, view View) (string, error) {
	view.SetViewMode(models.RecurrenceAll)

	if e.settle > 0 {
		select {
		case <-time.After(e.settle):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	now := e.now()
	report := Build(view.Expenses(), models.RecurrenceAll)

	var doc bytes.Buffer
	if err := RenderHTML(&doc, report, e.money, now); err != nil {
		return "", fmt.Errorf("render panel: %w", err)
	}

	img, err := e.capturer.CapturePNG(ctx, doc.Bytes(), PanelSelector)
	if err != nil {
		return "", fmt.Errorf("capture panel: %w", err)
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return "", fmt.Errorf("read capture: %w", err)
	}
	heightMM := PageHeightMM(cfg.Width, cfg.Height)

	pdf, err := e.capturer.PrintPDF(ctx, img, A4WidthMM, heightMM)
	if err != nil {
		return "", fmt.Errorf("print pdf: %w", err)
	}

	name := fmt.Sprintf("analytics-%s.pdf", now.Format("20060102-150405"))
	loc, err := e.sink.Put(ctx, name, "application/pdf", pdf)
	if err != nil {
		return "", fmt.Errorf("store pdf: %w", err)
	}

	e.logger.Info(ctx, "analytics exported",
		"location", loc, "entries", report.Stats.Count, "width_px", cfg.Width, "height_px", cfg.Height,
		"height_mm", heightMM)
	return loc, nil
}
