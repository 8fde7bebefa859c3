package analytics

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/expenses/internal/client/currency"
	"github.com/dmitrijs2005/expenses/internal/client/models"
	"github.com/shopspring/decimal"
)

//go:embed templates/panel.html.tmpl
var templatesFS embed.FS

const rowHeight = 24

var panelFuncs = template.FuncMap{
	"rowY":       func(i, offset int) int { return i*rowHeight + offset },
	"barsHeight": func(n int) int { return n*rowHeight + 8 },
	"barEnd":     func(w float64) float64 { return 200 + w + 8 },
}

var panelTmpl = template.Must(
	template.New("panel.html.tmpl").Funcs(panelFuncs).ParseFS(templatesFS, "templates/panel.html.tmpl"),
)

// PanelSelector matches the element captured for PDF export.
const PanelSelector = "#analytics-panel"

const (
	chartWidth  = 640
	chartHeight = 240
	chartPad    = 32
	barWidth    = 420
)

type point struct{ X, Y float64 }

type axisLabel struct {
	X    float64
	Text string
}

type areaChart struct {
	Width, Height int
	Line          string
	Fill          string
	Points        []point
	Labels        []axisLabel
	Max           string
}

type barRow struct {
	Label string
	Value string
	Width float64
}

type panelData struct {
	Mode        string
	Generated   string
	Total       string
	Average     string
	Count       int
	Recurring   string
	OneTime     string
	RecTotal    string
	OneTotal    string
	Attachments string
	Coverage    string
	Area        *areaChart
	Top         []barRow
	Split       []barRow
	BarWidth    int
}

// ModeLabel is the display name of a view mode.
func ModeLabel(m models.RecurrenceFilter) string {
	switch m {
	case models.RecurrenceRecurring:
		return "Recurring"
	case models.RecurrenceOneTime:
		return "One-time"
	default:
		return "All"
	}
}

// RenderHTML writes the analytics panel as a standalone HTML document.
func RenderHTML(w io.Writer, r Report, money currency.Formatter, generated time.Time) error {
	s := r.Stats
	data := panelData{
		Mode:        ModeLabel(r.Mode),
		Generated:   generated.Format("2006-01-02 15:04"),
		Total:       money.Format(s.Total),
		Average:     money.Format(s.Average),
		Count:       s.Count,
		Recurring:   fmt.Sprint(s.RecurringCount),
		OneTime:     fmt.Sprint(s.OneTimeCount),
		RecTotal:    money.Format(s.RecurringTotal),
		OneTotal:    money.Format(s.OneTimeTotal),
		Attachments: fmt.Sprintf("%d/%d", s.AttachmentCount, s.Count),
		Coverage:    fmt.Sprintf("%.0f%%", s.Coverage*100),
		Area:        buildArea(r.Monthly, money),
		Top:         topBars(r.Top, money),
		Split:       splitBars(r.Split),
		BarWidth:    barWidth,
	}
	return panelTmpl.Execute(w, data)
}

func buildArea(monthly []MonthlyTotal, money currency.Formatter) *areaChart {
	if len(monthly) == 0 {
		return nil
	}

	maxv := 0.0
	for _, m := range monthly {
		if v := m.Total.InexactFloat64(); v > maxv {
			maxv = v
		}
	}
	if maxv <= 0 {
		maxv = 1
	}

	innerW := float64(chartWidth - 2*chartPad)
	innerH := float64(chartHeight - 2*chartPad)
	step := 0.0
	if len(monthly) > 1 {
		step = innerW / float64(len(monthly)-1)
	}

	a := &areaChart{Width: chartWidth, Height: chartHeight, Max: money.Format(monthlyMax(monthly))}
	var line strings.Builder
	for i, m := range monthly {
		x := float64(chartPad) + step*float64(i)
		if len(monthly) == 1 {
			x = float64(chartWidth) / 2
		}
		y := float64(chartPad) + innerH*(1-m.Total.InexactFloat64()/maxv)
		a.Points = append(a.Points, point{X: x, Y: y})
		a.Labels = append(a.Labels, axisLabel{X: x, Text: m.Month})

		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&line, "%s%.1f,%.1f ", cmd, x, y)
	}

	a.Line = strings.TrimSpace(line.String())
	base := float64(chartHeight - chartPad)
	first, last := a.Points[0], a.Points[len(a.Points)-1]
	a.Fill = fmt.Sprintf("%s L%.1f,%.1f L%.1f,%.1f Z", a.Line, last.X, base, first.X, base)
	return a
}

func monthlyMax(monthly []MonthlyTotal) (max decimal.Decimal) {
	for i, m := range monthly {
		if i == 0 || m.Total.GreaterThan(max) {
			max = m.Total
		}
	}
	return max
}

func topBars(top []TopEntry, money currency.Formatter) []barRow {
	if len(top) == 0 {
		return nil
	}
	maxv := top[0].Amount.InexactFloat64()
	rows := make([]barRow, 0, len(top))
	for _, t := range top {
		rows = append(rows, barRow{
			Label: fmt.Sprintf("%d. %s", t.Rank, t.Label),
			Value: money.Format(t.Amount),
			Width: scale(t.Amount.InexactFloat64(), maxv, barWidth),
		})
	}
	return rows
}

func splitBars(split []SplitBucket) []barRow {
	total := 0
	for _, b := range split {
		total += b.Count
	}
	rows := make([]barRow, 0, len(split))
	for _, b := range split {
		rows = append(rows, barRow{
			Label: b.Label,
			Value: fmt.Sprint(b.Count),
			Width: scale(float64(b.Count), float64(total), barWidth),
		})
	}
	return rows
}

// scale maps v in [0, max] to [0, width]; non-positive inputs give 0.
func scale(v, max float64, width int) float64 {
	if v <= 0 || max <= 0 {
		return 0
	}
	if v > max {
		v = max
	}
	return v / max * float64(width)
}
