package analytics

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/expenses/internal/client/currency"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB")).Bold(true)
	spendStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22d3ee"))
	topStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#818cf8"))
	splitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#34d399"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#374151")).Padding(0, 1)
)

const minBarWidth = 10

// RenderTerminal draws the report as text charts fitting width columns.
func RenderTerminal(r Report, money currency.Formatter, width int) string {
	barW := max(minBarWidth, width-48)

	sections := []string{
		titleStyle.Render("Analytics · " + ModeLabel(r.Mode)),
		renderStats(r.Stats, money),
		boxStyle.Render(renderMonthly(r.Monthly, money, barW)),
		boxStyle.Render(renderTop(r.Top, money, barW)),
		boxStyle.Render(renderSplit(r.Split, barW)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func stat(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value)
}

func renderStats(s Stats, money currency.Formatter) string {
	lines := []string{
		stat("Total spend", money.Format(s.Total)) + "   " + stat("Average per expense", money.Format(s.Average)),
		stat("Entries", fmt.Sprint(s.Count)) + "   " +
			stat("Recurring / One-time", fmt.Sprintf("%d / %d", s.RecurringCount, s.OneTimeCount)),
		labelStyle.Render(fmt.Sprintf("%s recurring · %s one-time",
			money.Format(s.RecurringTotal), money.Format(s.OneTimeTotal))),
		stat("Attachments", fmt.Sprintf("%d/%d", s.AttachmentCount, s.Count)),
	}
	return strings.Join(lines, "\n")
}

// bar is a horizontal bar of v relative to maxv, at most width cells.
func bar(style lipgloss.Style, v, maxv float64, width int) string {
	n := int(scale(v, maxv, width) + 0.5)
	if v > 0 && n == 0 {
		n = 1
	}
	return style.Render(strings.Repeat("█", n))
}

func renderMonthly(monthly []MonthlyTotal, money currency.Formatter, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Spending by month"))
	if len(monthly) == 0 {
		b.WriteString("\n" + labelStyle.Render("No dated expenses yet."))
		return b.String()
	}

	maxv := monthlyMax(monthly).InexactFloat64()
	for _, m := range monthly {
		fmt.Fprintf(&b, "\n%s %s %s", labelStyle.Render(m.Month),
			bar(spendStyle, m.Total.InexactFloat64(), maxv, width), money.Format(m.Total))
	}
	return b.String()
}

func renderTop(top []TopEntry, money currency.Formatter, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Top expenses"))
	if len(top) == 0 {
		b.WriteString("\n" + labelStyle.Render("Nothing to rank."))
		return b.String()
	}

	labelW := 0
	for _, t := range top {
		labelW = max(labelW, lipgloss.Width(t.Label))
	}
	labelW = min(labelW, 24)

	maxv := top[0].Amount.InexactFloat64()
	for _, t := range top {
		label := lipgloss.NewStyle().Width(labelW).MaxWidth(labelW).Render(t.Label)
		fmt.Fprintf(&b, "\n%d. %s %s %s", t.Rank, label,
			bar(topStyle, t.Amount.InexactFloat64(), maxv, width), money.Format(t.Amount))
	}
	return b.String()
}

func renderSplit(split []SplitBucket, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Attachment coverage"))

	total := 0
	for _, s := range split {
		total += s.Count
	}
	for _, s := range split {
		label := lipgloss.NewStyle().Width(16).Render(s.Label)
		fmt.Fprintf(&b, "\n%s %s %d", label, bar(splitStyle, float64(s.Count), float64(total), width), s.Count)
	}
	return b.String()
}
