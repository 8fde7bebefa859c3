package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/expenses/internal/client/currency"
	"github.com/dmitrijs2005/expenses/internal/client/models"
)

// FrequencyLabel is the display form of a frequency, "Unspecified" if empty.
func FrequencyLabel(f models.Frequency) string {
	if f == "" {
		return "Unspecified"
	}
	return titleCaser.String(string(f))
}

func header(left, right string) string {
	gap := 2
	return left + strings.Repeat(" ", gap) + right
}

// ExpenseCard renders one expense. attachmentURL is shown as the download
// link when the expense has an attachment.
func ExpenseCard(e models.Expense, money currency.Formatter, attachmentURL string, showID bool) string {
	title := titleStyle.Render(e.Title())
	if showID {
		title = mutedStyle.Render(fmt.Sprintf("#%d ", e.ID)) + title
	}

	lines := []string{
		header(title, amountStyle.Render(money.Format(e.Amount))),
		mutedStyle.Render(e.Date),
	}
	if e.IsRecurring {
		lines = append(lines, pillStyle.Render("Recurring · "+FrequencyLabel(e.Frequency)))
	}
	if e.HasAttachment() {
		lines = append(lines, "Download "+e.AttachmentFilename+": "+linkStyle.Render(attachmentURL))
	} else {
		lines = append(lines, mutedStyle.Render("No attachment"))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// ExpenseList renders the dashboard list. attachmentURL maps an expense id
// to its download URL.
func ExpenseList(expenses []models.Expense, money currency.Formatter, loading bool, attachmentURL func(int64) string) string {
	if loading {
		return mutedStyle.Render("Loading expenses...")
	}
	if len(expenses) == 0 {
		return mutedStyle.Render("No expenses yet.")
	}

	cards := make([]string, 0, len(expenses))
	for _, e := range expenses {
		cards = append(cards, ExpenseCard(e, money, attachmentURL(e.ID), true))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// SharedCard renders a shared expense. It offers no delete or share actions.
func SharedCard(e models.Expense, money currency.Formatter, attachmentURL string) string {
	return ExpenseCard(e, money, attachmentURL, false)
}

func RecurringList(rules []models.RecurringRule, money currency.Formatter, loading bool) string {
	if loading {
		return mutedStyle.Render("Loading recurring...")
	}
	if len(rules) == 0 {
		return mutedStyle.Render("No recurring expenses yet.")
	}

	cards := make([]string, 0, len(rules))
	for _, r := range rules {
		title := mutedStyle.Render(fmt.Sprintf("#%d ", r.ID)) + titleStyle.Render(r.Title())
		body := strings.Join([]string{
			header(title, amountStyle.Render(money.Format(r.Amount))),
			mutedStyle.Render("Starts " + r.StartDate + " · " + FrequencyLabel(r.Frequency)),
		}, "\n")
		cards = append(cards, cardStyle.Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
