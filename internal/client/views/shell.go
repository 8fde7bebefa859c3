package views

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/expenses/internal/client/models"
)

const Brand = "Expenses + receipts"

// Topbar shows the brand, navigation with the active page and the sign-in
// badge. active is "dashboard" or "analytics"; anything else highlights
// nothing.
func Topbar(active string, signedIn bool) string {
	nav := func(name, label string) string {
		if name == active {
			return activeStyle.Render(label)
		}
		return navStyle.Render(label)
	}

	badge := guestStyle.Render("Guest mode")
	if signedIn {
		badge = badgeStyle.Render("Signed in")
	}

	return strings.Join([]string{
		brandStyle.Render(Brand),
		nav("dashboard", "Dashboard"),
		nav("analytics", "Analytics"),
		badge,
	}, "  ")
}

// UserBar renders the avatar initial, name and email of u, or the sign-in
// hint when u is nil.
func UserBar(u *models.User) string {
	if u == nil {
		return mutedStyle.Render("Sign in to enable uploads and save expenses.")
	}
	return avatarStyle.Render(u.Initial()) + " " + titleStyle.Render(u.Name) + "\n" +
		"  " + mutedStyle.Render(u.DisplayEmail())
}

func Status(s string) string {
	if s == "" {
		return ""
	}
	return statusStyle.Render(s)
}

var summaryModeLabels = map[models.SummaryMode]string{
	models.SummaryTotal: "Total",
	models.SummaryMonth: "By month",
	models.SummaryNone:  "None",
}

var recurrenceLabels = map[models.RecurrenceFilter]string{
	models.RecurrenceAll:       "All",
	models.RecurrenceRecurring: "Recurring only",
	models.RecurrenceOneTime:   "One-time only",
}

// Controls summarises the dashboard view state on one line.
func Controls(v models.ViewState) string {
	summary := "Summary: " + summaryModeLabels[v.SummaryMode]
	if v.SummaryMode == models.SummaryMonth {
		summary += " (" + v.SummaryMonth + ")"
	}

	month := v.FilterMonth
	if month == models.MonthAll || month == "" {
		month = "All"
	}

	return mutedStyle.Render(fmt.Sprintf("%s · Month: %s · Recurrence: %s",
		summary, month, recurrenceLabels[v.FilterRecurring]))
}

// Summary renders the backend summary text; empty text renders nothing.
func Summary(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return amountStyle.Render(text)
}
