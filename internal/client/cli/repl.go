package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	page() Page
	touch(ctx context.Context)

	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Refresh(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Share(ctx context.Context, args []string) error
	Attachment(ctx context.Context, args []string) error
	Summary(ctx context.Context, args []string) error
	Filter(ctx context.Context, args []string) error
	Reset(ctx context.Context, args []string) error
	Analytics(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Recurring(ctx context.Context, args []string) error
	AddRecurring(ctx context.Context, args []string) error
	DeleteRecurring(ctx context.Context, args []string) error
	Shared(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Back(ctx context.Context, args []string) error
	Go(ctx context.Context, args []string) error
}

func helpText(page Page, loggedIn bool) string {
	switch {
	case page == PageShared:
		return "Available commands: import, attachment, back, login, exit"
	case page == PageAnalytics:
		return "Available commands: analytics [all|recurring|one-time], export, refresh, dashboard, exit"
	case loggedIn:
		return "Available commands: (l)ist, refresh, add, show <id>, delete <id>, share <id>, attachment <id>, " +
			"summary [total|month [MM]|none], filter month|recurring <value>, reset, analytics, " +
			"recurring, addrecurring, delrecurring <id>, shared <token>, go <path>, logout, exit"
	default:
		return "Available commands: login, shared <token>, analytics, go <path>, exit"
	}
}

// runREPL starts a simple read–eval–print loop for the expenses CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the rest as arguments, and dispatches to methods on 'a'.
// Every line counts as user activity for the inactivity timeout. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are printed and otherwise ignored;
// handlers turn domain failures into status messages themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("expenses %s> ", statusFn()))
		if ctx.Err() != nil || !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		a.touch(ctx)

		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText(a.page(), a.isLoggedIn()))
		case "login":
			err = a.Login(ctx, args)
		case "logout":
			err = a.Logout(ctx, args)
		case "l", "list":
			err = a.List(ctx, args)
		case "refresh":
			err = a.Refresh(ctx, args)
		case "add":
			err = a.Add(ctx, args)
		case "show":
			err = a.Show(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "share":
			err = a.Share(ctx, args)
		case "attachment":
			err = a.Attachment(ctx, args)
		case "summary":
			err = a.Summary(ctx, args)
		case "filter":
			err = a.Filter(ctx, args)
		case "reset":
			err = a.Reset(ctx, args)
		case "analytics":
			err = a.Analytics(ctx, args)
		case "export":
			err = a.Export(ctx, args)
		case "recurring":
			err = a.Recurring(ctx, args)
		case "addrecurring":
			err = a.AddRecurring(ctx, args)
		case "delrecurring":
			err = a.DeleteRecurring(ctx, args)
		case "shared":
			err = a.Shared(ctx, args)
		case "import":
			err = a.Import(ctx, args)
		case "back", "dashboard":
			err = a.Back(ctx, args)
		case "go":
			err = a.Go(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
