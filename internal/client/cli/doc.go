// Package cli is the interactive expenses client.
//
// App owns the signed-in user, the cached expense and recurring lists, the
// dashboard view state and the status line. Commands typed into the REPL
// switch between the dashboard, analytics and shared-expense pages, call the
// backend through the services package and turn every failure into a status
// message. The REPL is started via App.Run(ctx), which blocks until the user
// exits.
package cli
