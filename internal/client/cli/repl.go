package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/folioadmin/folio/internal/client/bootstrap"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	state() bootstrap.State
	Status(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Can(ctx context.Context, permission string) error
	ShowConfig(ctx context.Context) error
	SetConfig(ctx context.Context, field, value string) error
	Ping(ctx context.Context) error
	Show(ctx context.Context, domain string) error
	ShowAll(ctx context.Context) error
	Refresh(ctx context.Context) error
	AdminConfig(ctx context.Context) error
	UpdateSettings(ctx context.Context, pairs []string) error
	Audit(ctx context.Context, limit int) error
}

const (
	helpSetup = "Available commands: status, config, config set <field> <value>, ping, exit"
	helpLogin = "Available commands: status, login, config, config set <field> <value>, ping, exit"
	helpAdmin = "Available commands: status, whoami, can <permission>, logout, config, config set <field> <value>, ping,\n" +
		"  profile, skills, certificates, projects, blog, contact, all, refresh,\n" +
		"  adminconfig, settings <key>=<value>..., audit [limit], exit"
)

// runREPL starts a simple read–eval–print loop for the admin CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands and handler errors are
// reported back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// The prompt shows the current status (from statusFn). Help lists what the
// current bootstrap state allows:
//
//	SetupRequired:  status, config, config set, ping, exit
//	LoginRequired:  the above plus login
//	Authenticated:  everything, including content and admin commands
//
// Handlers share the reader with the loop, so prompts inside a command
// consume the lines that follow it.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("folio %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			switch a.state() {
			case bootstrap.Authenticated:
				printlnFn(helpAdmin)
			case bootstrap.SetupRequired:
				printlnFn(helpSetup)
			default:
				printlnFn(helpLogin)
			}

		case "status":
			report(a.Status(ctx))

		case "login":
			report(a.Login(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "whoami":
			report(a.Whoami(ctx))

		case "can":
			if len(args) != 1 {
				printlnFn("Usage: can <permission>")
				continue
			}
			report(a.Can(ctx, args[0]))

		case "config":
			switch {
			case len(args) == 0:
				report(a.ShowConfig(ctx))
			case args[0] == "set" && len(args) >= 2:
				report(a.SetConfig(ctx, args[1], strings.Join(args[2:], " ")))
			default:
				printlnFn("Usage: config | config set <field> <value>")
			}

		case "ping":
			report(a.Ping(ctx))

		case "profile", "skills", "certificates", "projects", "blog", "contact":
			report(a.Show(ctx, cmd))

		case "all":
			report(a.ShowAll(ctx))

		case "refresh":
			report(a.Refresh(ctx))

		case "adminconfig":
			report(a.AdminConfig(ctx))

		case "settings":
			if len(args) == 0 {
				printlnFn("Usage: settings <key>=<value>...")
				continue
			}
			report(a.UpdateSettings(ctx, args))

		case "audit":
			limit := 0
			if len(args) > 0 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					printlnFn("Usage: audit [limit]")
					continue
				}
				limit = n
			}
			report(a.Audit(ctx, limit))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}
