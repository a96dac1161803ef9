package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/jeanpaul/agenda/internal/config"
	"github.com/jeanpaul/agenda/internal/console"
	"github.com/jeanpaul/agenda/internal/logger"
	"github.com/jeanpaul/agenda/internal/store"
	"github.com/jeanpaul/agenda/internal/tui"
	"github.com/jeanpaul/agenda/pkg/version"
)

func main() {
	fileFlag := flag.String("file", "", "Address book file (overrides data_file)")
	lineFlag := flag.Bool("line", false, "Use the line console instead of the full-screen interface")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Commands that do not need the address book
	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println(version.String())
			return
		case "help":
			showHelp()
			return
		case "config":
			if err := cmdConfig(args[1:], os.Stdout); err != nil {
				fatal("%s", err)
			}
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config error: %s", err)
	}
	if *fileFlag != "" {
		cfg.DataFile = *fileFlag
	}

	log, closer, err := logger.New(logger.Options{Level: cfg.Log.Level, File: cfg.Log.File, Format: cfg.Log.Format})
	if err != nil {
		fatal("%s", err)
	}
	defer closer.Close()

	s := store.Open(cfg.DataFile, store.WithLogger(log), store.WithCorruptBackup(cfg.BackupCorrupt))

	if len(args) > 0 {
		warnRecovered(s)
		if err := runCommand(s, args, os.Stdout); err != nil {
			fatal("%s", err)
		}
		return
	}

	if !*lineFlag && cfg.UI.Mode == config.ModeTUI && isTerminal() {
		launchTUI(s, cfg, log)
	} else {
		launchConsole(s, log)
	}
}

func launchTUI(s *store.Store, cfg *config.Config, log *slog.Logger) {
	m := tui.NewModel(s, tui.Options{GlamourStyle: cfg.UI.GlamourStyle, Log: log})
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		fatal("TUI error: %s", err)
	}
	if fm, ok := final.(tui.Model); ok && fm.Err() != nil {
		fatal("%s", fm.Err())
	}
}

func launchConsole(s *store.Store, log *slog.Logger) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	r := &console.Runner{Store: s, In: os.Stdin, Out: os.Stdout, Log: log}
	if err := r.Run(ctx); err != nil {
		fatal("%s", err)
	}
}

// warnRecovered tells one-shot commands that the book was reset.
func warnRecovered(s *store.Store) {
	rec, ok := s.Recovered()
	if !ok {
		return
	}
	msg := fmt.Sprintf("warning: %s could not be loaded (%v); starting empty", s.Path(), rec.Reason)
	if rec.Backup != "" {
		msg += "; old file saved as " + rec.Backup
	}
	fmt.Fprintln(os.Stderr, tui.WarningStyle.Render(msg))
}

// isTerminal reports whether both ends of the session are a terminal.
func isTerminal() bool {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("error: "+msg))
	os.Exit(1)
}

func showHelp() {
	help := `
` + tui.BannerStyle.Render("agenda") + ` - a personal address book for your terminal

` + tui.LabelStyle.Render("USAGE:") + `
  agenda [flags]                  Open the address book
  agenda [flags] <command> [args] Run a command

` + tui.LabelStyle.Render("COMMANDS:") + `
  list                            Print every contact
  search <text>                   Print contacts whose name contains text
  show <id>                       Print one contact
  add --name N --phone P [...]    Add a contact (also --email, --street,
                                  --number, --municipality, --postal-code)
  delete <id>                     Delete a contact
  export <file.xlsx|file.yaml|->  Export contacts (- writes YAML to stdout)
  import <file|pattern>...        Import contacts from xlsx or yaml files
  config init [path]              Write a default config file
  version                         Show version
  help                            Show this help

` + tui.LabelStyle.Render("FLAGS:") + `
  --file <path>                   Use this address book file
  --line                          Use the line console
  --version                       Show version
  --help, -h                      Show this help

` + tui.LabelStyle.Render("CONFIGURATION:") + `
  config.yaml in the working directory or ` + config.Dir() + `
  Every key can be set from the environment, e.g. AGENDA_DATA_FILE,
  AGENDA_LOG_LEVEL, AGENDA_UI_MODE.

` + tui.LabelStyle.Render("EXAMPLES:") + `
  agenda                          Open the full-screen interface
  agenda --line                   Open the numbered menu
  agenda search ann               Find contacts named like "ann"
  agenda export contacts.xlsx     Export to a spreadsheet
  agenda import 'backup/**/*.yaml'
`
	fmt.Println(help)
}
