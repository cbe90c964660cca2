// Package formcli implements the formctl command surface: run,
// catalog add, catalog list. It is shared by the root entry point and
// cmd/formctl so both binaries drive the exact same logic.
package formcli

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/mrdon/birocrat/internal/catalog"
	"github.com/mrdon/birocrat/internal/form"
	"github.com/mrdon/birocrat/internal/formconfig"
	"github.com/mrdon/birocrat/internal/formlog"
	"github.com/mrdon/birocrat/internal/tui"
)

// Run parses args and executes the selected formctl subcommand.
func Run(args []string) error {
	fs := flag.NewFlagSet("formctl", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("BIROCRAT_CONFIG"), "path to a formctl config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := formconfig.Load(*configPath)
	if err != nil {
		return err
	}
	formlog.SetLevel(parseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		if err := formlog.SetFileOutput(cfg.LogFile); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not configure log file: %v\n", err)
		}
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: formctl <run|catalog> ...")
	}

	switch rest[0] {
	case "run":
		if len(rest) != 2 {
			return fmt.Errorf("usage: formctl run <script-name-or-path>")
		}
		return runScript(cfg, rest[1])
	case "catalog":
		return catalogCommand(cfg, rest[1:])
	default:
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func catalogCommand(cfg formconfig.Config, args []string) error {
	cat, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		return err
	}
	defer cat.Close()

	if len(args) == 0 {
		return fmt.Errorf("usage: formctl catalog <add|list> ...")
	}
	switch args[0] {
	case "add":
		if len(args) != 3 {
			return fmt.Errorf("usage: formctl catalog add <name> <path>")
		}
		source, err := os.ReadFile(args[2])
		if err != nil {
			return err
		}
		return cat.Add(args[1], string(source))
	case "list":
		scripts, err := cat.List()
		if err != nil {
			return err
		}
		for _, s := range scripts {
			fmt.Printf("%s\t%s\n", s.Name, s.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	default:
		return fmt.Errorf("unknown catalog subcommand %q", args[0])
	}
}

func runScript(cfg formconfig.Config, nameOrPath string) error {
	source, err := loadScript(cfg, nameOrPath)
	if err != nil {
		return err
	}

	engine, err := form.New(source, nil)
	if err != nil {
		return err
	}

	var result interface{}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		app := tui.NewApplication(engine)
		result, err = app.Run()
	} else {
		result, err = tui.RunPlain(engine, os.Stdin, os.Stdout)
	}
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// loadScript resolves nameOrPath to script source: a literal .js file
// or anything containing a path separator is read straight off disk
// (falling back to cfg.ScriptDir), everything else is looked up by
// name in the sqlite catalog.
func loadScript(cfg formconfig.Config, nameOrPath string) (string, error) {
	if strings.HasSuffix(nameOrPath, ".js") || strings.ContainsRune(nameOrPath, os.PathSeparator) {
		path := nameOrPath
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(cfg.ScriptDir, nameOrPath)
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(source), nil
	}

	cat, err := catalog.Open(cfg.CatalogPath)
	if err != nil {
		return "", err
	}
	defer cat.Close()

	script, err := cat.Get(nameOrPath)
	if err != nil {
		return "", err
	}
	return script.Source, nil
}
