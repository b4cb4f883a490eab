package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"easycode/internal/evaluator"
	"easycode/internal/history"
	"easycode/internal/log"
	"easycode/internal/natlang"
	"easycode/internal/repl"
	"easycode/internal/runner"
	"easycode/internal/util"
)

var (
	// Version is the current version of the easycode binary, set at build time.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// config file
	configPath string
	// program source
	snippet string
	// evaluator config
	naturalLanguage bool
	maxDepth        int
	// parser config
	debugAST bool
	// logging
	logLevel string
	logFile  string
	logJSON  bool
	// history
	historyEnabled bool
	historyDriver  string
	historyDSN     string
	historyList    bool
)

func init() {
	defaults := util.DefaultConfiguration()

	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configPath, "config", "", "Path to an easycode.toml configuration file")
	flag.StringVar(&snippet, "e", "", "Evaluate the given source and exit")
	// evaluator config
	flag.BoolVar(&naturalLanguage, "nl", defaults.NaturalLanguage, "Rewrite word operators such as 'plus' before lexing")
	flag.IntVar(&maxDepth, "max-depth", defaults.MaxDepth, "Maximum depth of nested function calls")
	// parser config
	flag.BoolVar(&debugAST, "debug-ast", false, "Print the AST as JSON before evaluating")
	// log config
	flag.StringVar(&logLevel, "log-level", defaults.Log.Level, "Log level: trace, debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
	flag.BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
	// history config
	flag.BoolVar(&historyEnabled, "history", false, "Record REPL input to the history database")
	flag.StringVar(&historyDriver, "history-driver", defaults.History.Driver, "History database driver")
	flag.StringVar(&historyDSN, "history-dsn", defaults.History.DSN, "History database data source name")
	flag.BoolVar(&historyList, "history-list", false, "Print the recorded history and exit")
}

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	if version {
		printVersion()
		return 0
	}
	if help {
		printHelp()
		return 0
	}

	config, err := loadConfiguration()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	closeLog, err := log.Setup(config.Log.Level, config.Log.File, config.Log.JSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v; falling back to stderr\n", err)
		closeLog, _ = log.Setup(config.Log.Level, "", config.Log.JSON)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if historyList {
		return listHistory(ctx, config)
	}

	if snippet != "" {
		return runProgram(config, "<program>", snippet)
	}
	if filename := flag.Arg(0); filename != "" {
		src, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", filename, err)
			return 1
		}
		return runProgram(config, filename, string(src))
	}
	return startRepl(ctx, config)
}

// loadConfiguration layers the flags the user set over the config file.
func loadConfiguration() (util.Configuration, error) {
	home := os.Getenv("EASYCODE_HOME")
	config, err := util.LoadConfiguration(util.ConfigPath(configPath, home))
	if err != nil {
		return config, err
	}
	config.Version = Version
	config.BuildDate = BuildDate
	config.Commit = Commit
	config.Home = home

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "nl":
			config.NaturalLanguage = naturalLanguage
		case "max-depth":
			config.MaxDepth = maxDepth
		case "debug-ast":
			config.DebugAST = debugAST
		case "log-level":
			config.Log.Level = logLevel
		case "log-file":
			config.Log.File = logFile
		case "log-json":
			config.Log.JSON = logJSON
		case "history":
			config.History.Enabled = historyEnabled
		case "history-driver":
			config.History.Driver = historyDriver
		case "history-dsn":
			config.History.DSN = historyDSN
		}
	})
	return config, nil
}

func configure(r *runner.Runner, config util.Configuration) error {
	r.Evaluator.MaxDepth = config.MaxDepth
	if config.DebugAST {
		r.DebugAST = os.Stderr
	}
	if config.NaturalLanguage {
		p, err := natlang.New()
		if err != nil {
			return err
		}
		r.Preprocessor = p
	}
	return nil
}

func runProgram(config util.Configuration, name, src string) int {
	r := runner.New(evaluator.DefaultIO())
	if err := configure(r, config); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if _, err := r.Run(name, src); err != nil {
		fmt.Fprintln(os.Stderr, runner.Render(err))
		return 1
	}
	return 0
}

func startRepl(ctx context.Context, config util.Configuration) int {
	rp := repl.New(config.Prompt, os.Stdout)
	if err := configure(rp.Runner, config); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if config.History.Enabled {
		store, err := history.Open(ctx, config.History.Driver, config.History.DSN, config.History.Session)
		if err != nil {
			slog.Warn("history unavailable", slog.Any("error", err))
		} else {
			defer store.Close()
			rp.UseHistory(store)
		}
	}

	if err := rp.Start(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func listHistory(ctx context.Context, config util.Configuration) int {
	store, err := history.Open(ctx, config.History.Driver, config.History.DSN, config.History.Session)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer store.Close()

	entries, err := store.Entries(ctx, 0)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printHistory(os.Stdout, entries)
	return 0
}

func printHistory(w io.Writer, entries []history.Entry) {
	for _, e := range entries {
		mark := " "
		if e.Failed {
			mark = "!"
		}
		fmt.Fprintf(w, "%s %s #%d %s %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Session, e.Seq, mark, e.Source)
	}
}

func printVersion() {
	fmt.Printf("easycode version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: easycode [options] [filename]

Options:
  -config <path>          Read settings from the given TOML file.
  -e <source>             Evaluate the given source and exit.
  -nl                     Rewrite word operators such as 'plus' before lexing. Default is on.
  -max-depth <n>          Maximum depth of nested function calls. Default is 1000.
  -debug-ast              Print the AST as JSON before evaluating.
  -history                Record REPL input to the history database.
  -history-driver <name>  History database driver: %v.
  -history-dsn <dsn>      History database data source name.
  -history-list           Print the recorded history and exit.
  -help                   Display this help information and exit.
  -version                Display version information and exit.
  -log-level <level>      Set the log level: trace, debug, info, warn, error, none. Default is 'none'.
  -log-file <path>        Specify a log file to write logs. Default is stderr.
  -log-json               Write logs as JSON.

Details:
This is the EasyCode programming language.
Settings are read from -config, else $EASYCODE_HOME/easycode.toml, else ./easycode.toml.
You can provide a filename to execute an EasyCode program, or run without arguments to start the interactive REPL.

Examples:
  easycode                      Start the interactive REPL
  easycode -log-level=debug     Start with debug logging enabled
  easycode -e 'print(1 plus 2)' Evaluate a snippet
  easycode myfile.ec            Execute the provided EasyCode file

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, history.Drivers(), Version, BuildDate, Commit)
}
