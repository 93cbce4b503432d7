package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/meltforce/wodlog/internal/config"
	"github.com/meltforce/wodlog/internal/history"
	"github.com/meltforce/wodlog/internal/movement"
	"github.com/meltforce/wodlog/internal/wodfile"
	"github.com/meltforce/wodlog/internal/workout"
)

// outputFlags are shared by the commands that write the log.
type outputFlags struct {
	configPath string
	file       string
	languages  string
	historyDir string
}

func (o *outputFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "optional config file with output defaults")
	fs.StringVar(&o.file, "f", "", "output markdown file (default workouts.md)")
	fs.StringVar(&o.languages, "languages", "", "comma separated languages; each writes its own file")
	fs.StringVar(&o.historyDir, "history", "", "directory of the batch history database (default ~/.wodlog)")
}

// resolve merges flags over the config file over the defaults.
func (o *outputFlags) resolve() (file string, languages []string, historyDir string, err error) {
	out := config.OutputConfig{File: "workouts.md", Languages: []string{"en"}}
	if o.configPath != "" {
		cfg, err := config.LoadClient(o.configPath)
		if err != nil {
			return "", nil, "", err
		}
		out = cfg.Output
	}
	if o.file != "" {
		out.File = o.file
	}
	if o.languages != "" {
		out.Languages = wodfile.ParseLanguages(o.languages)
	}
	if o.historyDir != "" {
		out.HistoryDir = o.historyDir
	}
	if out.HistoryDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", nil, "", fmt.Errorf("locating home directory: %w", err)
		}
		out.HistoryDir = filepath.Join(home, ".wodlog")
	}
	return out.File, out.Languages, out.HistoryDir, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(wodfile.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// handleCreate implements the default command: create the log, or run a
// batch when -wodfile is given.
func handleCreate(args []string, log *slog.Logger) int {
	fs := flag.NewFlagSet("wod", flag.ExitOnError)
	var out outputFlags
	out.register(fs)
	force := fs.Bool("force", false, "rewrite the front matter even if the file exists")
	date := fs.String("date", "", "front matter date (default today)")
	wodFile := fs.String("wodfile", "", "batch file to append")
	fs.Parse(args)

	file, languages, historyDir, err := out.resolve()
	if err != nil {
		log.Error("loading output settings", "error", err)
		return 1
	}
	day, err := parseDate(*date)
	if err != nil {
		log.Error("bad date", "error", err)
		return 1
	}
	wlog := wodfile.NewLog(file, languages)

	if *wodFile != "" {
		hist, err := history.Open(historyDir)
		if err != nil {
			log.Error("opening history", "error", err)
			return 1
		}
		defer hist.Close()

		stats, err := runBatch(batchOptions{Source: *wodFile, Log: wlog, Date: day, Force: *force}, hist, log)
		if err != nil {
			log.Error("batch failed", "error", err)
			return 1
		}
		printStats(stats)
		if stats.Failed > 0 {
			return 2
		}
		return 0
	}

	n, err := wlog.Init(day, *force)
	if err != nil {
		log.Error("creating log", "error", err)
		return 1
	}
	if n == 0 {
		log.Info("log already exists, use -force to rewrite", "files", wlog.Paths)
		return 0
	}
	log.Info("log created", "files", wlog.Paths)
	return 0
}

// handleAdd implements the 'add' command.
func handleAdd(args []string, log *slog.Logger) int {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	var out outputFlags
	out.register(fs)
	comments := fs.String("comments", "", "notes; a literal \\n starts a new line")
	name := fs.String("name", "", "workout name")
	fs.Parse(args)

	notation := strings.Join(fs.Args(), " ")
	if notation == "" {
		fmt.Fprintln(os.Stderr, `Usage: wod add [-f file.md] [-comments c] [-name n] "<notation>"`)
		return 1
	}

	file, languages, _, err := out.resolve()
	if err != nil {
		log.Error("loading output settings", "error", err)
		return 1
	}

	md, w, err := workout.Compile(notation, strings.ReplaceAll(*comments, `\n`, "\n"), *name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, warn := range w.Warnings() {
		log.Warn("workout rendered with loss", "warning", warn)
	}

	wlog := wodfile.NewLog(file, languages)
	if err := wlog.Append(md); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "%s does not exist; run 'wod -f %s' first\n", wlog.Paths[0], file)
			return 1
		}
		log.Error("appending workout", "error", err)
		return 1
	}
	log.Info("workout added", "files", wlog.Paths, "movements", w.MovementNames())
	return 0
}

// handleCheck implements the 'check' command.
func handleCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	tokens := fs.Bool("tokens", false, "also print the token stream")
	fs.Parse(args)

	notation := strings.Join(fs.Args(), " ")
	if notation == "" {
		fmt.Fprintln(os.Stderr, `Usage: wod check "<notation>"`)
		return 1
	}

	md, w, err := workout.Compile(notation, "", "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *tokens {
		for _, t := range w.Tokens {
			fmt.Println(t)
		}
		fmt.Println()
	}
	fmt.Print(md)
	for _, warn := range w.Warnings() {
		fmt.Fprintln(os.Stderr, "warning:", warn)
	}
	return 0
}

// handleList implements the 'list' command.
func handleList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	size := fs.Int("size", movement.DefaultPageSize, "rows per page")
	fs.Parse(args)

	rows, pages := movement.Page(*page, *size)
	if rows == nil {
		fmt.Fprintf(os.Stderr, "page %d out of range (1-%d)\n", *page, pages)
		return 1
	}
	for _, r := range rows {
		if r.URL != "" {
			fmt.Printf("  %-32s %s\n", r.Name, r.URL)
		} else {
			fmt.Printf("  %s\n", r.Name)
		}
	}
	fmt.Printf("\npage %d of %d\n", *page, pages)
	return 0
}

// handleHistory implements the 'history' command.
func handleHistory(args []string, log *slog.Logger) int {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	var out outputFlags
	out.register(fs)
	limit := fs.Int("n", 10, "number of runs to show")
	fs.Parse(args)

	_, _, historyDir, err := out.resolve()
	if err != nil {
		log.Error("loading output settings", "error", err)
		return 1
	}
	hist, err := history.Open(historyDir)
	if err != nil {
		log.Error("opening history", "error", err)
		return 1
	}
	defer hist.Close()

	records, err := hist.Recent(*limit)
	if err != nil {
		log.Error("reading history", "error", err)
		return 1
	}
	for _, r := range records {
		fmt.Printf("%s  %s -> %s  (%d appended, %d failed)\n",
			r.ProcessedAt.Local().Format("2006-01-02 15:04"), r.Source, r.Output, r.Appended, r.Failed)
	}
	return 0
}

func printStats(s *batchStats) {
	fmt.Println()
	fmt.Println("=== Batch Summary ===")
	fmt.Printf("  Lines read:     %d\n", s.Lines)
	fmt.Printf("  Appended:       %d\n", s.Appended)
	fmt.Printf("  Failed:         %d\n", s.Failed)
	if s.Skipped {
		fmt.Println("  Skipped:        file already appended to this log")
	}
	fmt.Println()
}
