package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jask/draggable/internal/config"
	"github.com/jask/draggable/internal/database"
	"github.com/jask/draggable/internal/database/repository"
	"github.com/jask/draggable/internal/service"
	"github.com/jask/draggable/internal/sample"
	"github.com/jask/draggable/internal/touch"
	"github.com/jask/draggable/internal/tui"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env *env, args []string) error
}

var commands = []command{
	{"run", "run                 open the drag view (default)", runView},
	{"recordings", "recordings          list journaled recordings", listRecordings},
	{"replay", "replay <id>         replay a recording and print its trajectory", replayRecording},
	{"prune", "prune [keep]        delete all but the newest recordings (default 10)", pruneRecordings},
	{"reset", "reset               delete every recording", resetJournal},
	{"seed", "seed [drags]        journal a synthetic recording", seedRecording},
}

type env struct {
	cfg config.Config
	log *zap.Logger
	db  *sql.DB
	out io.Writer
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one command and returns the process exit code. Deferred
// cleanup runs before main exits.
func run(argv []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	name, args := "run", argv
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	cmd, ok := lookup(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", name)
		if s := suggest(name); s != "" {
			fmt.Fprintf(os.Stderr, "did you mean %q?\n", s)
		}
		usage(os.Stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	e := &env{cfg: cfg, log: log, out: os.Stdout}
	if cfg.Journal.Enabled || cmd.name != "run" {
		if err := os.MkdirAll(filepath.Dir(cfg.Journal.Path), 0o755); err != nil {
			log.Error("mkdir journal dir", zap.Error(err))
			fmt.Fprintf(os.Stderr, "journal: %v\n", err)
			return 1
		}
		db, err := database.OpenJournal(cfg.Journal.Path)
		if err != nil {
			log.Error("journal", zap.String("path", cfg.Journal.Path), zap.Error(err))
			fmt.Fprintf(os.Stderr, "journal: %v\n", err)
			return 1
		}
		defer db.Close()
		e.db = db
	}

	if err := cmd.run(ctx, e, args); err != nil {
		log.Error("command failed", zap.String("command", cmd.name), zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// suggest returns the closest command name within two edits.
func suggest(name string) string {
	best, bestDist := "", 3
	for _, c := range commands {
		if d := levenshtein.ComputeDistance(strings.ToLower(name), c.name); d < bestDist {
			best, bestDist = c.name, d
		}
	}
	return best
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: draggable <command> [args]")
	for _, c := range commands {
		fmt.Fprintln(w, "  "+c.usage)
	}
}

// newLogger writes JSON logs to the configured file; the terminal belongs to the view.
func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("mkdir log dir: %w", err)
		}
		zc.OutputPaths = []string{cfg.Path}
		zc.ErrorOutputPaths = []string{cfg.Path}
	}
	return zc.Build()
}

func runView(ctx context.Context, e *env, _ []string) error {
	var rec *service.Recorder
	if e.db != nil {
		rec = &service.Recorder{
			Recordings: repository.NewRecordingRepo(e.db),
			Events:     repository.NewEventRepo(e.db),
			Log:        e.log,
		}
		id, err := rec.Begin(ctx, "view")
		if err != nil {
			return err
		}
		e.log.Info("recording input", zap.String("recording", id))
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if e.cfg.UI.MouseMode == "all" {
		opts = append(opts, tea.WithMouseAllMotion())
	} else {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(tui.New(ctx, e.cfg, e.log, rec), opts...)

	if path := e.cfg.Input.TouchFeed; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open touch feed: %w", err)
		}
		defer f.Close()
		go func() {
			err := touch.Feed(ctx, f, e.log, func(fr touch.Frame) { p.Send(tui.TouchMsg(fr)) })
			if err != nil && ctx.Err() == nil {
				e.log.Warn("touch feed stopped", zap.Error(err))
			}
		}()
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func listRecordings(ctx context.Context, e *env, _ []string) error {
	recs := repository.NewRecordingRepo(e.db)
	events := repository.NewEventRepo(e.db)
	list, err := recs.List(ctx)
	if err != nil {
		return fmt.Errorf("list recordings: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(e.out, "no recordings")
		return nil
	}
	for _, r := range list {
		n, err := events.Count(ctx, r.ID)
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		fmt.Fprintf(e.out, "%s  %s  %5d events  %s\n", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), n, r.Label)
	}
	return nil
}

func replayRecording(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("replay: expected a recording id")
	}
	rp := &service.Replayer{
		Recordings: repository.NewRecordingRepo(e.db),
		Events:     repository.NewEventRepo(e.db),
		Log:        e.log,
	}
	res, err := rp.Replay(ctx, args[0])
	if err != nil {
		return err
	}
	for _, s := range res.Steps {
		fmt.Fprintf(e.out, "%6d  %-5s  %-5s  %-8s  (%g, %g)\n",
			s.Seq, s.Phase, s.Source, s.State, s.Translation.X, s.Translation.Y)
	}
	fmt.Fprintf(e.out, "final (%g, %g)", res.Final.X, res.Final.Y)
	if res.Skipped > 0 {
		fmt.Fprintf(e.out, ", %d rows skipped", res.Skipped)
	}
	fmt.Fprintln(e.out)
	return nil
}

func pruneRecordings(ctx context.Context, e *env, args []string) error {
	keep := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("prune: keep must be a number: %w", err)
		}
		keep = n
	}
	removed, err := (&service.MaintenanceService{DB: e.db}).Prune(ctx, keep)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "removed %d recordings\n", removed)
	return nil
}

func resetJournal(ctx context.Context, e *env, _ []string) error {
	if err := (&service.MaintenanceService{DB: e.db}).Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "journal reset")
	return nil
}

func seedRecording(ctx context.Context, e *env, args []string) error {
	drags := 5
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("seed: drags must be a positive number")
		}
		drags = n
	}
	id, err := sample.Seed(ctx, sample.Repos{
		Recordings: repository.NewRecordingRepo(e.db),
		Events:     repository.NewEventRepo(e.db),
	}, drags, time.Now().UnixNano())
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, id)
	return nil
}
