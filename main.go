// streamsource writes Elite Dangerous status values (system, station, body,
// coordinates, ship) to text files for streaming software such as OBS.
//
// Usage:
//
//	streamsource [flags]
//
// Flags:
//
//	-config string   Settings file (.toml, .yaml or .db)
//	-journal string  Journal directory (overrides the journal_dir setting)
//	-replay string   Replay a single journal file and exit
//	-poll duration   Journal poll interval (default 1s)
//	-skip-existing   Ignore events already in the current journal
//	-log string      Log file (default: stderr on a terminal, streamsource.log otherwise)
//	-verbose         Enable debug logging
//	-version         Print version and exit
//
// Send SIGHUP to re-read the settings file. The output directory, language
// and log level take effect without a restart.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"streamsource/internal/api"
	"streamsource/internal/config"
	"streamsource/internal/journal"
	"streamsource/internal/locale"
	"streamsource/internal/log"
	"streamsource/internal/output"
	"streamsource/internal/ships"
	"streamsource/internal/status"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run is the whole program; it returns the exit code so deferred cleanup
// always happens before the process exits.
func run(args []string, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("GLOBAL PANIC recovered", "error", r, "stack", string(debug.Stack()))
			fmt.Fprintf(stderr, "streamsource crashed: %v\n", r)
			code = 1
		}
	}()

	flags := flag.NewFlagSet("streamsource", flag.ContinueOnError)
	flags.SetOutput(stderr)
	var (
		configPath   = flags.String("config", "", "Settings file (.toml, .yaml or .db)")
		journalDir   = flags.String("journal", "", "Journal directory (overrides the journal_dir setting)")
		replayPath   = flags.String("replay", "", "Replay a single journal file and exit")
		pollInterval = flags.Duration("poll", time.Second, "Journal poll interval")
		skipExisting = flags.Bool("skip-existing", false, "Ignore events already in the current journal")
		logFile      = flags.String("log", "", "Log file")
		verbose      = flags.Bool("verbose", false, "Enable debug logging")
		showVersion  = flags.Bool("version", false, "Print version and exit")
	)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Printf("streamsource %s (%s, %s)\n", version, commit, date)
		return 0
	}

	if *logFile == "" && !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		*logFile = "streamsource.log"
	}
	if *logFile != "" {
		if err := log.SetFileOutput(*logFile); err != nil {
			fmt.Fprintf(stderr, "Warning: could not log to %s: %v\n", *logFile, err)
		}
	}
	defer log.Close()

	store, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading settings: %v\n", err)
		return 1
	}
	defer store.Close()

	formatter := locale.NewFormatter("")
	applySettings(store, formatter, *verbose)

	outdir, _ := store.GetString(config.KeyOutputDir)
	projector := status.NewProjector(
		status.NewSnapshot(outdir),
		store,
		ships.NewTable(),
		formatter,
		output.NewFileWriter(),
	)
	name := projector.Start()
	log.Info("Plugin started", "plugin", name, "version", version, "outdir", outdir, "language", formatter.Language().String())

	session := journal.NewSession(projector)

	if *replayPath != "" {
		count, err := journal.ReadRecordsFile(*replayPath, session.HandleRecord)
		if err != nil {
			log.Error("Replay failed", "file", *replayPath, "error", err)
			fmt.Fprintf(stderr, "Error replaying %s: %v\n", *replayPath, err)
			return 1
		}
		log.Info("Replayed journal", "file", *replayPath, "events", humanize.Comma(int64(count)))
		return 0
	}

	dir := *journalDir
	if dir == "" {
		dir, _ = store.GetString(config.KeyJournalDir)
	}
	if dir == "" {
		fmt.Fprintln(stderr, "No journal directory configured; use -journal or the journal_dir setting")
		return 1
	}

	watcher := journal.NewWatcher(dir)
	if *skipExisting {
		if err := watcher.SkipExisting(); err != nil {
			log.Warn("Could not skip existing journal", "dir", dir, "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	defer signal.Stop(reload)

	log.Info("Following journal directory", "dir", dir, "poll", pollInterval.String())
	follow(ctx, watcher, session, *pollInterval, reload, func() {
		reloadSettings(store, formatter, *verbose, projector)
	})
	log.Info("Stopped", "journal_events", humanize.Comma(int64(session.Records())), "status_updates", humanize.Comma(int64(session.Statuses())))
	return 0
}

// applySettings applies the log level and number language from store. The
// -verbose flag keeps debug logging whatever the settings say.
func applySettings(store config.Store, formatter *locale.Formatter, verbose bool) {
	if level, ok := store.GetString(config.KeyLogLevel); ok {
		log.SetLevel(level)
	}
	if verbose {
		log.SetLevel("debug")
	}
	lang, _ := store.GetString(config.KeyLanguage)
	formatter.SetLanguage(lang)
}

// reloadSettings re-reads store and applies every setting that can change at
// runtime. Numbers already written keep their old format until their value
// next changes.
func reloadSettings(store config.Store, formatter *locale.Formatter, verbose bool, plugin api.PluginAPI) {
	if err := store.Reload(); err != nil {
		log.Error("Failed to reload settings, keeping previous values", "error", err)
		return
	}
	applySettings(store, formatter, verbose)
	plugin.OnPrefsChanged()
}

// follow polls the journal directory and handles settings reloads on a single
// goroutine, so the projector never sees concurrent calls.
func follow(ctx context.Context, w *journal.Watcher, h journal.Handler, interval time.Duration, reload <-chan os.Signal, onReload func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := w.Poll(h); err != nil {
			log.Warn("Journal poll failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-reload:
			log.Info("Reloading settings")
			onReload()
		case <-ticker.C:
		}
	}
}
