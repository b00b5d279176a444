// gatepulse is the live status panel for a NuBitek embedded gateway.
//
// It polls the gateway's local status API for sensor readings and device
// link state, then surfaces that information through an interactive TUI
// dashboard, an inline banner, or a one-line status segment. Supporting
// modes run the advertising display loop and scan the gateway's dated logs.
//
// Usage:
//
//	gatepulse [flags]
//
// Flags:
//
//	-tui              Launch the live dashboard
//	-watch            Run the headless polling daemon
//	-banner           Display the cached gateway state as a boxed banner
//	-status           Output a one-line cached summary (prompt/tmux embedding)
//	-player           Run the advertising display loop
//	-logscan          Print the tails of today's gateway log by category
//	-health           Check watch daemon health status
//	-config string    Path to configuration file (default: ~/.config/gatepulse/config.yaml)
//	-verbose          Enable verbose logging
//	-version          Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/nubitek/gatepulse/banner"
	"gitlab.com/nubitek/gatepulse/config"
	"gitlab.com/nubitek/gatepulse/dash"
	"gitlab.com/nubitek/gatepulse/logscan"
	"gitlab.com/nubitek/gatepulse/player"
	"gitlab.com/nubitek/gatepulse/segment"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (default: ~/.config/gatepulse/config.yaml)")
		runTUI      = flag.Bool("tui", false, "Launch the live dashboard")
		runWatch    = flag.Bool("watch", false, "Run the headless polling daemon")
		runBanner   = flag.Bool("banner", false, "Display the cached gateway state as a boxed banner")
		runStatus   = flag.Bool("status", false, "Output a one-line cached summary")
		runPlayer   = flag.Bool("player", false, "Run the advertising display loop")
		runLogscan  = flag.Bool("logscan", false, "Print the tails of today's gateway log by category")
		runHealth   = flag.Bool("health", false, "Check watch daemon health status")
		healthJSON  = flag.Bool("json", false, "Output health check as JSON (with -health)")
		scanDate    = flag.String("date", "", "Log day to scan, YYYY-MM-DD (with -logscan; default today)")
		scanLines   = flag.Int("lines", 0, "Lines to keep per log category (with -logscan)")
		termWidth   = flag.Int("term-width", 0, "Terminal width override (0 = auto-detect)")
		termHeight  = flag.Int("term-height", 0, "Terminal height override (0 = auto-detect)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	// ---------------------------------------------------------------
	// Commands that don't require config
	// ---------------------------------------------------------------

	if *showVersion {
		fmt.Printf("gatepulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Load configuration (required for remaining modes)
	// ---------------------------------------------------------------

	path := *configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// The watch daemon logs to its configured file; every other mode logs
	// to stderr so one-shot output stays clean on stdout.
	logPath := ""
	if *runWatch {
		logPath = cfg.Panel.LogFile
	}
	logger, closeLogger, err := buildLogger(logPath, *verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLogger()

	// ---------------------------------------------------------------
	// Health check
	// ---------------------------------------------------------------

	if *runHealth {
		os.Exit(checkHealth(cfg.Panel.CacheDir, cfg.PollInterval(), *healthJSON))
	}

	// ---------------------------------------------------------------
	// Context with signal handling
	// ---------------------------------------------------------------

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// ---------------------------------------------------------------
	// Status segment mode
	// ---------------------------------------------------------------

	if *runStatus {
		out, err := segment.NewOutput(segment.OutputConfig{
			CacheDir: cfg.Panel.CacheDir,
			CacheTTL: 3 * cfg.PollInterval(),
			Logger:   logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "status segment error: %v\n", err)
			os.Exit(1)
		}
		if result := out.Render(); result != "" {
			fmt.Print(result)
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Banner mode
	// ---------------------------------------------------------------

	if *runBanner {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "gatepulse: banner panic: %v\n", r)
				os.Exit(1)
			}
		}()

		bcfg := banner.DefaultConfig()
		bcfg.CacheDir = cfg.Panel.CacheDir
		bcfg.CacheTTL = 3 * cfg.PollInterval()
		bcfg.TermWidth = *termWidth
		bcfg.TermHeight = *termHeight
		bcfg.Logger = logger

		result, err := banner.NewBanner(bcfg).Generate(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "banner render failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(result)
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Logscan mode
	// ---------------------------------------------------------------

	if *runLogscan {
		scanCfg, err := buildScanConfig(cfg, *scanDate, *scanLines, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		report, err := logscan.Scan(scanCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "logscan failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(report.Render())
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Player mode
	// ---------------------------------------------------------------

	if *runPlayer {
		p, err := player.New(buildPlayerConfig(cfg, logger))
		if err != nil {
			fmt.Fprintf(os.Stderr, "player init failed: %v\n", err)
			os.Exit(1)
		}
		if err := p.Run(ctx); err != nil && err != context.Canceled {
			fmt.Fprintf(os.Stderr, "player error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Watch daemon mode
	// ---------------------------------------------------------------

	if *runWatch {
		d, err := newDaemon(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "daemon init failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "starting gatepulse watch daemon v%s\n", version)
		if err := d.run(ctx); err != nil && err != context.Canceled {
			fmt.Fprintf(os.Stderr, "daemon error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// TUI mode
	// ---------------------------------------------------------------

	if *runTUI {
		defer func() {
			if r := recover(); r != nil {
				// Attempt to restore terminal from alt-screen before printing error.
				fmt.Print("\x1b[?1049l\x1b[?25h")
				fmt.Fprintf(os.Stderr, "gatepulse: TUI panic: %v\n", r)
				os.Exit(1)
			}
		}()

		// The panel marks its tab labels as mouse zones; the global zone
		// manager must exist before the first View call.
		zone.NewGlobal()

		opts, err := buildPanelOptions(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "panel init failed: %v\n", err)
			os.Exit(1)
		}

		p := tea.NewProgram(dash.NewModel(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// ---------------------------------------------------------------
	// Default: print usage
	// ---------------------------------------------------------------

	fmt.Printf("gatepulse v%s (%s) built %s\n", version, commit, date)
	fmt.Println()
	fmt.Println("Usage: gatepulse [flags]")
	fmt.Println()
	flag.PrintDefaults()
}
