package player

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"syscall"
	"time"
)

// stopGrace is how long a player process gets to exit after SIGTERM before
// it is killed.
const stopGrace = 5 * time.Second

// Config controls the playback loop.
type Config struct {
	// VideoPath is the looping advertising video.
	VideoPath string
	// PosterPath is an optional still image shown while the display is
	// off. Empty means the screen simply goes dark.
	PosterPath string
	// FlagPath is the gateway's display flag file.
	FlagPath string
	// PollInterval is how often the flag is re-read.
	PollInterval time.Duration
	// MaxRuntime stops the loop and playback after this much time from
	// start. Zero means no cap.
	MaxRuntime time.Duration
	// Command is the player argv prefix; the media path is appended.
	Command []string
	// PosterWidth and PosterHeight bound the prepared poster.
	PosterWidth  int
	PosterHeight int
	// Logger for playback events.
	Logger *slog.Logger
}

// Player reconciles one media process against the display flag. It is
// driven by a single goroutine via Run; none of its methods are safe for
// concurrent use.
type Player struct {
	cfg    Config
	logger *slog.Logger

	poster string

	cmd       *exec.Cmd
	done      chan struct{}
	media     string
	startedAt time.Time
}

// New validates the configuration and returns a Player.
func New(cfg Config) (*Player, error) {
	if cfg.VideoPath == "" {
		return nil, fmt.Errorf("player: video path is required")
	}
	if len(cfg.Command) == 0 {
		return nil, fmt.Errorf("player: player command is required")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Player{cfg: cfg, logger: logger}, nil
}

// Run drives the playback loop until the context is cancelled or the
// optional runtime cap elapses. The flag file is polled on a fixed
// schedule; each pass reconciles the process state toward what the flag
// asks for, which also restarts playback that died on its own.
func (p *Player) Run(ctx context.Context) error {
	if p.cfg.PosterPath != "" {
		prepared, err := PreparePoster(p.cfg.PosterPath, p.cfg.PosterWidth, p.cfg.PosterHeight)
		if err != nil {
			p.logger.Warn("poster preparation failed, poster disabled", "error", err)
		} else {
			p.poster = prepared
			p.logger.Info("poster prepared", "path", prepared)
		}
	}

	var off <-chan time.Time
	if p.cfg.MaxRuntime > 0 {
		timer := time.NewTimer(p.cfg.MaxRuntime)
		defer timer.Stop()
		off = timer.C
	}

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	p.logger.Info("playback loop started",
		"video", p.cfg.VideoPath,
		"flag", p.cfg.FlagPath,
		"poll_interval", p.cfg.PollInterval,
	)

	p.tick()

	for {
		select {
		case <-ctx.Done():
			p.stop()
			return ctx.Err()
		case <-off:
			p.logger.Info("max runtime reached, stopping playback")
			p.stop()
			return nil
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick reconciles the running process with the flag state.
func (p *Player) tick() {
	want := p.cfg.VideoPath
	if !ReadDisplayFlag(p.cfg.FlagPath, p.logger) {
		want = p.poster
	}

	if want == "" {
		p.stop()
		return
	}
	if p.media == want && p.running() {
		return
	}
	if p.media == want && p.cmd != nil {
		p.logger.Warn("playback exited unexpectedly, restarting", "media", want)
	}
	p.stop()
	p.start(want)
}

// start launches the player process for the given media.
func (p *Player) start(media string) {
	argv := append(append([]string{}, p.cfg.Command...), media)
	cmd := exec.Command(argv[0], argv[1:]...)

	if err := cmd.Start(); err != nil {
		p.logger.Error("could not start player", "command", argv[0], "error", err)
		return
	}

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()

	p.cmd = cmd
	p.done = done
	p.media = media
	p.startedAt = time.Now()
	p.logger.Info("playback started", "media", media, "pid", cmd.Process.Pid)
}

// running reports whether the player process is still alive.
func (p *Player) running() bool {
	if p.cmd == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// stop terminates any running player process, escalating from SIGTERM to
// SIGKILL after a grace period, and clears the playback state.
func (p *Player) stop() {
	if p.cmd == nil {
		return
	}
	if p.running() {
		_ = p.cmd.Process.Signal(syscall.SIGTERM)
		select {
		case <-p.done:
		case <-time.After(stopGrace):
			p.logger.Warn("player ignored SIGTERM, killing", "pid", p.cmd.Process.Pid)
			_ = p.cmd.Process.Kill()
			<-p.done
		}
		p.logger.Info("playback stopped", "media", p.media, "played", time.Since(p.startedAt))
	}
	p.cmd = nil
	p.done = nil
	p.media = ""
}
