package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/invader/app"
	"github.com/lixenwraith/invader/audio"
	"github.com/lixenwraith/invader/config"
	"github.com/lixenwraith/invader/core"
	"github.com/lixenwraith/invader/network"
	"github.com/lixenwraith/invader/render"
	"github.com/lixenwraith/invader/service"
	"github.com/lixenwraith/invader/terminal"
)

const defaultLogFile = "invader.log"

var (
	configFlag   = flag.String("config", "", "Path to TOML config file")
	headlessFlag = flag.Bool("headless", false, "Run without terminal or audio")
	framesFlag   = flag.Int64("frames", 0, "Stop after N frames (0 runs until quit)")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "invader: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// The screen owns stdout in a terminal session
	if !*headlessFlag && cfg.Logging.File == "" {
		cfg.Logging.File = defaultLogFile
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services := service.NewManager(log)
	defer func() {
		if err := services.StopAll(); err != nil {
			log.Warn("shutdown incomplete", zap.Error(err))
		}
	}()

	var deps app.Deps
	deps.Logger = log
	width, height := cfg.Window.Width, cfg.Window.Height

	if *headlessFlag {
		deps.Backend = render.NewRecorder()
	} else {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		err = services.Start(service.Func{
			ID:      "screen",
			OnStart: screen.Init,
			OnStop: func() error {
				screen.Fini()
				return nil
			},
		})
		if err != nil {
			return err
		}
		screen.EnableMouse()
		core.SetCrashCleanup(screen.Fini)

		src := terminal.NewInputSource(screen)
		err = services.Start(service.Func{
			ID: "input",
			OnStart: func() error {
				src.Start()
				return nil
			},
			OnStop: func() error {
				src.Stop()
				return nil
			},
		})
		if err != nil {
			return err
		}

		width, height = screen.Size()
		deps.Backend = terminal.NewRenderer(screen, palette(cfg))
		deps.Input = src

		if cfg.Audio.Enabled {
			mixer := audio.NewMixer(&audio.Config{SampleRate: cfg.Audio.SampleRate, Volume: cfg.Audio.Volume})
			if err := services.Start(speakerService(mixer)); err != nil {
				log.Warn("audio unavailable, continuing without sound", zap.Error(err))
			} else {
				deps.Mixer = mixer
			}
		}
	}

	transport, err := openTransport(ctx, cfg.Network, log)
	if err != nil {
		return err
	}
	deps.Transport = transport

	b := app.NewBuilder().
		Screen(width, height).
		Target(cfg.Timing.Period()).
		Frames(*framesFlag).
		SendEvery(cfg.Network.SendEvery)
	for key, s := range cfg.Sprites {
		b.Sprite(key, spriteStyle(s))
	}
	if cfg.Stage.LoadOnStart && cfg.Stage.Path != "" {
		b.Stage(cfg.Stage.Path)
	}
	if cfg.UI.Document != "" {
		b.Document(cfg.UI.Document)
	}

	a, err := b.Build(deps)
	if err != nil {
		if transport != nil {
			transport.Close()
		}
		return err
	}
	return a.Run(ctx)
}

// palette carries the configured fonts; sprites go through the builder
func palette(cfg *config.Config) *terminal.Palette {
	p := terminal.NewPalette()
	for key, f := range cfg.Fonts {
		p.SetFont(key, f.FG, f.BG, f.Bold)
	}
	return p
}

func spriteStyle(s config.SpriteConfig) render.SpriteStyle {
	var glyph rune
	for _, r := range s.Glyph {
		glyph = r
		break
	}
	return render.SpriteStyle{Glyph: glyph, FG: s.FG, BG: s.BG}
}

// speakerService plays the mixer through the default audio device
func speakerService(mixer *audio.Mixer) service.Service {
	return service.Func{
		ID: "speaker",
		OnStart: func() error {
			rate := mixer.SampleRate()
			if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
				return err
			}
			speaker.Play(mixer)
			return nil
		},
		OnStop: func() error {
			speaker.Close()
			return nil
		},
	}
}

// openTransport returns nil when replication is disabled
func openTransport(ctx context.Context, cfg config.NetworkConfig, log *zap.Logger) (network.Transport, error) {
	nc := network.DefaultConfig()
	nc.MaxPeers = cfg.MaxPeers

	switch {
	case cfg.Listen != "":
		nc.Role = network.RoleServer
		nc.Address = cfg.Listen
		hub := network.NewHub(nc, log)
		if _, err := hub.Listen(cfg.Listen); err != nil {
			return nil, fmt.Errorf("listen %s: %w", cfg.Listen, err)
		}
		return hub, nil
	case cfg.Peer != "":
		nc.Role = network.RoleClient
		nc.Address = cfg.Peer
		client, err := network.Dial(ctx, cfg.Peer, nc, log)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return nil, nil
}
