// cmd/race/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"truck-race/internal/app"
	"truck-race/internal/config"
	"truck-race/internal/event"
	"truck-race/internal/loop"
	"truck-race/internal/sim"
	"truck-race/internal/tui"
	"truck-race/internal/utils"

	"github.com/gdamore/tcell/v2"
	"github.com/ttacon/chalk"
	"github.com/urfave/cli"
)

const (
	rendererWindow   = "window"
	rendererTerminal = "tui"
)

func failWith(err error) {
	fmt.Fprint(os.Stderr, chalk.Red)
	fmt.Fprintf(os.Stderr, "=== ❌ %v", err)
	fmt.Fprintln(os.Stderr, chalk.Reset)
	os.Exit(1)
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "truck-race"
	app.Usage = "Trucks racing around a looping track"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config", Value: "", Usage: "JSON settings file laid over the defaults"},
		cli.Int64Flag{Name: "seed", Value: 0, Usage: "Random seed for truck speeds; 0 uses the clock"},
		cli.IntFlag{Name: "tps", Value: 0, Usage: "Simulation steps per second (default 60)"},
		cli.IntFlag{Name: "trucks", Value: 0, Usage: "Number of trucks (default 5)"},
		cli.StringFlag{Name: "renderer", Value: rendererWindow, Usage: "Backend: window or tui"},
		cli.BoolFlag{Name: "parallel", Usage: "Advance trucks in parallel goroutines"},
		cli.StringFlag{Name: "pprof", Value: "", Usage: "Address for the pprof HTTP server, e.g. localhost:6060"},
	}
	app.Action = run
	return app
}

func loadSettings(c *cli.Context) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadSettings(path)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}
	if c.IsSet("seed") {
		settings.Seed = c.Int64("seed")
	}
	if c.IsSet("tps") {
		settings.TPS = c.Int("tps")
	}
	if c.IsSet("trucks") {
		settings.Trucks = c.Int("trucks")
	}
	if c.Bool("parallel") {
		settings.Parallel = true
	}
	return settings, settings.Validate()
}

func run(c *cli.Context) error {
	if addr := c.String("pprof"); addr != "" {
		go func() {
			log.Println(http.ListenAndServe(addr, nil))
		}()
	}

	settings, err := loadSettings(c)
	if err != nil {
		return err
	}

	events := event.NewDispatcher()
	s, err := sim.NewFromSettings(settings, utils.NewPRNGService(settings.Seed), events)
	if err != nil {
		return err
	}

	switch c.String("renderer") {
	case rendererWindow:
		return app.RunWindow(s, events, settings.TPS)
	case rendererTerminal:
		return runTerminal(s, events, settings.TPS)
	default:
		return fmt.Errorf("unknown renderer %q", c.String("renderer"))
	}
}

func runTerminal(s *sim.Simulation, events *event.Dispatcher, tps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	renderer, err := tui.NewRenderer(screen, s.Path(), events)
	if err != nil {
		return err
	}
	defer renderer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.NewDriver(s, renderer, tps).Run(ctx)
}

func main() {
	if err := makeapp().Run(os.Args); err != nil {
		failWith(err)
	}
}
