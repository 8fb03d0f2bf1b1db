package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/diegok/blobvolley/internal/audio"
	"github.com/diegok/blobvolley/internal/bot"
	"github.com/diegok/blobvolley/internal/config"
	"github.com/diegok/blobvolley/internal/game"
	"github.com/diegok/blobvolley/internal/protocol"
	"github.com/diegok/blobvolley/internal/session"
	"github.com/diegok/blobvolley/internal/ui"
)

// App is the main application controller that manages the game lifecycle.
type App struct {
	cfg      *config.Config
	log      zerolog.Logger
	screen   *ui.Screen
	renderer *ui.Renderer
	keyboard *ui.Keyboard
	session  *session.Session

	// State
	gameOver bool
	winner   protocol.Side

	quit    chan struct{}
	sigChan chan os.Signal
}

// NewApp creates a new App instance with the given configuration.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{
		cfg:      cfg,
		log:      logger,
		keyboard: ui.NewKeyboard(),
		quit:     make(chan struct{}),
	}
}

// Run is the main entry point for the application.
// It initializes the screen, sets up signal handling, and plays until the
// user quits.
func (a *App) Run() error {
	// The game works without sound
	if !a.cfg.Mute {
		if err := audio.Init(); err != nil {
			a.log.Warn().Err(err).Msg("audio disabled")
		}
	}

	screen, err := ui.InitScreen()
	if err != nil {
		return eris.Wrap(err, "failed to initialize screen")
	}
	a.attach(screen)

	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-a.sigChan
		close(a.quit)
	}()

	runErr := a.mainLoop()

	a.cleanup()

	return runErr
}

// attach sets up rendering on screen and starts a fresh session
func (a *App) attach(screen *ui.Screen) {
	a.screen = screen
	a.renderer = ui.NewRenderer(screen)
	a.session = a.newSession()
}

func (a *App) newSession() *session.Session {
	cfg := a.cfg
	s := session.New(
		session.WithSounds(audio.NewPlayer(cfg.Mute)),
		session.WithLogger(a.log),
		session.WithBots(func(side protocol.Side) session.Bot {
			return bot.NewSimpleBot(side, cfg.BotStrength)
		}),
		session.WithMatch(func() *game.Match {
			return game.New(cfg.PointsToWin)
		}),
	)
	s.SetPlayers(cfg.Left, cfg.Right)
	return s
}

// mainLoop is the main event loop that handles input and advances the match
// at the configured tick rate.
func (a *App) mainLoop() error {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(a.cfg.TickRate))
	defer ticker.Stop()

	a.log.Info().Int("tick_rate", a.cfg.TickRate).Int("points", a.cfg.PointsToWin).
		Stringer("left", a.cfg.Left).Stringer("right", a.cfg.Right).Msg("match started")

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			if a.handleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			a.tick()
			a.render()
		}
	}
}

// tick advances the match by one step unless it is over
func (a *App) tick() {
	if a.gameOver {
		return
	}

	a.keyboard.Tick()
	for _, side := range protocol.Sides {
		a.session.SetHumanInput(side, a.keyboard.Input(side))
	}

	tr := a.session.Step()
	if tr.Kind == session.WinTransition {
		a.gameOver = true
		a.winner = tr.Winner
		a.keyboard.Release()
	}
}

// handleEvent processes keyboard and other events.
// Returns true if the application should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventResize:
		a.screen.Clear()
		a.render()
	}

	return false
}

func (a *App) handleKey(key tcell.Key, r rune) bool {
	if ui.IsQuitKey(key, r) {
		return true
	}

	if a.gameOver {
		if ui.IsStartKey(key) {
			a.restart()
		}
		return false
	}
	a.keyboard.HandleKey(key, r)
	return false
}

func (a *App) restart() {
	a.session.Reset()
	a.keyboard.Release()
	a.gameOver = false
	a.log.Info().Msg("rematch")
}

// Smallest terminal the court is still readable on
const (
	minWidth  = 40
	minHeight = 12
)

// render draws the court or the end of match screen
func (a *App) render() {
	if w, h := a.screen.Size(); w < minWidth || h < minHeight {
		a.renderer.RenderError(fmt.Sprintf("terminal is %dx%d, need at least %dx%d", w, h, minWidth, minHeight),
			"Resize the terminal or press 'q' to quit")
		return
	}

	match := a.session.Match()
	left, right := match.Scores()

	if a.gameOver {
		a.renderer.RenderWin(a.winner, left, right)
		return
	}
	a.renderer.RenderGame(match.World(), left, right, a.status())
}

func (a *App) status() string {
	return fmt.Sprintf(" serve: %s | %s: %s (W A D) | %s: %s (arrows) | q: quit",
		ui.SideName(a.session.Match().ServingPlayer()),
		ui.SideName(protocol.SideLeft), a.cfg.Left,
		ui.SideName(protocol.SideRight), a.cfg.Right)
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	audio.Close()

	if a.screen != nil {
		a.screen.Fini()
	}

	signal.Stop(a.sigChan)
}
