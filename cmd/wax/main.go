package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pcormier/wax/internal/api"
	"github.com/pcormier/wax/internal/config"
	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/log"
	"github.com/pcormier/wax/internal/player"
	"github.com/pcormier/wax/internal/router"
	"github.com/pcormier/wax/internal/service"
	"github.com/pcormier/wax/internal/session"
	"github.com/pcormier/wax/internal/store"
	"github.com/pcormier/wax/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("wax %s\n", Version)
		return
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(deepLink string) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting wax", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	// Local cache; degrades to memory-only when the directory is unusable
	st := store.Open(config.CachePath(), logger)
	defer st.Close()

	// Backend webhook client
	client := api.NewClient(cfg.Server.URL, logger)

	// Audio player subprocess
	audio := player.New(cfg.Player.Command, cfg.Player.Args, cfg.Player.SocketPath, logger)
	defer audio.Close()

	// Playback session, with an optional now-playing file publisher
	var sink session.Sink
	if cfg.NowPlaying.File != "" {
		sink = session.NewFileSink(cfg.NowPlaying.File, logger)
	}
	sess := session.New(audio, audio.Events(), client, sink, logger)

	// Services
	authSvc := service.NewAuthService(cfg.Server.AccessCode, st, logger)
	searchSvc := service.NewSearchService(client, logger)
	trackPlayer := service.NewTrackPlayer(client, sess, logger)
	albumLoader := service.NewAlbumLoader(client, sess, logger)
	discoverySvc := service.NewDiscoveryService(client, st, logger)
	hideAlbums := service.NewHideTracker(client.HideAlbum, domain.DiscoveryAlbum.Key, st, "albums", true, logger)
	hideTracks := service.NewHideTracker(client.HideTrack, domain.DiscoveryTrack.Key, st, "tracks", false, logger)
	likeSvc := service.NewLikeService(client, st, logger)
	rateSvc := service.NewRateService(client, logger)
	downloadSvc := service.NewDownloadService(client, cfg.Downloads.Dir, logger)

	// Route history with the digging auth guard
	nav := router.New(authSvc.Authenticated, logger)

	// Keep the route mirroring search-origin playback
	sess.SetTrackHook(func(t domain.Track) {
		if t.Origin == domain.OriginSearch {
			nav.Push(router.TrackRoute(t))
		}
	})

	deps := tui.Deps{
		Router:      nav,
		Session:     sess,
		Search:      searchSvc,
		TrackPlayer: trackPlayer,
		AlbumLoader: albumLoader,
		Discovery:   discoverySvc,
		HideAlbums:  hideAlbums,
		HideTracks:  hideTracks,
		Likes:       likeSvc,
		Rates:       rateSvc,
		Downloads:   downloadSvc,
		Auth:        authSvc,
		ShareBase:   cfg.Share.BaseURL,
		Logger:      logger,
	}

	// A positional argument opens the app on that link
	if deepLink != "" {
		route := router.Parse(deepLink)
		deps.InitialRoute = &route
		logger.Info("opening deep link", "path", deepLink)
	}

	model := tui.NewModel(deps)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to wax!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	var serverURL string
	for {
		fmt.Print("Enter your backend URL (e.g., https://hooks.example.com/music): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL = strings.TrimSpace(input)
		if serverURL == "" {
			fmt.Println("Backend URL cannot be empty. Please try again.")
			continue
		}
		if !strings.HasPrefix(serverURL, "http://") && !strings.HasPrefix(serverURL, "https://") {
			fmt.Println("The URL must start with http:// or https://. Please try again.")
			continue
		}
		break
	}

	// The access code gates the digging section only; leaving it empty
	// keeps that section locked.
	fmt.Print("Enter the access code for digging (optional, hidden): ")
	code, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read access code: %w", err)
	}

	cfg.Server.URL = serverURL
	cfg.Server.AccessCode = strings.TrimSpace(string(code))

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run wax again to start the application.")

	return nil
}
