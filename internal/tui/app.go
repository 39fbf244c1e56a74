// Package tui is the terminal view layer: search, digging, album detail,
// the player bar, and the modals. It renders from service/session state
// and dispatches every action as a command.
package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pcormier/wax/internal/domain"
	"github.com/pcormier/wax/internal/router"
	"github.com/pcormier/wax/internal/service"
	"github.com/pcormier/wax/internal/session"
	"github.com/pcormier/wax/internal/tui/styles"
)

// pageSize is the number of rows per digging page
const pageSize = 20

// modalKind identifies the active modal overlay
type modalKind int

const (
	modalNone modalKind = iota
	modalLike
	modalRate
	modalOpenLink
	modalAuth
)

// Deps bundles everything the model needs
type Deps struct {
	Router       *router.Router
	Session      *session.Session
	Search       *service.SearchService
	TrackPlayer  *service.TrackPlayer
	AlbumLoader  *service.AlbumLoader
	Discovery    *service.DiscoveryService
	HideAlbums   *service.HideTracker[domain.DiscoveryAlbum]
	HideTracks   *service.HideTracker[domain.DiscoveryTrack]
	Likes        *service.LikeService
	Rates        *service.RateService
	Downloads    *service.DownloadService
	Auth         *service.AuthService
	ShareBase    string
	InitialRoute *router.Route
	Logger       *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	keys   KeyMap
	logger *slog.Logger

	// Services
	nav         *router.Router
	sess        *session.Session
	searchSvc   *service.SearchService
	trackPlayer *service.TrackPlayer
	albumLoader *service.AlbumLoader
	discovery   *service.DiscoveryService
	hideAlbums  *service.HideTracker[domain.DiscoveryAlbum]
	hideTracks  *service.HideTracker[domain.DiscoveryTrack]
	likes       *service.LikeService
	rates       *service.RateService
	downloads   *service.DownloadService
	auth        *service.AuthService
	shareBase   string

	// Layout
	width  int
	height int

	// Global chrome
	spinner     spinner.Model
	loading     int
	status      string
	statusIsErr bool
	statusSeq   int

	// Current route drives which view renders
	route router.Route

	// Home / search view. Tracks and albums render as one list with the
	// cursor spanning both sections.
	searchInput  textinput.Model
	searchFocus  bool
	results      []domain.SearchResult
	albumResults []domain.AlbumResult
	resultCursor int

	// Digging view
	discAlbums    []domain.DiscoveryAlbum
	discTracks    []domain.DiscoveryTrack
	discLoaded    map[router.Tab]bool
	filterInput   textinput.Model
	filterFocus   bool
	diggingCursor int

	// Album view. albumInfos remembers metadata per album id so that
	// Back/Forward and deep links never render a neighbor's info.
	albumID     int
	albumInfo   domain.AlbumInfo
	albumInfos  map[int]domain.AlbumInfo
	albumTracks []domain.AlbumTrack
	albumCursor int

	// Modals
	modal         modalKind
	likeTrack     domain.Track
	likePlaylists []string
	likeFilter    string
	likeCursor    int
	rateValue     int
	linkInput     textinput.Model
	authInput     textinput.Model
}

// NewModel builds the application model
func NewModel(deps Deps) *Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{Frames: styles.SpinnerFrames, FPS: spinner.Dot.FPS}
	sp.Style = styles.AccentStyle

	search := textinput.New()
	search.Placeholder = "Search tracks and albums"
	search.CharLimit = 120
	search.Focus()

	filter := textinput.New()
	filter.Placeholder = "Filter"
	filter.CharLimit = 60

	link := textinput.New()
	link.Placeholder = "Paste a /play/ or /album/ link"
	link.CharLimit = 200

	auth := textinput.New()
	auth.Placeholder = "Access code"
	auth.EchoMode = textinput.EchoPassword
	auth.CharLimit = 60

	m := &Model{
		keys:          DefaultKeyMap(),
		logger:        logger,
		nav:           deps.Router,
		sess:          deps.Session,
		searchSvc:     deps.Search,
		trackPlayer:   deps.TrackPlayer,
		albumLoader:   deps.AlbumLoader,
		discovery:     deps.Discovery,
		hideAlbums:    deps.HideAlbums,
		hideTracks:    deps.HideTracks,
		likes:         deps.Likes,
		rates:         deps.Rates,
		downloads:     deps.Downloads,
		auth:          deps.Auth,
		shareBase:     deps.ShareBase,
		spinner:       sp,
		searchInput:   search,
		searchFocus:   true,
		filterInput:   filter,
		linkInput:     link,
		authInput:     auth,
		discLoaded:    make(map[router.Tab]bool),
		albumInfos:    make(map[int]domain.AlbumInfo),
		likePlaylists: deps.Likes.Playlists(),
		route:         router.Home(),
		rateValue:     3,
	}
	if deps.InitialRoute != nil {
		m.route = *deps.InitialRoute
	}
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	initial := m.route
	return tea.Batch(
		m.spinner.Tick,
		m.waitForSession(),
		func() tea.Msg { return RouteMsg{Route: initial} },
	)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SessionChangedMsg:
		// Re-arm the listener; the view re-renders from the snapshot
		return m, m.waitForSession()

	case RouteMsg:
		return m, m.applyRoute(m.nav.Push(msg.Route))

	case SearchResultsMsg:
		m.loading--
		m.results = msg.Results
		m.resultCursor = 0
		return m, nil

	case AlbumResultsMsg:
		m.loading--
		m.albumResults = msg.Results
		return m, nil

	case TrackStartedMsg:
		m.loading--
		// The session's track hook may have pushed a share route
		m.route = m.nav.Current()
		return m, nil

	case SharedTrackResolvedMsg:
		m.loading--
		// Shared links land on home with the track loaded paused
		m.route = m.nav.Replace(router.Home())
		return m, m.notify("Loaded "+msg.Track.DisplayName(), false)

	case AlbumLoadedMsg:
		m.loading--
		m.albumID = msg.AlbumID
		m.albumInfo = msg.Info
		m.albumInfos[msg.AlbumID] = msg.Info
		m.albumTracks = msg.Tracks
		m.albumCursor = 0
		return m, nil

	case DiscoveryAlbumsMsg:
		m.loading--
		m.discAlbums = msg.Albums
		m.discLoaded[router.TabAlbums] = true
		return m, nil

	case DiscoveryTracksMsg:
		m.loading--
		m.discTracks = msg.Tracks
		m.discLoaded[router.TabTracks] = true
		return m, nil

	case HiddenMsg:
		if msg.Err != nil {
			return m, m.notify("Failed to hide item", true)
		}
		return m, nil

	case LikeResultMsg:
		m.loading--
		if msg.Err != nil {
			return m, m.notify("Failed to add track to playlist", true)
		}
		if msg.Result.OK() {
			return m, m.notify("Added \""+msg.Track.Title+"\" to playlist", false)
		}
		return m, m.notify(msg.Result.Message, true)

	case RateResultMsg:
		m.loading--
		if msg.Err != nil {
			return m, m.notify("Failed to save rating", true)
		}
		return m, m.notify(msg.Result.Message, !msg.Result.OK())

	case DownloadDoneMsg:
		m.loading--
		if msg.Err != nil {
			return m, m.notify("Download failed", true)
		}
		return m, m.notify("Saved "+msg.Path, false)

	case SharedLinkCopiedMsg:
		if msg.Err != nil {
			return m, m.notify("Could not copy link", true)
		}
		return m, m.notify("Copied "+msg.URL, false)

	case ErrMsg:
		m.loading--
		m.logger.Error("view error", "error", msg.Err, "context", msg.Context)
		return m, m.notify(msg.Context, true)

	case StatusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// notify sets the transient status line and schedules its clearing
func (m *Model) notify(message string, isErr bool) tea.Cmd {
	m.status = message
	m.statusIsErr = isErr
	m.statusSeq++
	return m.clearStatusCmd(m.statusSeq)
}

// applyRoute switches view state to a route and returns the load command
// it needs. Shared-track routes resolve and immediately land on home.
func (m *Model) applyRoute(route router.Route) tea.Cmd {
	m.route = route

	switch route.Kind {
	case router.KindSharedTrack:
		m.loading++
		return m.resolveSharedCmd(route.Ref)

	case router.KindDigging:
		m.diggingCursor = 0
		if !m.discLoaded[route.Tab] {
			m.loading++
			if route.Tab == router.TabAlbums {
				return m.discoveryAlbumsCmd()
			}
			return m.discoveryTracksCmd()
		}

	case router.KindAlbum:
		if route.AlbumID != m.albumID {
			m.albumTracks = nil
			m.albumInfo = m.albumInfos[route.AlbumID]
			m.loading++
			return m.loadAlbumCmd(route.AlbumID, m.albumInfo)
		}
	}
	return nil
}

// handleKey routes key presses by modal, then focused input, then view
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone {
		return m.handleModalKey(msg)
	}

	// Global bindings that also work while an input is focused
	switch {
	case key.Matches(msg, m.keys.Quit) && !m.inputFocused():
		return m, tea.Quit
	}

	if m.inputFocused() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.route = m.nav.Push(router.Home())
		m.searchFocus = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Digging):
		if !m.auth.Authenticated() {
			m.modal = modalAuth
			m.authInput.SetValue("")
			m.authInput.Focus()
			return m, textinput.Blink
		}
		route := m.nav.Push(router.Digging(router.TabTracks, 1))
		return m, m.applyRoute(route)

	case key.Matches(msg, m.keys.Back):
		if route, ok := m.nav.Back(); ok {
			return m, m.applyRoute(route)
		}
		return m, nil

	case key.Matches(msg, m.keys.Forward):
		if route, ok := m.nav.Forward(); ok {
			return m, m.applyRoute(route)
		}
		return m, nil

	case key.Matches(msg, m.keys.OpenLink):
		m.modal = modalOpenLink
		m.linkInput.SetValue("")
		m.linkInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.PlayPause):
		st := m.sess.Snapshot()
		if st.Track == nil {
			return m, nil
		}
		if st.Playing {
			m.sess.Pause()
		} else {
			m.sess.Resume()
		}
		return m, nil

	case key.Matches(msg, m.keys.SeekBack):
		m.sess.SeekBy(-10)
		return m, nil

	case key.Matches(msg, m.keys.SeekFwd):
		m.sess.SeekBy(10)
		return m, nil

	case key.Matches(msg, m.keys.VolumeUp):
		m.sess.SetVolume(m.sess.Snapshot().Volume + 0.05)
		return m, nil

	case key.Matches(msg, m.keys.VolumeDown):
		m.sess.SetVolume(m.sess.Snapshot().Volume - 0.05)
		return m, nil

	case key.Matches(msg, m.keys.Like):
		st := m.sess.Snapshot()
		if st.Track == nil {
			return m, nil
		}
		m.modal = modalLike
		m.likeTrack = *st.Track
		m.likeFilter = ""
		m.likeCursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Download):
		st := m.sess.Snapshot()
		if st.Track == nil {
			return m, nil
		}
		m.loading++
		return m, m.downloadTrackCmd(*st.Track)

	case key.Matches(msg, m.keys.Share):
		return m.handleShare()
	}

	return m.handleViewKey(msg)
}

// handleShare copies the canonical link for the current context
func (m *Model) handleShare() (tea.Model, tea.Cmd) {
	if m.route.Kind == router.KindAlbum {
		return m, m.copyShareLinkCmd(router.Album(m.albumID))
	}
	st := m.sess.Snapshot()
	if st.Track == nil {
		return m, m.notify("Nothing to share", true)
	}
	return m, m.copyShareLinkCmd(router.TrackRoute(*st.Track))
}

// inputFocused reports whether a text input currently owns key presses
func (m *Model) inputFocused() bool {
	return (m.route.Kind == router.KindHome && m.searchFocus) || m.filterFocus
}

// handleInputKey feeds keys to the focused text input
func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.filterFocus {
			m.filterFocus = false
			m.filterInput.Blur()
			m.diggingCursor = 0
			// Filtering restarts pagination from the first page
			if m.route.Page > 1 {
				m.route = m.nav.Push(router.Digging(m.route.Tab, 1))
			}
			return m, nil
		}
		query := m.searchInput.Value()
		m.searchFocus = false
		m.searchInput.Blur()
		m.resultCursor = 0
		m.loading += 2
		return m, tea.Batch(m.searchTracksCmd(query), m.searchAlbumsCmd(query))
	case "esc":
		if m.filterFocus {
			m.filterFocus = false
			m.filterInput.SetValue("")
			m.filterInput.Blur()
			return m, nil
		}
		m.searchFocus = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	if m.filterFocus {
		m.filterInput, cmd = m.filterInput.Update(msg)
	} else {
		m.searchInput, cmd = m.searchInput.Update(msg)
	}
	return m, cmd
}
