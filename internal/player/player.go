// Package player drives an mpv subprocess over its JSON IPC socket. It is
// the app's audio element: it loads URLs and reports time, duration, and
// end-of-track events, and knows nothing about tracks or albums.
package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"
)

const (
	socketCheckRetries  = 20
	socketCheckInterval = 100 * time.Millisecond
	socketReadDeadline  = 500 * time.Millisecond

	observeIDTime     = 1
	observeIDDuration = 2
)

// EventKind identifies an asynchronous player event
type EventKind int

const (
	// EventTime carries the current playback position in seconds
	EventTime EventKind = iota
	// EventDuration carries the total duration in seconds, sent once the
	// stream's metadata is known
	EventDuration
	// EventEnded signals natural end of the current stream
	EventEnded
)

// Event is an asynchronous notification from the player process
type Event struct {
	Kind  EventKind
	Value float64 // Seconds for EventTime/EventDuration, unused for EventEnded
}

type mpvCommand struct {
	Command   []any `json:"command"`
	RequestID int   `json:"request_id,omitempty"`
}

type mpvMessage struct {
	Error     string `json:"error"`
	Data      any    `json:"data"`
	RequestID int    `json:"request_id"`
	Event     string `json:"event"`
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Reason    string `json:"reason"`
}

// Player owns one mpv process and its IPC socket
type Player struct {
	command    string
	extraArgs  []string
	socketPath string
	logger     *slog.Logger

	mu        sync.Mutex
	cmd       *exec.Cmd
	eventConn net.Conn
	events    chan Event
	closed    bool
}

// New creates a player. The mpv process starts lazily on first load.
func New(command string, extraArgs []string, socketPath string, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	if command == "" {
		command = "mpv"
	}
	if socketPath == "" {
		socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("wax-mpv-%d.sock", os.Getpid()))
	}
	os.Remove(socketPath)
	return &Player{
		command:    command,
		extraArgs:  extraArgs,
		socketPath: socketPath,
		logger:     logger,
		events:     make(chan Event, 64),
	}
}

// Events returns the asynchronous event stream
func (p *Player) Events() <-chan Event {
	return p.events
}

// Play loads a stream URL and starts playback
func (p *Player) Play(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureRunning(); err != nil {
		return err
	}
	_, err := p.sendCommands(
		mpvCommand{Command: []any{"loadfile", url, "replace"}},
		mpvCommand{Command: []any{"set_property", "pause", false}},
	)
	return err
}

// Load loads a stream URL paused
func (p *Player) Load(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureRunning(); err != nil {
		return err
	}
	_, err := p.sendCommands(
		mpvCommand{Command: []any{"loadfile", url, "replace"}},
		mpvCommand{Command: []any{"set_property", "pause", true}},
	)
	return err
}

// Pause pauses playback
func (p *Player) Pause() error {
	return p.setProperty("pause", true)
}

// Resume continues paused playback
func (p *Player) Resume() error {
	return p.setProperty("pause", false)
}

// SeekTo jumps to an absolute position in seconds
func (p *Player) SeekTo(seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running() {
		return nil
	}
	_, err := p.sendCommands(mpvCommand{Command: []any{"seek", seconds, "absolute"}})
	return err
}

// SetVolume sets the output volume, v in [0,1]
func (p *Player) SetVolume(v float64) error {
	return p.setProperty("volume", v*100)
}

func (p *Player) setProperty(name string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running() {
		return nil
	}
	_, err := p.sendCommands(mpvCommand{Command: []any{"set_property", name, value}})
	return err
}

// Close kills the mpv process and removes the socket
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.eventConn != nil {
		p.eventConn.Close()
		p.eventConn = nil
	}
	if p.running() {
		if err := p.cmd.Process.Kill(); err != nil {
			p.logger.Error("failed to terminate mpv", "error", err)
		}
		p.cmd = nil
	}
	os.Remove(p.socketPath)
	return nil
}

func (p *Player) running() bool {
	return p.cmd != nil && p.cmd.Process != nil
}

// ensureRunning starts mpv and the event listener if needed. Callers must
// hold p.mu.
func (p *Player) ensureRunning() error {
	if p.running() {
		if p.cmd.ProcessState != nil && p.cmd.ProcessState.Exited() {
			p.cmd = nil
		} else {
			return nil
		}
	}

	args := []string{
		"--idle",
		"--no-video",
		"--no-config",
		"--input-ipc-server=" + p.socketPath,
	}
	args = append(args, p.extraArgs...)

	p.logger.Info("starting mpv", "command", p.command)

	cmd := exec.Command(p.command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("could not start mpv: %w", err)
	}
	p.cmd = cmd

	for range socketCheckRetries {
		if _, err := os.Stat(p.socketPath); err == nil {
			return p.startEventListener()
		}
		time.Sleep(socketCheckInterval)
	}

	cmd.Process.Kill()
	p.cmd = nil
	return fmt.Errorf("mpv started but socket did not appear at %s", p.socketPath)
}

// startEventListener opens the persistent event connection, subscribes to
// property changes, and forwards mpv events onto the event channel.
func (p *Player) startEventListener() error {
	conn, err := net.Dial("unix", p.socketPath)
	if err != nil {
		return fmt.Errorf("could not connect to mpv socket: %w", err)
	}
	p.eventConn = conn

	encoder := json.NewEncoder(conn)
	subs := []mpvCommand{
		{Command: []any{"observe_property", observeIDTime, "time-pos"}},
		{Command: []any{"observe_property", observeIDDuration, "duration"}},
	}
	for _, sub := range subs {
		if err := encoder.Encode(sub); err != nil {
			conn.Close()
			p.eventConn = nil
			return fmt.Errorf("could not subscribe to mpv properties: %w", err)
		}
	}

	go p.readEvents(conn)
	return nil
}

// readEvents translates the mpv event stream into Events. Runs until the
// connection drops.
func (p *Player) readEvents(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var msg mpvMessage
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}

		switch msg.Event {
		case "property-change":
			value, ok := msg.Data.(float64)
			if !ok {
				continue
			}
			switch msg.ID {
			case observeIDTime:
				p.emit(Event{Kind: EventTime, Value: value})
			case observeIDDuration:
				p.emit(Event{Kind: EventDuration, Value: value})
			}
		case "end-file":
			// Only natural end counts; "replace" loads and stops also
			// produce end-file events.
			if msg.Reason == "eof" {
				p.emit(Event{Kind: EventEnded})
			}
		}
	}

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if !closed {
		p.logger.Warn("mpv event connection lost")
	}
}

// emit delivers an event without ever blocking the reader goroutine
func (p *Player) emit(ev Event) {
	select {
	case p.events <- ev:
	default:
		p.logger.Debug("player event dropped", "kind", ev.Kind)
	}
}

// sendCommands opens a short-lived control connection, sends the commands,
// and collects one reply per command. Callers must hold p.mu or otherwise
// guarantee the process is up.
func (p *Player) sendCommands(cmds ...mpvCommand) ([]mpvMessage, error) {
	conn, err := net.Dial("unix", p.socketPath)
	if err != nil {
		return nil, fmt.Errorf("could not connect to mpv socket: %w", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(socketReadDeadline))

	encoder := json.NewEncoder(conn)
	for _, cmd := range cmds {
		if err := encoder.Encode(cmd); err != nil {
			return nil, fmt.Errorf("error sending mpv command: %w", err)
		}
	}

	var responses []mpvMessage
	scanner := bufio.NewScanner(conn)
	for len(responses) < len(cmds) {
		if !scanner.Scan() {
			break
		}
		var resp mpvMessage
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			p.logger.Debug("unparseable mpv reply", "line", string(scanner.Bytes()))
			continue
		}
		if resp.Event == "" {
			responses = append(responses, resp)
		}
	}
	return responses, nil
}
