package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pcormier/wax/internal/domain"
)

// FileSink publishes now-playing metadata to a text file so external
// consumers (status bars, stream overlays) can read it. It is the
// terminal-world analog of the OS media session.
type FileSink struct {
	path   string
	logger *slog.Logger
}

// NewFileSink creates a sink writing to path
func NewFileSink(path string, logger *slog.Logger) *FileSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSink{path: path, logger: logger}
}

// Publish writes the current track line. Write failures are logged and
// otherwise ignored; publication is best-effort.
func (f *FileSink) Publish(track domain.Track, playing bool) {
	state := "paused"
	if playing {
		state = "playing"
	}
	line := fmt.Sprintf("%s [%s]\n", track.DisplayName(), state)

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		f.logger.Debug("now-playing dir unavailable", "error", err)
		return
	}
	if err := os.WriteFile(f.path, []byte(line), 0644); err != nil {
		f.logger.Debug("now-playing write failed", "error", err)
	}
}
