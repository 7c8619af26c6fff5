// Package sound resolves and plays the completion sounds.
package sound

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/agenthooks/internal/sysexec"
)

// ErrMissingSound is returned when the resolved sound file does not exist.
var ErrMissingSound = errors.New("sound file not found")

// ErrNoPlayer is returned when none of the configured players is installed.
var ErrNoPlayer = errors.New("no audio player available")

// Config lists the players to try and the sound per hook event.
// Relative paths resolve against the install directory.
type Config struct {
	Players []string          `yaml:"players" json:"players"`
	Default string            `yaml:"default" json:"default"`
	Events  map[string]string `yaml:"events"  json:"events"`
	Timeout time.Duration     `yaml:"timeout" json:"timeout"`
}

// DefaultConfig returns the built-in sound settings.
func DefaultConfig() Config {
	return Config{
		Players: []string{"paplay", "aplay", "afplay"},
		Default: filepath.Join("sounds", "complete.wav"),
		Timeout: 10 * time.Second,
	}
}

// Resolve returns the absolute sound file for event and checks it exists.
func Resolve(cfg Config, home, event string) (string, error) {
	file := cfg.Default
	if f, ok := cfg.Events[event]; ok && f != "" {
		file = f
	}
	if file == "" {
		return "", fmt.Errorf("sound: %w: no sound configured for %q", ErrMissingSound, event)
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(home, file)
	}

	info, err := os.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("sound: %w: %s", ErrMissingSound, file)
		}
		return "", fmt.Errorf("sound: stat %s: %w", file, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("sound: %w: %s is a directory", ErrMissingSound, file)
	}
	return file, nil
}

// Player plays files through the first installed player.
type Player struct {
	players []string
	runner  sysexec.Runner
}

// NewPlayer creates a Player trying players in order.
func NewPlayer(players []string, runner sysexec.Runner) *Player {
	return &Player{players: players, runner: runner}
}

// Play plays file and returns the name of the player used.
func (p *Player) Play(ctx context.Context, file string) (string, error) {
	for _, name := range p.players {
		if !p.runner.Available(name) {
			continue
		}
		return name, p.runner.Run(ctx, name, file)
	}
	return "", fmt.Errorf("sound: %w (tried %v)", ErrNoPlayer, p.players)
}
