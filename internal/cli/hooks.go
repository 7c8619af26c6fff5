package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/agenthooks/internal/eventlog"
	"github.com/ppiankov/agenthooks/internal/hook"
	"github.com/ppiankov/agenthooks/internal/notify"
	"github.com/ppiankov/agenthooks/internal/sound"
	"github.com/ppiankov/agenthooks/internal/sysexec"
)

func init() {
	rootCmd.AddCommand(logCommandCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(playSoundCmd)
}

var logCommandCmd = &cobra.Command{
	Use:   "log-command",
	Short: "Append the payload's command to the event log",
	Long: "Reads a hook payload from stdin and appends {timestamp, session_id,\n" +
		"tool_name, command, description} to the JSON event log.\n\n" +
		"Exits 1 on malformed input or when the log cannot be written.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return logCommand(cmd.InOrStdin(), state.cfg.EventLogPath(state.home), state.logger, time.Now())
	},
}

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Show a desktop notification for the payload",
	Long: "Reads a hook payload from stdin and shows the notification configured for\n" +
		"its tool name (default pair for unknown tools). Notifier failures are\n" +
		"logged and do not fail the hook.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := sysexec.NewExecRunner(state.cfg.Notify.Timeout)
		d := notify.NewDispatcher(state.cfg.Notify, runner)
		return notifyHook(cmd.Context(), cmd.InOrStdin(), d, state.logger)
	},
}

var playSoundCmd = &cobra.Command{
	Use:   "play-sound",
	Short: "Play the completion sound for the payload's hook event",
	Long: "Reads a hook payload from stdin and plays the sound configured for its\n" +
		"hook_event_name. Exits 1 when the sound file is missing; player failures\n" +
		"are logged and do not fail the hook.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner := sysexec.NewExecRunner(state.cfg.Sound.Timeout)
		player := sound.NewPlayer(state.cfg.Sound.Players, runner)
		return playSound(cmd.Context(), cmd.InOrStdin(), state.cfg.Sound, state.home, player, state.logger)
	},
}

func logCommand(in io.Reader, logPath string, logger *slog.Logger, at time.Time) error {
	p, err := hook.ReadPayload(in)
	if err != nil {
		return err
	}

	rec := p.Record(at)
	if err := eventlog.Append(logPath, rec); err != nil {
		return fmt.Errorf("append %s: %w", logPath, err)
	}
	logger.Debug("event recorded", "log", logPath, "tool", rec.ToolName, "command", rec.Command)
	return nil
}

func notifyHook(ctx context.Context, in io.Reader, d *notify.Dispatcher, logger *slog.Logger) error {
	p, err := hook.ReadPayload(in)
	if err != nil {
		return err
	}

	m, err := d.Dispatch(ctx, p)
	if err != nil {
		logger.Warn("notification failed", "backend", d.Backend(), "title", m.Title, "error", err)
		return nil
	}
	logger.Debug("notification sent", "backend", d.Backend(), "title", m.Title)
	return nil
}

func playSound(ctx context.Context, in io.Reader, cfg sound.Config, home string, player *sound.Player, logger *slog.Logger) error {
	p, err := hook.ReadPayload(in)
	if err != nil {
		return err
	}

	file, err := sound.Resolve(cfg, home, p.HookEventName)
	if err != nil {
		return err
	}

	name, err := player.Play(ctx, file)
	if err != nil {
		logger.Warn("sound playback failed", "player", name, "file", file, "error", err)
		return nil
	}
	logger.Debug("sound played", "player", name, "file", file)
	return nil
}
