package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"ticktock/internal/core/clockface"
	"ticktock/internal/core/registry"
	"ticktock/internal/core/timer"
)

func newCountdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countdown <duration> [name]",
		Short: "Count down a single timer in the terminal",
		Example: "  ticktock countdown 3m Tea\n" +
			"  ticktock countdown 90s",
		Args: cobra.RangeArgs(1, 2),
		RunE: runCountdownCmd,
	}
}

func runCountdownCmd(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	duration, err := time.ParseDuration(args[0])
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", args[0], err)
	}
	name := settings.NewTimerName
	if len(args) > 1 {
		name = args[1]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	timers := registry.New(settings.TimersConfig())
	defer timers.Close()

	id, err := timers.Add(duration, name, true)
	if err != nil {
		return err
	}
	events := timers.Subscribe(eventBuffer)
	timers.Start()

	out := cmd.OutOrStdout()
	return followCountdown(ctx, id, events, func(state timer.State) {
		_, _ = fmt.Fprintf(out, "\r%s %s ", state.Name, clockface.Format(state.Remaining, false))
	}, func(state timer.State) {
		bell := ""
		if settings.Alarm {
			bell = "\a"
		}
		_, _ = fmt.Fprintf(out, "\r%s done%s\n", state.Name, bell)
	})
}

// followCountdown reports id once per displayed second until it finishes or
// ctx is cancelled.
func followCountdown(ctx context.Context, id string, events <-chan registry.Event, onSecond, onDone func(timer.State)) error {
	shown := ""
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			state, found := findTimer(event.Timers, id)
			if !found {
				return fmt.Errorf("countdown %s: %w", id, timer.ErrNotFound)
			}
			if state.Status() == timer.StatusFinished {
				onDone(state)
				return nil
			}
			face := clockface.Format(state.Remaining, false)
			if face != shown {
				shown = face
				onSecond(state)
			}
		}
	}
}

func findTimer(timers []timer.State, id string) (timer.State, bool) {
	for _, state := range timers {
		if state.ID == id {
			return state, true
		}
	}
	return timer.State{}, false
}
