package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	sess "github.com/abhisek/promptcraft/internal/chat"
	"github.com/abhisek/promptcraft/internal/conversation"
	"github.com/abhisek/promptcraft/internal/export"
	"github.com/abhisek/promptcraft/internal/script"
)

const defaultIdea = "A street car driving through a neon city at night"

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Run a scripted session without the TUI and print the transcript",
	Long: `Drive a full session through the same controller the chat screen uses.

Each --pick answers one step: an option letter selects that option, anything
else is sent as free text. Steps without a pick choose option A. Messages are
printed as they are delivered, with the configured pacing unless --instant.`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().String("idea", defaultIdea, "Video idea submitted after the intro")
	replayCmd.Flags().StringArray("pick", nil, "Answer for the next step (repeatable)")
	replayCmd.Flags().String("feedback", "", "Feedback sent after the prompt is generated")
	replayCmd.Flags().Bool("instant", false, "Skip all delivery delays")
	replayCmd.Flags().Bool("json", false, "Print the final state as JSON instead of the transcript")
}

func runReplay(cmd *cobra.Command, args []string) error {
	idea, _ := cmd.Flags().GetString("idea")
	picks, _ := cmd.Flags().GetStringArray("pick")
	feedback, _ := cmd.Flags().GetString("feedback")
	instant, _ := cmd.Flags().GetBool("instant")
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Delivery.Instant = cfg.Delivery.Instant || instant

	sc, err := loadScript(cmd, cfg)
	if err != nil {
		return err
	}
	delays, err := deliveryDelays(cfg.Delivery)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// Interrupt skips the remaining delays; batches still complete.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	opts := []sess.Option{sess.WithDelays(delays), sess.WithLogger(logger)}
	if !asJSON {
		opts = append(opts, sess.WithListener(printMessages(out, sc)))
	}

	state, err := replaySession(ctx, sc, replayInput{Idea: idea, Picks: picks, Feedback: feedback}, opts...)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(state)
	}
	return nil
}

type replayInput struct {
	Idea     string
	Picks    []string
	Feedback string
}

// replaySession walks a session from intro to completion and returns the
// final state.
func replaySession(ctx context.Context, sc *script.Script, in replayInput, opts ...sess.Option) (conversation.State, error) {
	ctrl := sess.New(sc, opts...)

	if err := ctrl.InitConversation(ctx); err != nil {
		return conversation.State{}, fmt.Errorf("init: %w", err)
	}
	if err := ctrl.SubmitIdea(ctx, in.Idea); err != nil {
		return conversation.State{}, fmt.Errorf("idea: %w", err)
	}

	for i := 0; ctrl.Snapshot().Phase == conversation.PhaseExploring; i++ {
		pick := "A"
		if i < len(in.Picks) {
			pick = in.Picks[i]
		}
		if err := answerStep(ctx, ctrl, pick); err != nil {
			return conversation.State{}, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	if in.Feedback != "" {
		if err := ctrl.SendText(ctx, in.Feedback); err != nil {
			return conversation.State{}, fmt.Errorf("feedback: %w", err)
		}
	}

	return ctrl.Snapshot(), nil
}

// answerStep selects the option whose letter matches pick, or sends pick
// as free text.
func answerStep(ctx context.Context, ctrl *sess.Controller, pick string) error {
	state := ctrl.Snapshot()
	step, err := ctrl.Script().Step(state.CurrentStepIndex)
	if err != nil {
		return err
	}
	for _, o := range step.Choices {
		if strings.EqualFold(strings.TrimSpace(pick), o.Letter) {
			return ctrl.SelectChoice(ctx, o)
		}
	}
	return ctrl.SendText(ctx, pick)
}

func printMessages(w io.Writer, sc *script.Script) sess.Listener {
	return func(ev sess.Event) {
		if ev.Kind != sess.EventMessage {
			return
		}
		fmt.Fprintln(w, export.Transcript(sc, []conversation.Message{ev.Message}))
		fmt.Fprintln(w)
	}
}
