package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codefitter/internal/agent"
	"codefitter/internal/agent/call"
	"codefitter/internal/console"
	"codefitter/internal/transcript"
)

type runOptions struct {
	inputs          []string
	output          string
	task            string
	exitAfterModify bool
	noColor         bool
}

// newRunCommand starts an interactive dialogue with the model.
func newRunCommand(std streams, global *globalOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [-i file]... [-o file] [--task text]",
		Short: "Start a dialogue in which the model may read and edit files",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDialogue(cmd.Context(), std, global, opts, cmd.Flags().Changed("exit-after-modify"))
		},
	}
	cmd.Flags().StringArrayVarP(&opts.inputs, "input", "i", nil, "File to load into the dialogue up front (repeatable)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "File the model should write its result to")
	cmd.Flags().StringVarP(&opts.task, "task", "t", "", "Task description (prompted for when empty)")
	cmd.Flags().BoolVar(&opts.exitAfterModify, "exit-after-modify", false, "End the session after the first applied ModifyFile")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")
	return cmd
}

func runDialogue(ctx context.Context, std streams, global *globalOptions, opts *runOptions, exitFlagSet bool) error {
	loaded, err := loadConfig(global.configPath)
	if err != nil {
		return err
	}
	cfg := loaded.cfg
	provider, err := agent.NewChatProvider(agent.ChatSettings{
		Model:          cfg.ModelName,
		APIKey:         loaded.apiKey,
		BaseURL:        cfg.BaseURL,
		Temperature:    *cfg.Temperature,
		EnableThinking: cfg.EnableThinking,
	}, &http.Client{})
	if err != nil {
		return err
	}

	prompter := console.NewTerminalPrompter(std.in, std.out)
	presenter := console.NewPresenter(std.out, console.ShouldStyle(std.out, opts.noColor))

	task := strings.TrimSpace(opts.task)
	if task == "" {
		task, err = prompter.ReadText("Describe the task")
		if err != nil {
			return errors.Wrap(err, "read task")
		}
		task = strings.TrimSpace(task)
	}
	if task == "" {
		return usageError{err: errors.New("a task description is required")}
	}
	if opts.output != "" {
		task += "\n\nWrite the result to " + opts.output + "."
	}

	files := agent.FileTools{}
	var onAppend agent.AppendFunc
	if path := transcriptPath(cfg, loaded.root); path != "" {
		recorder, err := transcript.Open(ctx, path, cfg.ModelName)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("transcript disabled")
		} else {
			defer recorder.Close()
			onAppend = recorder.Observe
			log.Debug().Str("file", path).Str("session_id", recorder.SessionID()).Msg("recording transcript")
		}
	}

	session, err := agent.NewSession(agent.SessionInput{
		SystemPrompt: cfg.SystemPrompt,
		Task:         task,
		InputFiles:   opts.inputs,
		Files:        files,
		OnAppend:     onAppend,
	})
	if err != nil {
		return err
	}

	exitAfterModify := cfg.ExitAfterModify
	if exitFlagSet {
		exitAfterModify = opts.exitAfterModify
	}
	dialogue := &call.Dialogue{
		Provider:  provider,
		Session:   session,
		Files:     files,
		Prompter:  prompter,
		Presenter: presenter,
		Options: call.RunOptions{
			ExitAfterModify: exitAfterModify,
			RequestTimeout:  time.Duration(*cfg.TimeoutSeconds) * time.Second,
		},
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	log.Debug().
		Str("model", cfg.ModelName).
		Int("inputs", len(opts.inputs)).
		Bool("exit_after_modify", exitAfterModify).
		Msg("starting dialogue")
	result, err := dialogue.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(std.out, "Session ended after %d model turn(s); %d file(s) changed, %d change(s) rejected.\n",
		result.Turns, len(result.Modified), result.Rejected)
	return nil
}
