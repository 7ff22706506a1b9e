package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Skufu/GoPredict/internal/app"
	"github.com/Skufu/GoPredict/internal/config"
	"github.com/Skufu/GoPredict/internal/logging"
	"github.com/Skufu/GoPredict/internal/predict"
	"github.com/Skufu/GoPredict/internal/render"
	"github.com/Skufu/GoPredict/internal/symptoms"
)

const exitNoSymptoms = 2

// backend opens what the commands need; tests swap it for in-memory fakes.
type backend struct {
	service    func(ctx context.Context) (*predict.Service, func() error, error)
	vocabulary func() (*symptoms.Vocabulary, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(defaultBackend()).ExecuteContext(ctx)
	switch {
	case err == nil:
	case errors.Is(err, predict.ErrNoSymptoms):
		fmt.Fprintln(os.Stderr, predict.NoSymptomsMessage)
		stop()
		os.Exit(exitNoSymptoms)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func defaultBackend() backend {
	return backend{
		service: func(ctx context.Context) (*predict.Service, func() error, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, nil, fmt.Errorf("config: %w", err)
			}
			// stdout carries the prediction; logs go to stderr.
			logger := logging.NewWithWriter(os.Stderr, cfg.Log.Level, cfg.Log.Format)
			a, err := app.New(ctx, cfg, logger)
			if err != nil {
				return nil, nil, err
			}
			return a.Service, a.Close, nil
		},
		vocabulary: func() (*symptoms.Vocabulary, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, fmt.Errorf("config: %w", err)
			}
			if cfg.VocabularyPath == "" {
				return symptoms.Default(), nil
			}
			return symptoms.LoadFile(cfg.VocabularyPath)
		},
	}
}

func newRootCmd(b backend) *cobra.Command {
	root := &cobra.Command{
		Use:           "predict",
		Short:         "Predict a disease from symptoms and list recommendations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(b), newSymptomsCmd(b))
	return root
}

func newRunCmd(b backend) *cobra.Command {
	var selected []string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Classify the given symptoms",
		Example: "  predict run --symptom high_fever --symptom headache --symptom nausea\n" +
			"  predict run -s itching,skin_rash",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(selected) == 0 {
				return predict.ErrNoSymptoms
			}

			svc, closeFn, err := b.service(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := svc.Predict(cmd.Context(), selected)
			if err != nil {
				return err
			}
			for _, name := range result.Ignored {
				fmt.Fprintf(cmd.ErrOrStderr(), "ignored unknown symptom %q\n", name)
			}
			return render.Text(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringSliceVarP(&selected, "symptom", "s", nil, "symptom name, repeatable or comma separated")
	return cmd
}

func newSymptomsCmd(b backend) *cobra.Command {
	return &cobra.Command{
		Use:   "symptoms",
		Short: "List the known symptom names in model order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vocab, err := b.vocabulary()
			if err != nil {
				return err
			}
			for _, name := range vocab.Names() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
