package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"nomogram-service/internal/adapters/secondary/modelsource"
	"nomogram-service/internal/core/domain"
	"nomogram-service/internal/core/services"
)

// Output formats.
const (
	outputJSON = "json"
	outputText = "text"
	outputYAML = "yaml"
)

func newRootCmd() *cobra.Command {
	var (
		modelFile string
		verbose   bool
	)

	rootCmd := &cobra.Command{
		Use:           "nomogram",
		Short:         "Estimate survival probabilities from a fitted Cox model",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&modelFile, "model-file", "", "YAML or JSON coefficient set (default: built-in reference fit)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log model loading details")

	load := func(ctx context.Context) (domain.CoefficientSet, error) {
		return loadModel(ctx, modelFile)
	}

	rootCmd.AddCommand(newCalcCmd(load), newModelCmd(load))
	return rootCmd
}

type modelLoader func(ctx context.Context) (domain.CoefficientSet, error)

func loadModel(ctx context.Context, path string) (domain.CoefficientSet, error) {
	src := modelsource.NewReferenceSource()
	if path != "" {
		src = modelsource.NewFileSource(path)
	}
	set, err := services.LoadModel(ctx, src)
	if err != nil {
		return domain.CoefficientSet{}, fmt.Errorf("load model: %w", err)
	}
	return set, nil
}
