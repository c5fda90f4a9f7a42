package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"nomogram-service/internal/adapters/primary/http/dto"
	"nomogram-service/internal/core/domain"
)

func newModelCmd(load modelLoader) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "model",
		Short: "Print the active coefficient set",
		Long: `Print the coefficient set the calculator would use. The YAML output
can be edited and passed back with --model-file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := load(cmd.Context())
			if err != nil {
				return err
			}

			switch output {
			case outputYAML:
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(model); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			case outputJSON:
				return writeJSON(cmd.OutOrStdout(), dto.ToModelResponse(model, domain.ReferenceHorizons()))
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputYAML, "output format: yaml or json")
	return cmd
}
