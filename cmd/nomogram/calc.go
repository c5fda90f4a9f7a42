package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nomogram-service/internal/adapters/primary/http/dto"
	"nomogram-service/internal/core/domain"
	"nomogram-service/internal/core/engine"
)

type calcFlags struct {
	age       float64
	sex       string
	bilirubin float64
	copper    float64
	stage     int
	treatment int
	output    string
}

func newCalcCmd(load modelLoader) *cobra.Command {
	var f calcFlags

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate survival at 2, 5 and 8 years for one patient",
		Example: `  nomogram calc --age 50 --sex f --bilirubin 1.0 --copper 50 --stage 2 --treatment 0
  nomogram calc --age 62 --sex m --bilirubin 3.1 --copper 120 --stage 4 --treatment 1 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			model, err := load(cmd.Context())
			if err != nil {
				return err
			}

			result, err := engine.Calculate(f.raw(cmd), model.Coefficients, domain.ReferenceHorizons())
			if err != nil {
				return err
			}

			switch f.output {
			case outputJSON:
				return writeJSON(cmd.OutOrStdout(), dto.ToCalculateResponse(result, "", model))
			case outputText:
				return writeResultTable(cmd.OutOrStdout(), result, model)
			default:
				return fmt.Errorf("unknown output format %q", f.output)
			}
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&f.age, "age", 0, "age in years [0,120]")
	flags.StringVar(&f.sex, "sex", "", "sex: m or f")
	flags.Float64Var(&f.bilirubin, "bilirubin", 0, "serum bilirubin in mg/dL [0,50]")
	flags.Float64Var(&f.copper, "copper", 0, "urine copper in μg/dL [0,1000]")
	flags.IntVar(&f.stage, "stage", 0, "histologic stage 1-4")
	flags.IntVar(&f.treatment, "treatment", 0, "treatment arm 0-2 (0 is control)")
	flags.StringVarP(&f.output, "output", "o", outputText, "output format: text or json")

	return cmd
}

// raw keeps flags the user did not set as absent.
func (f *calcFlags) raw(cmd *cobra.Command) domain.RawCovariates {
	var raw domain.RawCovariates
	set := cmd.Flags().Changed

	if set("age") {
		raw.Age = &f.age
	}
	if set("sex") {
		raw.Sex = &f.sex
	}
	if set("bilirubin") {
		raw.Bilirubin = &f.bilirubin
	}
	if set("copper") {
		raw.Copper = &f.copper
	}
	if set("stage") {
		raw.Stage = &f.stage
	}
	if set("treatment") {
		raw.Treatment = &f.treatment
	}
	return raw
}

func writeResultTable(w io.Writer, result *domain.Result, model domain.CoefficientSet) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Model:\t%s (v%s)\n", model.Name, model.Version)
	fmt.Fprintf(tw, "Linear predictor:\t%.4f\n", result.LinearPredictor)
	fmt.Fprintf(tw, "Risk score:\t%.4f\n", result.RiskScore)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "HORIZON\tDAYS\tSURVIVAL")
	for _, p := range result.Survivals {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\n", p.Label, p.Days, dto.FormatPercent(p.Probability))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "TERM\tCONTRIBUTION")
	for _, c := range result.Contributions {
		fmt.Fprintf(tw, "%s\t%.4f\n", c.Term, c.Value)
	}

	if result.RiskCategory != "" {
		fmt.Fprintln(tw)
		fmt.Fprintf(tw, "Risk category:\t%s\n", result.RiskCategory.Advice())
	}

	return tw.Flush()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
