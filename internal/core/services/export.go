package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"nomogram-service/internal/core/domain"
)

// utf8BOM lets spreadsheet tools detect the encoding.
const utf8BOM = "\uFEFF"

// WriteCSV writes one row per record. Survival columns follow horizons; a
// horizon missing from a record is left blank.
func WriteCSV(w io.Writer, horizons []domain.Horizon, records []*domain.HistoryRecord) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	cw := csv.NewWriter(w)

	header := []string{
		"recorded_at", "age", "sex", "bilirubin", "copper", "stage", "treatment",
	}
	for _, h := range horizons {
		header = append(header, "survival_"+h.Label+"_pct")
	}
	header = append(header, "risk_score", "linear_predictor", "risk_category", "model")

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.CreatedAt.UTC().Format(time.RFC3339),
			formatFloat(rec.Covariates.Age),
			sexLabel(rec.Covariates.Sex),
			formatFloat(rec.Covariates.Bilirubin),
			formatFloat(rec.Covariates.Copper),
			strconv.Itoa(rec.Covariates.Stage),
			treatmentLabel(rec.Covariates.Treatment),
		}
		for _, h := range horizons {
			if p, ok := rec.Survivals.At(h.Label); ok {
				row = append(row, strconv.FormatFloat(p*100, 'f', 2, 64))
			} else {
				row = append(row, "")
			}
		}
		row = append(row,
			strconv.FormatFloat(rec.RiskScore, 'f', 4, 64),
			strconv.FormatFloat(rec.LinearPredictor, 'f', 4, 64),
			string(rec.RiskCategory),
			rec.ModelName,
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", rec.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func sexLabel(s domain.Sex) string {
	switch s {
	case domain.SexMale:
		return "male"
	case domain.SexFemale:
		return "female"
	default:
		return string(s)
	}
}

func treatmentLabel(trt int) string {
	switch trt {
	case 0:
		return "control"
	default:
		return "treatment " + strconv.Itoa(trt)
	}
}
