package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/residuum/pkg/domain/model"
)

// WriteCSV writes a register in the same CSV layout ParseCSV reads. Only
// source fields are written; derived fields are recomputed on the way back in.
func WriteCSV(w io.Writer, records []*model.RiskRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}

	for _, record := range records {
		row := []string{
			record.ID.String(),
			record.BusinessUnit,
			record.RiskName,
			record.Inherent.String(),
			record.ControlType.String(),
			record.Control.String(),
			strconv.FormatFloat(record.LossEvents, 'f', -1, 64),
			record.AssessedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return goerr.Wrap(err, "failed to write CSV row", goerr.V("id", record.ID))
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV output")
	}

	return nil
}
