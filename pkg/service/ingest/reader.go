package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/residuum/pkg/domain/model"
	"github.com/secmon-lab/residuum/pkg/domain/types"
)

// Expected CSV header, in order
var header = []string{
	"record_id",
	"business_unit",
	"risk_name",
	"inherent_rating",
	"control_type",
	"control_rating",
	"loss_events",
	"assessed_at",
}

// ParseCSV reads an operational-risk register from CSV. Type coercion,
// missing-value checks and ID uniqueness are all enforced here, before any
// record reaches the scoring core. Any bad row fails the whole parse.
func ParseCSV(r io.Reader) ([]*model.RiskRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(header)

	head, err := reader.Read()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read CSV header")
	}
	for i, name := range header {
		if head[i] != name {
			return nil, goerr.New("unexpected CSV header",
				goerr.V("column", i),
				goerr.V("expected", name),
				goerr.V("actual", head[i]),
			)
		}
	}

	var records []*model.RiskRecord
	seen := make(map[types.RecordID]bool)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read CSV row", goerr.V("line", line))
		}

		record, err := parseRow(row)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid CSV row", goerr.V("line", line))
		}

		if seen[record.ID] {
			return nil, goerr.New("duplicate record ID", goerr.V("id", record.ID), goerr.V("line", line))
		}
		seen[record.ID] = true

		records = append(records, record)
	}

	return records, nil
}

func parseRow(row []string) (*model.RiskRecord, error) {
	inherent, err := types.ParseInherentRating(row[3])
	if err != nil {
		return nil, err
	}

	controlType, err := types.ParseControlType(row[4])
	if err != nil {
		return nil, err
	}

	control, err := types.ParseControlRating(row[5])
	if err != nil {
		return nil, err
	}

	lossEvents, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid loss events value", goerr.V("value", row[6]))
	}

	assessedAt, err := time.Parse(time.RFC3339, row[7])
	if err != nil {
		return nil, goerr.Wrap(err, "invalid assessment timestamp", goerr.V("value", row[7]))
	}

	record := &model.RiskRecord{
		ID:           types.RecordID(row[0]),
		BusinessUnit: row[1],
		RiskName:     row[2],
		Inherent:     inherent,
		ControlType:  controlType,
		Control:      control,
		LossEvents:   lossEvents,
		AssessedAt:   assessedAt,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}
