package ingest_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/residuum/pkg/domain/types"
	"github.com/secmon-lab/residuum/pkg/service/ingest"
)

const validCSV = `record_id,business_unit,risk_name,inherent_rating,control_type,control_rating,loss_events,assessed_at
R-0001,Payments,Transaction Fraud,High,Preventative,Ineffective,12,2025-11-04T09:00:00Z
R-0002,Trading,Model Error,Low,Detective,Partially Effective,2.5,2025-11-04T09:00:00Z
`

func TestParseCSV(t *testing.T) {
	records := gt.R1(ingest.ParseCSV(strings.NewReader(validCSV))).NoError(t)
	gt.Array(t, records).Length(2)

	gt.Value(t, records[0].ID).Equal(types.RecordID("R-0001"))
	gt.Value(t, records[0].Inherent).Equal(types.InherentHigh)
	gt.Value(t, records[0].Control).Equal(types.ControlIneffective)
	gt.Number(t, records[0].LossEvents).Equal(12)

	gt.Value(t, records[1].ControlType).Equal(types.ControlTypeDetective)
	gt.Value(t, records[1].Control).Equal(types.ControlPartiallyEffective)
	gt.Number(t, records[1].LossEvents).Equal(2.5)

	// Derived fields stay unset; evaluation belongs to the core
	gt.Number(t, records[0].CombinedScore).Equal(0)
}

func TestParseCSV_Failures(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			"wrong header",
			"id,unit,risk,inherent,ctype,control,loss,at\n",
		},
		{
			"unknown inherent rating",
			"record_id,business_unit,risk_name,inherent_rating,control_type,control_rating,loss_events,assessed_at\n" +
				"R-0001,Payments,Fraud,Severe,Preventative,Effective,1,2025-11-04T09:00:00Z\n",
		},
		{
			"lowercase control rating",
			"record_id,business_unit,risk_name,inherent_rating,control_type,control_rating,loss_events,assessed_at\n" +
				"R-0001,Payments,Fraud,High,Preventative,effective,1,2025-11-04T09:00:00Z\n",
		},
		{
			"bad loss events",
			"record_id,business_unit,risk_name,inherent_rating,control_type,control_rating,loss_events,assessed_at\n" +
				"R-0001,Payments,Fraud,High,Preventative,Effective,many,2025-11-04T09:00:00Z\n",
		},
		{
			"bad timestamp",
			"record_id,business_unit,risk_name,inherent_rating,control_type,control_rating,loss_events,assessed_at\n" +
				"R-0001,Payments,Fraud,High,Preventative,Effective,1,November 4th\n",
		},
		{
			"missing column",
			"record_id,business_unit,risk_name,inherent_rating,control_type,control_rating,loss_events,assessed_at\n" +
				"R-0001,Payments,Fraud,High,Preventative,Effective,1\n",
		},
		{
			"duplicate ID",
			"record_id,business_unit,risk_name,inherent_rating,control_type,control_rating,loss_events,assessed_at\n" +
				"R-0001,Payments,Fraud,High,Preventative,Effective,1,2025-11-04T09:00:00Z\n" +
				"R-0001,Trading,Fraud,Low,Detective,Ineffective,2,2025-11-04T09:00:00Z\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ingest.ParseCSV(strings.NewReader(tt.csv))
			gt.Error(t, err)
		})
	}
}

func TestParseCSV_InvalidRatingErrorIdentity(t *testing.T) {
	csv := "record_id,business_unit,risk_name,inherent_rating,control_type,control_rating,loss_events,assessed_at\n" +
		"R-0001,Payments,Fraud,High,Preventative,Broken,1,2025-11-04T09:00:00Z\n"

	_, err := ingest.ParseCSV(strings.NewReader(csv))
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrInvalidRating))
}

func TestWriteCSVRoundTrip(t *testing.T) {
	records := gt.R1(ingest.ParseCSV(strings.NewReader(validCSV))).NoError(t)

	var buf bytes.Buffer
	gt.NoError(t, ingest.WriteCSV(&buf, records))

	parsed := gt.R1(ingest.ParseCSV(&buf)).NoError(t)
	gt.Array(t, parsed).Length(len(records))
	for i := range parsed {
		gt.Value(t, *parsed[i]).Equal(*records[i])
	}
}
