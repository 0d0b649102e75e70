package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUnknownUnit    = errors.New("business unit not found in catalog")
	ErrUnknownRisk    = errors.New("risk name not found in catalog")
)

// Context keys for error values
const (
	RecordIDKey = "record_id"
	UnitKey     = "business_unit"
	RiskNameKey = "risk_name"
)
