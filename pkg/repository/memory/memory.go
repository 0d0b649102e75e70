package memory

import (
	"github.com/secmon-lab/residuum/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	record *recordRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		record: newRecordRepository(),
	}
}

func (m *Memory) Record() interfaces.RecordRepository {
	return m.record
}

func (m *Memory) Close() error {
	return nil
}
