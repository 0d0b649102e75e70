package interfaces

// Repository defines the interface for register persistence
type Repository interface {
	Record() RecordRepository

	// Close releases any backend resources held by the repository
	Close() error
}
