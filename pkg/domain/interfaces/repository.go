package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Assessment() AssessmentRepository
	History() HistoryRepository

	// Close releases backend resources
	Close() error
}
