package usecase

const (
	// DefaultQueueCapacity is how many decoded transactions may wait for the
	// dispatcher before ingest blocks.
	DefaultQueueCapacity = 16
)
