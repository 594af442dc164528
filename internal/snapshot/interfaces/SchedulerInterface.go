package interfaces

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
	// Close releases the snapshot codec. Persist must not be called after it.
	Close()
}
