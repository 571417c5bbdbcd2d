package ecs

// UpdateFrame is handed to every system during one Scheduler.Once call.
type UpdateFrame struct {
	// DeltaTime is the frame length in seconds.
	DeltaTime float64
	// Number counts frames from 1.
	Number   uint64
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt float64, number uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Number:    number,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
