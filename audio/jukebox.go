package audio

// Jukebox plays one theme at a time, looping.
type Jukebox interface {
	// Play starts t from the beginning, replacing whatever was playing.
	Play(t Theme)
	Pause()
	Resume()
	Stop()
	Close() error
}

// Silent is a Jukebox that plays nothing.
type Silent struct{}

func (Silent) Play(Theme) {}
func (Silent) Pause() {}
func (Silent) Resume() {}
func (Silent) Stop() {}
func (Silent) Close() error { return nil }
