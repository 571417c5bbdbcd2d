package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/netris/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type SpawnerSystem struct {
	Seen  ecs.Query[struct{ *Name }]
	Total ecs.Singleton[Score]
	Log   []int
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	s.Log = append(s.Log, s.Seen.Len())
	if total := s.Total.Get(); total != nil {
		*total += Score(s.Seen.Len())
	}
	frame.Commands.Spawn(Name{Value: "spawned"})
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var order []string
	scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) { order = append(order, "first") }))
	scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) { order = append(order, "second") }))

	scheduler.Once(0.016)
	scheduler.Once(0.016)

	assert.Equal(t, []string{"first", "second", "first", "second"}, order)
}

func TestSchedulerBindsQueries(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	movement := &MovementSystem{}
	scheduler.Register(movement)

	id := storage.Spawn(Position{}, Velocity{DX: 2, DY: 4})
	scheduler.Once(0.5)

	assert.Equal(t, 1, movement.ExecuteCount)
	pos := ecs.ReadComponent[Position](storage, id)
	assert.Equal(t, Position{X: 1, Y: 2}, *pos)
}

func TestSchedulerCommandsLandNextFrame(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.AddSingleton(Score(0))
	scheduler := ecs.NewScheduler(storage)

	spawner := &SpawnerSystem{}
	scheduler.Register(spawner)

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	scheduler.Once(0.016)

	assert.Equal(t, []int{0, 1, 2}, spawner.Log)
	assert.Equal(t, Score(3), *ecs.ReadSingleton[Score](storage))
	assert.Equal(t, 3, storage.Len())
}

func TestSchedulerRunStops(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	frames := 0
	scheduler.Register(ecs.SystemFunc(func(f *ecs.UpdateFrame) {
		frames++
		assert.Equal(t, uint64(frames), f.Number)
	}))

	done := make(chan struct{})
	go func() {
		scheduler.Run(context.Background(), time.Millisecond, func() bool { return frames >= 3 })
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
	assert.Equal(t, 3, frames)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	scheduler.Run(ctx, time.Millisecond, nil)
	assert.GreaterOrEqual(t, frames, 3)
}

type TimedSystem struct {
	sleep time.Duration
}

func (s *TimedSystem) Execute(*ecs.UpdateFrame) {
	time.Sleep(s.sleep)
}

func TestSchedulerStats(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))

	stats := scheduler.GetStats()
	if stats.SystemCount != 0 {
		t.Errorf("expected 0 systems, got %d", stats.SystemCount)
	}

	scheduler.Register(&TimedSystem{sleep: time.Millisecond})
	scheduler.Register(&TimedSystem{sleep: 2 * time.Millisecond})

	stats = scheduler.GetStats()
	require.Len(t, stats.Systems, 2)
	if stats.Systems[0].MinDuration != 0 {
		t.Errorf("min duration of an idle system should read 0, got %v", stats.Systems[0].MinDuration)
	}

	for range 3 {
		scheduler.Once(0.016)
	}

	stats = scheduler.GetStats()
	if stats.TotalExecutions != 6 {
		t.Errorf("expected 6 total executions (2 systems * 3 runs), got %d", stats.TotalExecutions)
	}
	if stats.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", stats.Frames)
	}

	for _, sys := range stats.Systems {
		if sys.Name != "TimedSystem" {
			t.Errorf("expected system name 'TimedSystem', got '%s'", sys.Name)
		}
		if sys.ExecutionCount != 3 {
			t.Errorf("expected 3 executions, got %d", sys.ExecutionCount)
		}
		if sys.MinDuration == 0 || sys.LastDuration == 0 {
			t.Errorf("expected non-zero durations: %+v", sys)
		}
		if sys.MinDuration > sys.AvgDuration || sys.AvgDuration > sys.MaxDuration {
			t.Errorf("expected min <= avg <= max, got %v %v %v", sys.MinDuration, sys.AvgDuration, sys.MaxDuration)
		}
	}
}
