package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids/internal/pb"
	"github.com/lao-tseu-is-alive/go-boids/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

var errClosed = errors.New("closed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errClosed }

func TestWriteSnapshot(t *testing.T) {
	snap := flock.Snapshot{
		Tick:      3,
		MaxSpeed:  4,
		Agents:    []flock.AgentState{{ID: 1, Position: geometry.NewVector(1, 2), Velocity: geometry.NewVector(4, 0)}},
		Obstacles: []geometry.Vector2D{{X: 10, Y: 10}},
	}

	var buf bytes.Buffer
	if err := writeSnapshot(&buf, snap); err != nil {
		t.Fatalf("writeSnapshot() error = %v", err)
	}
	if b := buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		t.Errorf("output %q should end with a newline", b)
	}
	got, err := pb.UnmarshalSnapshotJSON(buf.Bytes())
	if err != nil {
		t.Fatalf("UnmarshalSnapshotJSON() error = %v", err)
	}
	if got.Tick != 3 || len(got.Agents) != 1 || len(got.Obstacles) != 1 {
		t.Errorf("decoded %+v; want tick 3 with one agent and one obstacle", got)
	}

	if err := writeSnapshot(failingWriter{}, snap); !errors.Is(err, errClosed) {
		t.Errorf("writeSnapshot(failing writer) error = %v; want %v", err, errClosed)
	}
}
