package pb

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-boids/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"
)

// Kind identifies which boids.v1 message a proto.Message carries.
type Kind int

const (
	KindUnknown Kind = iota
	KindStep
	KindAddAgent
	KindSpawnAgents
	KindAddObstacle
	KindSpawnObstacles
	KindSetMaxSpeed
	KindGetSnapshot
	KindGetStats
	KindSnapshot
	KindStats
)

var kindNames = [...]string{
	KindUnknown:        "Unknown",
	KindStep:           "Step",
	KindAddAgent:       "AddAgent",
	KindSpawnAgents:    "SpawnAgents",
	KindAddObstacle:    "AddObstacle",
	KindSpawnObstacles: "SpawnObstacles",
	KindSetMaxSpeed:    "SetMaxSpeed",
	KindGetSnapshot:    "GetSnapshot",
	KindGetStats:       "GetStats",
	KindSnapshot:       "Snapshot",
	KindStats:          "Stats",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// KindOf reports the kind of m by its descriptor full name.
func KindOf(m proto.Message) Kind {
	if m == nil {
		return KindUnknown
	}
	md := m.ProtoReflect().Descriptor()
	if md.ParentFile() == nil || md.ParentFile().Package() != packageName {
		return KindUnknown
	}
	for k, name := range kindNames {
		if k != int(KindUnknown) && md.Name() == protoreflect.Name(name) {
			return Kind(k)
		}
	}
	return KindUnknown
}

func setVec2(m protoreflect.Message, fd protoreflect.FieldDescriptor, v geometry.Vector2D) {
	vm := m.Mutable(fd).Message()
	vm.Set(vec2X, protoreflect.ValueOfFloat64(v.X))
	vm.Set(vec2Y, protoreflect.ValueOfFloat64(v.Y))
}

func getVec2(m protoreflect.Message, fd protoreflect.FieldDescriptor) geometry.Vector2D {
	return vec2From(m.Get(fd).Message())
}

func vec2From(vm protoreflect.Message) geometry.Vector2D {
	return geometry.Vector2D{
		X: vm.Get(vec2X).Float(),
		Y: vm.Get(vec2Y).Float(),
	}
}

func newVec2(v geometry.Vector2D) *dynamicpb.Message {
	m := dynamicpb.NewMessage(vec2Desc)
	m.Set(vec2X, protoreflect.ValueOfFloat64(v.X))
	m.Set(vec2Y, protoreflect.ValueOfFloat64(v.Y))
	return m
}

func withUint32(md protoreflect.MessageDescriptor, fd protoreflect.FieldDescriptor, v uint32) proto.Message {
	m := dynamicpb.NewMessage(md)
	m.Set(fd, protoreflect.ValueOfUint32(v))
	return m
}

func withPosition(md protoreflect.MessageDescriptor, fd protoreflect.FieldDescriptor, p geometry.Vector2D) proto.Message {
	m := dynamicpb.NewMessage(md)
	setVec2(m, fd, p)
	return m
}

// NewStep asks the actor to advance the flock n ticks.
func NewStep(n uint32) proto.Message { return withUint32(stepDesc, stepSteps, n) }

// NewAddAgent asks for one agent at p with a random heading.
func NewAddAgent(p geometry.Vector2D) proto.Message {
	return withPosition(addAgentDesc, addAgentPosition, p)
}

// NewSpawnAgents asks for n agents at random points of the region.
func NewSpawnAgents(n uint32) proto.Message {
	return withUint32(spawnAgentsDesc, spawnAgentsCount, n)
}

// NewAddObstacle asks for an obstacle at p.
func NewAddObstacle(p geometry.Vector2D) proto.Message {
	return withPosition(addObstacleDesc, addObstaclePosition, p)
}

// NewSpawnObstacles asks for n obstacles at random points of the region.
func NewSpawnObstacles(n uint32) proto.Message {
	return withUint32(spawnObstaclesDesc, spawnObstaclesCount, n)
}

// NewSetMaxSpeed changes the flock speed limit.
func NewSetMaxSpeed(v float64) proto.Message {
	m := dynamicpb.NewMessage(setMaxSpeedDesc)
	m.Set(setMaxSpeedMaxSpeed, protoreflect.ValueOfFloat64(v))
	return m
}

func NewGetSnapshot() proto.Message { return dynamicpb.NewMessage(getSnapshotDesc) }

func NewGetStats() proto.Message { return dynamicpb.NewMessage(getStatsDesc) }

// Count returns the count or steps field of a Step, SpawnAgents or SpawnObstacles message.
func Count(m proto.Message) uint32 {
	var fd protoreflect.FieldDescriptor
	switch KindOf(m) {
	case KindStep:
		fd = stepSteps
	case KindSpawnAgents:
		fd = spawnAgentsCount
	case KindSpawnObstacles:
		fd = spawnObstaclesCount
	default:
		return 0
	}
	return uint32(m.ProtoReflect().Get(fd).Uint())
}

// Position returns the position field of an AddAgent or AddObstacle message.
func Position(m proto.Message) geometry.Vector2D {
	switch KindOf(m) {
	case KindAddAgent:
		return getVec2(m.ProtoReflect(), addAgentPosition)
	case KindAddObstacle:
		return getVec2(m.ProtoReflect(), addObstaclePosition)
	default:
		return geometry.Zero
	}
}

// MaxSpeed returns the max_speed field of a SetMaxSpeed or Snapshot message.
func MaxSpeed(m proto.Message) float64 {
	switch KindOf(m) {
	case KindSetMaxSpeed:
		return m.ProtoReflect().Get(setMaxSpeedMaxSpeed).Float()
	case KindSnapshot:
		return m.ProtoReflect().Get(snapshotMaxSpeed).Float()
	default:
		return 0
	}
}

// EncodeSnapshot converts a flock snapshot to a boids.v1.Snapshot message.
func EncodeSnapshot(s flock.Snapshot) proto.Message {
	m := dynamicpb.NewMessage(snapshotDesc)
	m.Set(snapshotTick, protoreflect.ValueOfUint64(s.Tick))
	m.Set(snapshotMaxSpeed, protoreflect.ValueOfFloat64(s.MaxSpeed))

	agents := m.Mutable(snapshotAgents).List()
	for _, a := range s.Agents {
		el := agents.NewElement()
		am := el.Message()
		am.Set(agentStateID, protoreflect.ValueOfUint64(a.ID))
		setVec2(am, agentStatePosition, a.Position)
		setVec2(am, agentStateVelocity, a.Velocity)
		am.Set(agentStateHeading, protoreflect.ValueOfFloat64(a.Heading))
		agents.Append(el)
	}

	obstacles := m.Mutable(snapshotObstacles).List()
	for _, o := range s.Obstacles {
		obstacles.Append(protoreflect.ValueOfMessage(newVec2(o)))
	}
	return m
}

// DecodeSnapshot converts a boids.v1.Snapshot message back to a flock snapshot.
func DecodeSnapshot(m proto.Message) (flock.Snapshot, error) {
	if k := KindOf(m); k != KindSnapshot {
		return flock.Snapshot{}, fmt.Errorf("decode snapshot: unexpected message %s", k)
	}
	r := m.ProtoReflect()
	s := flock.Snapshot{
		Tick:     r.Get(snapshotTick).Uint(),
		MaxSpeed: r.Get(snapshotMaxSpeed).Float(),
	}

	agents := r.Get(snapshotAgents).List()
	if n := agents.Len(); n > 0 {
		s.Agents = make([]flock.AgentState, n)
		for i := range n {
			am := agents.Get(i).Message()
			s.Agents[i] = flock.AgentState{
				ID:       am.Get(agentStateID).Uint(),
				Position: getVec2(am, agentStatePosition),
				Velocity: getVec2(am, agentStateVelocity),
				Heading:  am.Get(agentStateHeading).Float(),
			}
		}
	}

	obstacles := r.Get(snapshotObstacles).List()
	if n := obstacles.Len(); n > 0 {
		s.Obstacles = make([]geometry.Vector2D, n)
		for i := range n {
			s.Obstacles[i] = vec2From(obstacles.Get(i).Message())
		}
	}
	return s, nil
}

// EncodeStats converts flock statistics to a boids.v1.Stats message.
func EncodeStats(s flock.Stats) proto.Message {
	m := dynamicpb.NewMessage(statsDesc)
	m.Set(statsAgents, protoreflect.ValueOfUint32(uint32(s.Agents)))
	m.Set(statsObstacles, protoreflect.ValueOfUint32(uint32(s.Obstacles)))
	setVec2(m, statsCentroid, s.Centroid)
	m.Set(statsMeanSpeed, protoreflect.ValueOfFloat64(s.MeanSpeed))
	m.Set(statsPolarization, protoreflect.ValueOfFloat64(s.Polarization))
	m.Set(statsGroups, protoreflect.ValueOfUint32(uint32(s.Groups)))
	m.Set(statsLargestGroup, protoreflect.ValueOfUint32(uint32(s.LargestGroup)))
	return m
}

// DecodeStats converts a boids.v1.Stats message back to flock statistics.
func DecodeStats(m proto.Message) (flock.Stats, error) {
	if k := KindOf(m); k != KindStats {
		return flock.Stats{}, fmt.Errorf("decode stats: unexpected message %s", k)
	}
	r := m.ProtoReflect()
	return flock.Stats{
		Agents:       int(r.Get(statsAgents).Uint()),
		Obstacles:    int(r.Get(statsObstacles).Uint()),
		Centroid:     getVec2(r, statsCentroid),
		MeanSpeed:    r.Get(statsMeanSpeed).Float(),
		Polarization: r.Get(statsPolarization).Float(),
		Groups:       int(r.Get(statsGroups).Uint()),
		LargestGroup: int(r.Get(statsLargestGroup).Uint()),
	}, nil
}

// MarshalJSON renders any boids.v1 message as indented protojson.
func MarshalJSON(m proto.Message) ([]byte, error) {
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(m)
}

// UnmarshalSnapshotJSON parses protojson produced by MarshalJSON for a Snapshot.
func UnmarshalSnapshotJSON(b []byte) (flock.Snapshot, error) {
	m := dynamicpb.NewMessage(snapshotDesc)
	if err := protojson.Unmarshal(b, m); err != nil {
		return flock.Snapshot{}, fmt.Errorf("decode snapshot json: %w", err)
	}
	return DecodeSnapshot(m)
}
