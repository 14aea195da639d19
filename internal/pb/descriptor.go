// Package pb describes the protobuf messages exchanged with the flock actor.
//
// The schema lives in Go rather than in a .proto file: it is assembled as a
// FileDescriptorProto at init time and messages are created with dynamicpb,
// so no generated code has to be kept in sync.
//
//	syntax = "proto3";
//	package boids.v1;
//
//	message Vec2          { double x = 1; double y = 2; }
//	message Step          { uint32 steps = 1; }
//	message AddAgent      { Vec2 position = 1; }
//	message SpawnAgents   { uint32 count = 1; }
//	message AddObstacle   { Vec2 position = 1; }
//	message SpawnObstacles{ uint32 count = 1; }
//	message SetMaxSpeed   { double max_speed = 1; }
//	message GetSnapshot   {}
//	message GetStats      {}
//	message AgentState    { uint64 id = 1; Vec2 position = 2; Vec2 velocity = 3; double heading = 4; }
//	message Snapshot      { uint64 tick = 1; double max_speed = 2; repeated AgentState agents = 3; repeated Vec2 obstacles = 4; }
//	message Stats         { uint32 agents = 1; uint32 obstacles = 2; Vec2 centroid = 3; double mean_speed = 4;
//	                        double polarization = 5; uint32 groups = 6; uint32 largest_group = 7; }
package pb

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

const (
	fileName    = "boids/v1/boids.proto"
	packageName = "boids.v1"
)

type fieldType = descriptorpb.FieldDescriptorProto_Type

const (
	typeDouble  = descriptorpb.FieldDescriptorProto_TYPE_DOUBLE
	typeUint32  = descriptorpb.FieldDescriptorProto_TYPE_UINT32
	typeUint64  = descriptorpb.FieldDescriptorProto_TYPE_UINT64
	typeMessage = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
)

// field describes a singular field; a non-empty msg makes it a message field.
func field(name string, number int32, typ fieldType, msg string) *descriptorpb.FieldDescriptorProto {
	f := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
	if msg != "" {
		f.TypeName = proto.String("." + packageName + "." + msg)
	}
	return f
}

func repeated(f *descriptorpb.FieldDescriptorProto) *descriptorpb.FieldDescriptorProto {
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func message(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
}

func fileDescriptorProto() *descriptorpb.FileDescriptorProto {
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(fileName),
		Package: proto.String(packageName),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			message("Vec2",
				field("x", 1, typeDouble, ""),
				field("y", 2, typeDouble, "")),
			message("Step", field("steps", 1, typeUint32, "")),
			message("AddAgent", field("position", 1, typeMessage, "Vec2")),
			message("SpawnAgents", field("count", 1, typeUint32, "")),
			message("AddObstacle", field("position", 1, typeMessage, "Vec2")),
			message("SpawnObstacles", field("count", 1, typeUint32, "")),
			message("SetMaxSpeed", field("max_speed", 1, typeDouble, "")),
			message("GetSnapshot"),
			message("GetStats"),
			message("AgentState",
				field("id", 1, typeUint64, ""),
				field("position", 2, typeMessage, "Vec2"),
				field("velocity", 3, typeMessage, "Vec2"),
				field("heading", 4, typeDouble, "")),
			message("Snapshot",
				field("tick", 1, typeUint64, ""),
				field("max_speed", 2, typeDouble, ""),
				repeated(field("agents", 3, typeMessage, "AgentState")),
				repeated(field("obstacles", 4, typeMessage, "Vec2"))),
			message("Stats",
				field("agents", 1, typeUint32, ""),
				field("obstacles", 2, typeUint32, ""),
				field("centroid", 3, typeMessage, "Vec2"),
				field("mean_speed", 4, typeDouble, ""),
				field("polarization", 5, typeDouble, ""),
				field("groups", 6, typeUint32, ""),
				field("largest_group", 7, typeUint32, "")),
		},
	}
}

// File is the compiled descriptor of boids/v1/boids.proto.
var File protoreflect.FileDescriptor

var (
	vec2Desc           protoreflect.MessageDescriptor
	stepDesc           protoreflect.MessageDescriptor
	addAgentDesc       protoreflect.MessageDescriptor
	spawnAgentsDesc    protoreflect.MessageDescriptor
	addObstacleDesc    protoreflect.MessageDescriptor
	spawnObstaclesDesc protoreflect.MessageDescriptor
	setMaxSpeedDesc    protoreflect.MessageDescriptor
	getSnapshotDesc    protoreflect.MessageDescriptor
	getStatsDesc       protoreflect.MessageDescriptor
	agentStateDesc     protoreflect.MessageDescriptor
	snapshotDesc       protoreflect.MessageDescriptor
	statsDesc          protoreflect.MessageDescriptor
)

// Field descriptors, resolved once so that a misspelled name fails at init.
var (
	vec2X, vec2Y protoreflect.FieldDescriptor

	stepSteps           protoreflect.FieldDescriptor
	addAgentPosition    protoreflect.FieldDescriptor
	spawnAgentsCount    protoreflect.FieldDescriptor
	addObstaclePosition protoreflect.FieldDescriptor
	spawnObstaclesCount protoreflect.FieldDescriptor
	setMaxSpeedMaxSpeed protoreflect.FieldDescriptor
	agentStateID        protoreflect.FieldDescriptor
	agentStatePosition  protoreflect.FieldDescriptor
	agentStateVelocity  protoreflect.FieldDescriptor
	agentStateHeading   protoreflect.FieldDescriptor
	snapshotTick        protoreflect.FieldDescriptor
	snapshotMaxSpeed    protoreflect.FieldDescriptor
	snapshotAgents      protoreflect.FieldDescriptor
	snapshotObstacles   protoreflect.FieldDescriptor
	statsAgents         protoreflect.FieldDescriptor
	statsObstacles      protoreflect.FieldDescriptor
	statsCentroid       protoreflect.FieldDescriptor
	statsMeanSpeed      protoreflect.FieldDescriptor
	statsPolarization   protoreflect.FieldDescriptor
	statsGroups         protoreflect.FieldDescriptor
	statsLargestGroup   protoreflect.FieldDescriptor
)

func init() {
	fd, err := protodesc.NewFile(fileDescriptorProto(), new(protoregistry.Files))
	if err != nil {
		panic(fmt.Sprintf("pb: invalid descriptor for %s: %v", fileName, err))
	}
	File = fd

	lookup := func(name protoreflect.Name) protoreflect.MessageDescriptor {
		md := fd.Messages().ByName(name)
		if md == nil {
			panic(fmt.Sprintf("pb: message %s missing from %s", name, fileName))
		}
		return md
	}
	vec2Desc = lookup("Vec2")
	stepDesc = lookup("Step")
	addAgentDesc = lookup("AddAgent")
	spawnAgentsDesc = lookup("SpawnAgents")
	addObstacleDesc = lookup("AddObstacle")
	spawnObstaclesDesc = lookup("SpawnObstacles")
	setMaxSpeedDesc = lookup("SetMaxSpeed")
	getSnapshotDesc = lookup("GetSnapshot")
	getStatsDesc = lookup("GetStats")
	agentStateDesc = lookup("AgentState")
	snapshotDesc = lookup("Snapshot")
	statsDesc = lookup("Stats")

	field := func(md protoreflect.MessageDescriptor, name protoreflect.Name) protoreflect.FieldDescriptor {
		fd := md.Fields().ByName(name)
		if fd == nil {
			panic(fmt.Sprintf("pb: field %s.%s missing from %s", md.Name(), name, fileName))
		}
		return fd
	}
	vec2X = field(vec2Desc, "x")
	vec2Y = field(vec2Desc, "y")
	stepSteps = field(stepDesc, "steps")
	addAgentPosition = field(addAgentDesc, "position")
	spawnAgentsCount = field(spawnAgentsDesc, "count")
	addObstaclePosition = field(addObstacleDesc, "position")
	spawnObstaclesCount = field(spawnObstaclesDesc, "count")
	setMaxSpeedMaxSpeed = field(setMaxSpeedDesc, "max_speed")
	agentStateID = field(agentStateDesc, "id")
	agentStatePosition = field(agentStateDesc, "position")
	agentStateVelocity = field(agentStateDesc, "velocity")
	agentStateHeading = field(agentStateDesc, "heading")
	snapshotTick = field(snapshotDesc, "tick")
	snapshotMaxSpeed = field(snapshotDesc, "max_speed")
	snapshotAgents = field(snapshotDesc, "agents")
	snapshotObstacles = field(snapshotDesc, "obstacles")
	statsAgents = field(statsDesc, "agents")
	statsObstacles = field(statsDesc, "obstacles")
	statsCentroid = field(statsDesc, "centroid")
	statsMeanSpeed = field(statsDesc, "mean_speed")
	statsPolarization = field(statsDesc, "polarization")
	statsGroups = field(statsDesc, "groups")
	statsLargestGroup = field(statsDesc, "largest_group")
}
