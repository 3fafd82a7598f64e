// Package tripstreamrpc exposes the classifier over gRPC as a second
// transport surface alongside internal/api's HTTP server, following the
// teacher's internal/lidar/visualiser gRPC server shape. Wire messages are
// google.golang.org/protobuf's structpb.Struct, which already satisfies
// proto.Message, so no separate protoc code-generation step is needed to
// get real protobuf wire encoding over grpc.ServerStream.
package tripstreamrpc

import (
	"fmt"
	"io"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Driiva/Driiva/internal/monitoring"
	"github.com/Driiva/Driiva/internal/stopgo"
)

const serviceName = "driiva.tripstreamrpc.ClassifierService"

// ClassifyServer implements the ClassifyStream RPC: a client streams one
// sample message per GPS fix, then half-closes; the server classifies the
// accumulated trace and replies once with the result.
type ClassifyServer struct {
	cfg stopgo.Config
}

// NewClassifyServer builds a ClassifyServer that classifies with cfg.
func NewClassifyServer(cfg stopgo.Config) *ClassifyServer {
	return &ClassifyServer{cfg: cfg}
}

func (s *ClassifyServer) classifyStream(stream grpc.ServerStream) error {
	var samples []stopgo.Sample
	for {
		var msg structpb.Struct
		if err := stream.RecvMsg(&msg); err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("tripstreamrpc: receive sample: %w", err)
		}
		sample, err := sampleFromStruct(&msg)
		if err != nil {
			return err
		}
		samples = append(samples, sample)
	}

	result := stopgo.Classify(samples, s.cfg)
	monitoring.Logf("tripstreamrpc: classified %d points over stream", result.Summary.TotalPoints)

	out, err := structFromResult(result)
	if err != nil {
		return fmt.Errorf("tripstreamrpc: marshal result: %w", err)
	}
	return stream.SendMsg(out)
}

// ServiceDesc is the hand-built gRPC service descriptor for
// ClassifierService, registered the way RegisterService does in the
// teacher's visualiser package.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ClassifyServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "ClassifyStream",
			ServerStreams: true,
			ClientStreams: true,
			Handler: func(srv interface{}, stream grpc.ServerStream) error {
				return srv.(*ClassifyServer).classifyStream(stream)
			},
		},
	},
}

// Register attaches ClassifyServer to grpcServer.
func Register(grpcServer *grpc.Server, server *ClassifyServer) {
	grpcServer.RegisterService(&ServiceDesc, server)
}

func sampleFromStruct(msg *structpb.Struct) (stopgo.Sample, error) {
	fields := msg.GetFields()
	ts, ok := fields["timestamp"]
	if !ok {
		return stopgo.Sample{}, fmt.Errorf("tripstreamrpc: sample missing timestamp field")
	}
	parsed, err := time.Parse(time.RFC3339, ts.GetStringValue())
	if err != nil {
		return stopgo.Sample{}, fmt.Errorf("tripstreamrpc: invalid timestamp %q: %w", ts.GetStringValue(), err)
	}

	sample := stopgo.Sample{
		Timestamp: parsed,
		X:         fields["x"].GetNumberValue(),
		Y:         fields["y"].GetNumberValue(),
	}
	if m, ok := fields["motion_score"]; ok {
		v := m.GetNumberValue()
		sample.MotionScore = &v
	}
	return sample, nil
}

func structFromResult(result stopgo.ClassificationResult) (*structpb.Struct, error) {
	stops := make([]interface{}, len(result.Stops))
	for i, st := range result.Stops {
		stops[i] = map[string]interface{}{
			"start":            st.Start.Format(time.RFC3339),
			"stop":             st.Stop.Format(time.RFC3339),
			"duration_seconds": st.DurationSeconds,
			"centroid_x":       st.CentroidX,
			"centroid_y":       st.CentroidY,
		}
	}
	trips := make([]interface{}, len(result.Trips))
	for i, tr := range result.Trips {
		trips[i] = map[string]interface{}{
			"start":            tr.Start.Format(time.RFC3339),
			"stop":             tr.Stop.Format(time.RFC3339),
			"duration_seconds": tr.DurationSeconds,
		}
	}

	return structpb.NewStruct(map[string]interface{}{
		"total_points": float64(result.Summary.TotalPoints),
		"total_stops":  float64(result.Summary.TotalStops),
		"total_trips":  float64(result.Summary.TotalTrips),
		"success":      result.Summary.Success,
		"error":        result.Summary.Error,
		"stops":        stops,
		"trips":        trips,
	})
}
