package tripstreamrpc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Driiva/Driiva/internal/stopgo"
)

func TestSampleFromStruct_ParsesRequiredFields(t *testing.T) {
	msg, err := structpb.NewStruct(map[string]interface{}{
		"timestamp": "2026-01-01T00:00:00Z",
		"x":         1.5,
		"y":         2.5,
	})
	require.NoError(t, err)

	sample, err := sampleFromStruct(msg)
	require.NoError(t, err)
	assert.Equal(t, 1.5, sample.X)
	assert.Equal(t, 2.5, sample.Y)
	assert.Nil(t, sample.MotionScore)
}

func TestSampleFromStruct_CarriesOptionalMotionScore(t *testing.T) {
	msg, err := structpb.NewStruct(map[string]interface{}{
		"timestamp":    "2026-01-01T00:00:00Z",
		"x":            0.0,
		"y":            0.0,
		"motion_score": 1.8,
	})
	require.NoError(t, err)

	sample, err := sampleFromStruct(msg)
	require.NoError(t, err)
	require.NotNil(t, sample.MotionScore)
	assert.Equal(t, 1.8, *sample.MotionScore)
}

func TestSampleFromStruct_MissingTimestampErrors(t *testing.T) {
	msg, err := structpb.NewStruct(map[string]interface{}{"x": 0.0, "y": 0.0})
	require.NoError(t, err)
	_, err = sampleFromStruct(msg)
	assert.Error(t, err)
}

func TestStructFromResult_CarriesSummaryAndIntervals(t *testing.T) {
	result := stopgo.ClassificationResult{
		Stops: []stopgo.StopInterval{{
			Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Stop:  time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC),
		}},
		Summary: stopgo.Summary{TotalPoints: 10, TotalStops: 1, TotalTrips: 2, Success: true},
	}

	out, err := structFromResult(result)
	require.NoError(t, err)
	assert.Equal(t, 10.0, out.Fields["total_points"].GetNumberValue())
	assert.True(t, out.Fields["success"].GetBoolValue())
	assert.Len(t, out.Fields["stops"].GetListValue().Values, 1)
}
