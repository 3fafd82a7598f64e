package projection_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Driiva/Driiva/internal/httputil"
	"github.com/Driiva/Driiva/internal/projection"
)

func TestLocalProjector_CentroidProjectsToOrigin(t *testing.T) {
	points := []projection.GeoPoint{
		{Latitude: 51.50, Longitude: -0.10},
		{Latitude: 51.51, Longitude: -0.11},
	}
	out, err := projection.LocalProjector{}.Project(points)
	require.NoError(t, err)
	require.Len(t, out, 2)

	cx, cy := (out[0].X+out[1].X)/2, (out[0].Y+out[1].Y)/2
	assert.InDelta(t, 0, cx, 1e-6)
	assert.InDelta(t, 0, cy, 1e-6)
}

func TestLocalProjector_EmptyInputReturnsNil(t *testing.T) {
	out, err := projection.LocalProjector{}.Project(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestHTTPProjector_DecodesServiceResponse(t *testing.T) {
	mock := httputil.NewMockHTTPClient()
	mock.AddResponse(http.StatusOK, `{"points":[{"X":1.5,"Y":2.5}]}`)

	p := projection.NewHTTPProjector(mock, "http://projector.local")
	out, err := p.Project([]projection.GeoPoint{{Latitude: 1, Longitude: 2}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1.5, out[0].X)
	assert.Equal(t, 2.5, out[0].Y)
}

func TestHTTPProjector_NonOKStatusErrors(t *testing.T) {
	mock := httputil.NewMockHTTPClient()
	mock.AddResponse(http.StatusInternalServerError, `oops`)

	p := projection.NewHTTPProjector(mock, "http://projector.local")
	_, err := p.Project([]projection.GeoPoint{{Latitude: 1, Longitude: 2}})
	assert.Error(t, err)
}

func TestHTTPProjector_EmptyInputSkipsRequest(t *testing.T) {
	mock := httputil.NewMockHTTPClient()
	p := projection.NewHTTPProjector(mock, "http://projector.local")
	out, err := p.Project(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.Empty(t, mock.Requests)
}
