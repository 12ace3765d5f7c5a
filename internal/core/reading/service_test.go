package reading_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/citely/internal/core/reading"
	"github.com/taibuivan/citely/internal/core/source"
	"github.com/taibuivan/citely/internal/platform/remote"
	"github.com/taibuivan/citely/internal/platform/remote/remotetest"
	"github.com/taibuivan/citely/pkg/slice"
)

var discard = slog.New(slog.NewJSONHandler(io.Discard, nil))

func newService(fake *remotetest.Server) *reading.Service {
	client := fake.Client()
	sources := source.NewService(source.NewRemoteRepository(client), discard)
	return reading.NewService(sources, client, remote.HealthTimeout, discard)
}

func titles(readings []source.Source) []string {
	return slice.Map(readings, func(r source.Source) string { return r.Title })
}

/*
TestPopulate_Remote verifies a healthy service yields the three created
samples, in order, each carrying a service-assigned id.
*/
func TestPopulate_Remote(t *testing.T) {
	fake := remotetest.NewServer(t)
	ws := reading.NewWorkingSet()

	newService(fake).Populate(context.Background(), ws)

	readings := ws.Readings()
	require.Len(t, readings, 3)
	assert.Equal(t, reading.StatePopulatedRemote, ws.State())
	assert.Equal(t, []source.Type{source.TypeBook, source.TypeArticle, source.TypeVideo},
		[]source.Type{readings[0].Type, readings[1].Type, readings[2].Type})

	for _, r := range readings {
		require.True(t, r.HasID())
		_, stored := fake.Record(r.IDValue())
		assert.True(t, stored, "id %d not known to the service", r.IDValue())
	}
}

/*
TestPopulate_Fallback verifies the static list replaces an empty result when
the service is unreachable.
*/
func TestPopulate_Fallback(t *testing.T) {
	fake := remotetest.NewServer(t)
	fake.SetDown(true)
	ws := reading.NewWorkingSet()

	newService(fake).Populate(context.Background(), ws)

	readings := ws.Readings()
	require.Len(t, readings, 3)
	assert.Equal(t, reading.StatePopulatedFallback, ws.State())
	assert.Equal(t, []int64{1, 2, 3}, []int64{readings[0].IDValue(), readings[1].IDValue(), readings[2].IDValue()})
	assert.Equal(t, []string{
		"Design Patterns: Elements of Reusable Object-Oriented Software",
		"The Cathedral and the Bazaar",
		"Clean Code: A Handbook of Agile Software Craftsmanship",
	}, titles(readings))
}

/*
TestPopulate_Partial verifies a partial success keeps only the created records
and never mixes in fallback entries.
*/
func TestPopulate_Partial(t *testing.T) {
	fake := remotetest.NewServer(t)
	fake.RejectType(string(source.TypeArticle))
	ws := reading.NewWorkingSet()

	newService(fake).Populate(context.Background(), ws)

	readings := ws.Readings()
	require.Len(t, readings, 2)
	assert.Equal(t, reading.StatePopulatedRemote, ws.State())
	assert.Equal(t, source.TypeBook, readings[0].Type)
	assert.Equal(t, source.TypeVideo, readings[1].Type)
	for _, r := range readings {
		assert.Greater(t, r.IDValue(), int64(100))
	}
}

/*
TestPopulate_FallbackDecidedPerPass verifies a pass that creates nothing falls
back even when the working set already holds records.
*/
func TestPopulate_FallbackDecidedPerPass(t *testing.T) {
	fake := remotetest.NewServer(t)
	svc := newService(fake)
	ws := reading.NewWorkingSet()

	svc.Populate(context.Background(), ws)
	require.Equal(t, reading.StatePopulatedRemote, ws.State())

	fake.SetDown(true)
	svc.Populate(context.Background(), ws)

	assert.Equal(t, reading.StatePopulatedFallback, ws.State())
	readings := ws.Readings()
	require.Len(t, readings, 6)
	assert.Equal(t, int64(1), readings[3].IDValue())
}

/*
TestRefresh_ClearsFirst verifies refresh never accumulates records across calls.
*/
func TestRefresh_ClearsFirst(t *testing.T) {
	fake := remotetest.NewServer(t)
	svc := newService(fake)
	ws := reading.NewWorkingSet()

	svc.Populate(context.Background(), ws)
	first := ws.Readings()

	svc.Refresh(context.Background(), ws)
	second := ws.Readings()

	require.Len(t, second, 3)
	assert.NotEqual(t, first[0].IDValue(), second[0].IDValue())
	assert.Equal(t, 6, fake.RecordCount())

	fake.SetDown(true)
	svc.Refresh(context.Background(), ws)
	assert.Equal(t, reading.StatePopulatedFallback, ws.State())
	assert.Equal(t, 3, ws.Len())
}

func TestEnsurePopulated(t *testing.T) {
	fake := remotetest.NewServer(t)
	svc := newService(fake)
	ws := reading.NewWorkingSet()

	svc.EnsurePopulated(context.Background(), ws)
	svc.EnsurePopulated(context.Background(), ws)

	assert.Equal(t, 3, ws.Len())
	assert.Equal(t, 3, fake.RecordCount())
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		fake := remotetest.NewServer(t)
		assert.True(t, newService(fake).HealthCheck(context.Background()))
	})

	t.Run("non_2xx", func(t *testing.T) {
		fake := remotetest.NewServer(t)
		fake.SetHealthStatus(http.StatusServiceUnavailable)
		assert.False(t, newService(fake).HealthCheck(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		client := remote.NewClient("http://127.0.0.1:1")
		sources := source.NewService(source.NewRemoteRepository(client), discard)
		svc := reading.NewService(sources, client, 200*time.Millisecond, discard)
		assert.False(t, svc.HealthCheck(context.Background()))
	})
}

func TestWorkingSet_ReadingsAreCopies(t *testing.T) {
	fake := remotetest.NewServer(t)
	fake.SetDown(true)
	ws := reading.NewWorkingSet()
	assert.Equal(t, reading.StateEmpty, ws.State())

	newService(fake).Populate(context.Background(), ws)

	readings := ws.Readings()
	readings[0].Title = "changed"
	*readings[0].ID = 99

	again := ws.Readings()
	assert.Equal(t, int64(1), again[0].IDValue())
	assert.NotEqual(t, "changed", again[0].Title)

	ws.Clear()
	assert.True(t, ws.IsEmpty())
	assert.Equal(t, reading.StateEmpty, ws.State())
}
