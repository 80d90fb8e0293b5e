package log_test

import (
	"testing"

	"github.com/arnavsurve/stepshot/pkg/core"
	"github.com/arnavsurve/stepshot/pkg/log"
	"github.com/arnavsurve/stepshot/pkg/security"
	"github.com/arnavsurve/stepshot/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	events []*log.LogEvent
	closed bool
}

func (c *captureSink) Write(event *log.LogEvent) error {
	c.events = append(c.events, event)
	return nil
}

func (c *captureSink) Close() error {
	c.closed = true
	return nil
}

func TestRouterFansOutToSinks(t *testing.T) {
	first, second := &captureSink{}, &captureSink{}
	router := log.NewRouter(first)
	router.AddSink(second)

	logger := log.New(router)
	logger.Error().Str("selector", "#submit").Msg("boom")

	for _, sink := range []*captureSink{first, second} {
		require.Len(t, sink.events, 1)
		assert.Equal(t, types.ErrorLevel, sink.events[0].Level)
		assert.Equal(t, "boom", sink.events[0].Message)
		assert.Equal(t, "#submit", sink.events[0].Fields["selector"])
		assert.False(t, sink.events[0].Timestamp.IsZero())
	}

	require.NoError(t, router.Close())
	assert.True(t, first.closed)
	assert.True(t, second.closed)
}

func TestRouterRedactsSecrets(t *testing.T) {
	sink := &captureSink{}
	router := log.NewRouter(sink)
	router.SetRedactor(security.NewRedactor(
		[]core.Input{{Name: "password", Secret: true}},
		core.VarContext{"password": "hunter2"},
	))

	logger := log.New(router)
	logger.Info().
		Str("value", "hunter2").
		Interface("step", map[string]any{"value": "hunter2"}).
		Msg("filling hunter2")

	require.Len(t, sink.events, 1)
	evt := sink.events[0]
	assert.Equal(t, "filling ********", evt.Message)
	assert.Equal(t, "********", evt.Fields["value"])
	assert.Equal(t, map[string]any{"value": "********"}, evt.Fields["step"])
}

func TestRouterIgnoresGarbage(t *testing.T) {
	sink := &captureSink{}
	router := log.NewRouter(sink)

	n, err := router.Write([]byte("not json"))
	require.NoError(t, err)
	assert.Equal(t, len("not json"), n)
	assert.Empty(t, sink.events)
}
