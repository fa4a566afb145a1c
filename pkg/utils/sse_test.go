package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendSSEEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	SetupSSEHeaders(rec)

	require.NoError(t, SendSSEEvent(rec, rec, "snapshot", map[string]int{"version": 3}))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "event: snapshot\ndata: {\"version\":3}\n\n", rec.Body.String())
	assert.True(t, rec.Flushed)
}

func TestSendSSEEventMarshalError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := SendSSEEvent(rec, rec, "bad", make(chan int))
	assert.Error(t, err)
	assert.Empty(t, rec.Body.String())
}

func TestSendSSEComment(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, SendSSEComment(rec, rec, "ping"))
	assert.Equal(t, ": ping\n\n", rec.Body.String())
}
