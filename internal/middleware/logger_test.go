package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTinyLine(t *testing.T) {
	assert.Equal(t, "GET /users 200 58 - 1.500 ms",
		TinyLine("GET", "/users", 200, 58, 1500*time.Microsecond))
	assert.Equal(t, "DELETE /users/9 404 - - 0.000 ms",
		TinyLine("DELETE", "/users/9", 404, 0, 0))
}

func TestTiny_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	h := Tiny(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/9?x=1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "GET /users/9?x=1 404 7 - ")
}

func TestRequestLogger_DefaultsStatusAndRecordsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	h := chimw.RequestID(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	out := buf.String()
	assert.Contains(t, out, `"status":200`)
	assert.Contains(t, out, `"bytes":2`)
	assert.Contains(t, out, `"path":"/"`)
	assert.NotContains(t, out, `"request_id":""`)
}

// syncBuffer lets the server goroutine log while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRequestLogger_WebSocketUpgradeLoggedAs101(t *testing.T) {
	var buf syncBuffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	upgrader := websocket.Upgrader{}
	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conn.Close()
	}))
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	conn.Close()

	assert.Eventually(t, func() bool {
		return strings.Contains(buf.String(), `"status":101`)
	}, 5*time.Second, 10*time.Millisecond)
}

func TestStatusOf_PlainRequestWithoutUpgrade(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ww := chimw.NewWrapResponseWriter(httptest.NewRecorder(), req.ProtoMajor)
	assert.Equal(t, http.StatusOK, statusOf(ww, req))

	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Connection", "keep-alive, Upgrade")
	assert.Equal(t, http.StatusSwitchingProtocols, statusOf(ww, req))
}
