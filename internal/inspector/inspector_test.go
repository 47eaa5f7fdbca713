package inspector

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/viewslot/pkg/scenario"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "viewslot_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	srv := NewServer(Options{
		Document: func() string { return `<ul id="slot"><li>a</li></ul>` },
		Gatherer: reg,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Hub().Close()
		ts.Close()
	})
	return srv, ts
}

func get(t *testing.T, url string) (string, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body), resp.Header.Get("Content-Type")
}

func TestRoutes(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		path        string
		contains    string
		contentType string
	}{
		{"/", "viewslot inspector", "text/html"},
		{"/document", `<ul id="slot"><li>a</li></ul>`, "text/html"},
		{"/metrics", "viewslot_test_total 1", "text/plain"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			body, ct := get(t, ts.URL+tt.path)
			if !strings.Contains(body, tt.contains) {
				t.Errorf("body does not contain %q:\n%s", tt.contains, body)
			}
			if !strings.HasPrefix(ct, tt.contentType) {
				t.Errorf("Content-Type = %q, want %s", ct, tt.contentType)
			}
		})
	}
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatal(err)
	}
	return msg
}

func waitForClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for h.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", h.ClientCount(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebSocketReplaysLastSnapshot(t *testing.T) {
	srv, ts := newTestServer(t)
	srv.Hub().Publish(scenario.Snapshot{Step: 1, Op: "add", Children: []string{"a"}})
	srv.Hub().Publish(scenario.Snapshot{Step: 2, Op: "remove"})

	conn := dial(t, ts)
	msg := read(t, conn)
	if msg.Type != MessageSnapshot || msg.Snapshot == nil || msg.Snapshot.Step != 2 {
		t.Fatalf("first message = %+v, want step 2 snapshot", msg)
	}
}

func TestWebSocketBroadcast(t *testing.T) {
	srv, ts := newTestServer(t)
	a, b := dial(t, ts), dial(t, ts)
	waitForClients(t, srv.Hub(), 2)

	srv.Hub().Publish(scenario.Snapshot{Step: 3, Op: "swap", HTML: "<li>z</li>"})
	for _, conn := range []*websocket.Conn{a, b} {
		msg := read(t, conn)
		if msg.Snapshot == nil || msg.Snapshot.HTML != "<li>z</li>" {
			t.Fatalf("message = %+v", msg)
		}
	}

	srv.Hub().Done(errors.New("E133: step failed"))
	if msg := read(t, a); msg.Type != MessageError || msg.Error != "E133: step failed" {
		t.Fatalf("error message = %+v", msg)
	}
	srv.Hub().Done(nil)
	if msg := read(t, a); msg.Type != MessageDone {
		t.Fatalf("done message = %+v", msg)
	}
}

func TestWebSocketDisconnect(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)
	waitForClients(t, srv.Hub(), 1)

	conn.Close()
	waitForClients(t, srv.Hub(), 0)
}
