package broadcast

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readText(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	typ, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if typ != websocket.TextMessage {
		t.Errorf("message type = %d, want text", typ)
	}
	return string(data)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub("software_oracle_ws connected", nil)
	server := httptest.NewServer(NewServer(hub, DefaultServerConfig(), nil))
	t.Cleanup(func() {
		hub.CloseAll()
		server.Close()
	})
	return hub, server
}

func TestServer_GreetingAndBroadcast(t *testing.T) {
	hub, server := newTestServer(t)
	conn := dial(t, server)

	var g Greeting
	if err := json.Unmarshal([]byte(readText(t, conn)), &g); err != nil {
		t.Fatalf("unmarshal greeting: %v", err)
	}
	if g.Info != "software_oracle_ws connected" || g.TS == 0 {
		t.Errorf("greeting = %+v", g)
	}

	waitFor(t, "subscriber registered", func() bool { return hub.Count() == 1 })

	payload := `{"prob_up":52.5,"prob_down":47.5,"ts":1}`
	if delivered := hub.Publish([]byte(payload)); delivered != 1 {
		t.Errorf("Publish() delivered = %d, want 1", delivered)
	}
	if got := readText(t, conn); got != payload {
		t.Errorf("received %s, want %s", got, payload)
	}
}

func TestServer_LateJoinerGetsLastPayload(t *testing.T) {
	hub, server := newTestServer(t)
	hub.Publish([]byte(`{"prob_up":61,"prob_down":39,"ts":9}`))

	conn := dial(t, server)
	readText(t, conn) // greeting

	if got := readText(t, conn); got != `{"prob_up":61,"prob_down":39,"ts":9}` {
		t.Errorf("received %s, want last payload", got)
	}
}

func TestServer_InboundMessagesIgnored(t *testing.T) {
	hub, server := newTestServer(t)
	conn := dial(t, server)
	readText(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"cmd":"subscribe"}`)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	waitFor(t, "subscriber registered", func() bool { return hub.Count() == 1 })
	hub.Publish([]byte(`after`))
	if got := readText(t, conn); got != "after" {
		t.Errorf("received %q, want %q", got, "after")
	}
}

func TestServer_DisconnectLeavesHub(t *testing.T) {
	hub, server := newTestServer(t)

	conn := dial(t, server)
	readText(t, conn)
	waitFor(t, "subscriber registered", func() bool { return hub.Count() == 1 })

	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	conn.Close()

	waitFor(t, "subscriber removed", func() bool { return hub.Count() == 0 })
}

func TestServer_FanOutToMany(t *testing.T) {
	hub, server := newTestServer(t)

	conns := make([]*websocket.Conn, 3)
	for i := range conns {
		conns[i] = dial(t, server)
		readText(t, conns[i])
	}
	waitFor(t, "subscribers registered", func() bool { return hub.Count() == 3 })

	// One subscriber goes away without the hub noticing yet.
	conns[1].Close()

	hub.Publish([]byte(`fanout`))
	for _, i := range []int{0, 2} {
		if got := readText(t, conns[i]); got != "fanout" {
			t.Errorf("conn %d received %q, want %q", i, got, "fanout")
		}
	}
}

func TestServer_RejectsPlainHTTP(t *testing.T) {
	_, server := newTestServer(t)

	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}
