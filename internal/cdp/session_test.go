package cdp

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergiopachon/birdie/internal/domain"
	"github.com/sergiopachon/birdie/internal/logging"
)

// evalHandler answers one Runtime.evaluate request. It first pushes an
// unrelated protocol event so the client has to skip it.
func evalHandler(t *testing.T, reply string) http.HandlerFunc {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var req map[string]any
		require.NoError(t, conn.ReadJSON(&req))
		assert.Equal(t, "Runtime.evaluate", req["method"])

		event := `{"method":"Page.frameNavigated","params":{}}`
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(event)))
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(reply)))
	}
}

// newDevtoolsServer serves /json/list with the given targets and mounts
// a debugger websocket at /devtools/page/<id> for each of them.
func newDevtoolsServer(t *testing.T, targets []devtoolsTarget, evalReply string) (*httptest.Server, int) {
	t.Helper()
	mux := http.NewServeMux()
	var ts *httptest.Server
	mux.HandleFunc("/json/list", func(w http.ResponseWriter, r *http.Request) {
		out := make([]devtoolsTarget, len(targets))
		copy(out, targets)
		for i := range out {
			if out[i].Type == "page" {
				out[i].WebSocketDebuggerURL = "ws" + strings.TrimPrefix(ts.URL, "http") + "/devtools/page/" + out[i].ID
			}
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(out))
	})
	mux.HandleFunc("/devtools/page/", evalHandler(t, evalReply))
	ts = httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return ts, port
}

// freePort reserves then releases a port so nothing listens on it.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func pageTargets() []devtoolsTarget {
	return []devtoolsTarget{
		{ID: "tab1", Type: "page", Title: "WhatsApp Web", URL: "https://web.whatsapp.com/"},
		{ID: "tab2", Type: "page", Title: "Example News", URL: "https://news.example.com/front"},
		{ID: "bg1", Type: "background_page", Title: "Extension", URL: "chrome-extension://abc"},
	}
}

func TestConnectSuccess(t *testing.T) {
	registry := NewRegistry()
	s := NewSession(registry, logging.Noop())
	_, port := newDevtoolsServer(t, pageTargets(), `{"id":1,"result":{"result":{"type":"string","value":"ok"}}}`)

	res := s.Connect(port)

	require.True(t, res.Success, res.Message)
	assert.Equal(t, 2, res.TabsCount)
	assert.Empty(t, res.ErrorHelpURL)
	assert.Equal(t, StateConnected, s.State())

	// Non-page targets are filtered out of the registry.
	assert.Equal(t, 2, registry.Len())
	tab, ok := registry.Get("tab1")
	require.True(t, ok)
	assert.Equal(t, "web.whatsapp.com", tab.Domain)
	assert.True(t, tab.HasSelector)

	tab, _ = registry.Get("tab2")
	assert.False(t, tab.HasSelector)
}

func TestConnectFailureRecordsHelp(t *testing.T) {
	s := NewSession(NewRegistry(), logging.Noop())
	port := freePort(t)

	res := s.Connect(port)

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, fmt.Sprintf("--remote-debugging-port=%d", port))
	assert.Equal(t, HelpURL, res.ErrorHelpURL)
	assert.Equal(t, StateDisconnected, s.State())

	msg, help := s.LastError()
	assert.NotEmpty(t, msg)
	assert.Equal(t, HelpURL, help)
}

func TestRefreshTabsRequiresConnection(t *testing.T) {
	s := NewSession(NewRegistry(), logging.Noop())
	_, err := s.RefreshTabs()
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestFindTabCaseInsensitive(t *testing.T) {
	s := NewSession(NewRegistry(), logging.Noop())
	_, port := newDevtoolsServer(t, pageTargets(), `{}`)
	require.True(t, s.Connect(port).Success)

	tab, err := s.FindTab("whatsapp")
	require.NoError(t, err)
	assert.Equal(t, "tab1", tab.ID)

	_, err = s.FindTab("nonexistent title")
	assert.ErrorIs(t, err, domain.ErrTabNotFound)
}

func TestFindTabRequiresConnection(t *testing.T) {
	s := NewSession(NewRegistry(), logging.Noop())
	_, err := s.FindTab("anything")
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestExecuteScriptReturnsValue(t *testing.T) {
	s := NewSession(NewRegistry(), logging.Noop())
	_, port := newDevtoolsServer(t, pageTargets(),
		`{"id":1,"result":{"result":{"type":"string","value":"hola mundo"}}}`)
	require.True(t, s.Connect(port).Success)

	res, err := s.ExecuteScript("tab1", "document.title")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "hola mundo", res.Result)
	assert.Empty(t, res.Error)
}

func TestExecuteScriptRemoteException(t *testing.T) {
	s := NewSession(NewRegistry(), logging.Noop())
	reply := `{"id":1,"result":{"result":{"type":"object"},"exceptionDetails":{"text":"Uncaught","exception":{"description":"ReferenceError: foo is not defined"}}}}`
	_, port := newDevtoolsServer(t, pageTargets(), reply)
	require.True(t, s.Connect(port).Success)

	res, err := s.ExecuteScript("tab1", "foo()")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "ReferenceError: foo is not defined", res.Error)
}

func TestExecuteScriptUnknownTab(t *testing.T) {
	s := NewSession(NewRegistry(), logging.Noop())
	_, port := newDevtoolsServer(t, pageTargets(), `{}`)
	require.True(t, s.Connect(port).Success)

	_, err := s.ExecuteScript("missing", "1+1")
	assert.ErrorIs(t, err, domain.ErrTabNotFound)
}

func TestExecuteScriptRequiresConnection(t *testing.T) {
	s := NewSession(NewRegistry(), logging.Noop())
	_, err := s.ExecuteScript("tab1", "1+1")
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestDisconnectClearsDiscovery(t *testing.T) {
	registry := NewRegistry()
	s := NewSession(registry, logging.Noop())
	_, port := newDevtoolsServer(t, pageTargets(), `{}`)
	require.True(t, s.Connect(port).Success)
	require.Equal(t, 2, registry.Len())

	s.Disconnect()

	assert.Equal(t, StateDisconnected, s.State())
	assert.Equal(t, 0, registry.Len())
	_, err := s.ExecuteScript("tab1", "1+1")
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}
