package cdp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sergiopachon/birdie/internal/domain"
	"github.com/sergiopachon/birdie/internal/logging"
)

// ConnState is the connection lifecycle state.
type ConnState string

const (
	StateDisconnected ConnState = "disconnected"
	StateConnecting   ConnState = "connecting"
	StateConnected    ConnState = "connected"
)

// HelpURL points users at the browser enablement instructions shown
// alongside connection errors.
const HelpURL = "https://github.com/SergioPachon/Birdie/wiki/Chrome-DevTools-Setup"

// ConnectionResult reports the outcome of a connect attempt.
type ConnectionResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	TabsCount    int    `json:"tabs_count"`
	ErrorHelpURL string `json:"error_help_url,omitempty"`
}

// ScriptResult reports the outcome of a remote script evaluation. A
// remote exception is propagated verbatim in Error.
type ScriptResult struct {
	Success bool   `json:"success"`
	Result  string `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// devtoolsTarget is one entry of the DevTools /json/list endpoint.
type devtoolsTarget struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Title                string `json:"title"`
	URL                  string `json:"url"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// Session owns the connect/disconnect lifecycle against a local
// remote-debugging endpoint. Only one connection is tracked at a time;
// a new connect attempt supersedes any prior pending one.
type Session struct {
	registry *Registry
	log      logging.Logger
	client   *http.Client
	dialer   *websocket.Dialer

	mu      sync.Mutex
	state   ConnState
	port    int
	lastErr string
	helpURL string
	attempt uint64
	// wsURLs maps tab id to its debugger websocket endpoint. Replaced
	// together with the registry on every discovery.
	wsURLs map[string]string
}

// NewSession creates a disconnected session over the given registry.
func NewSession(registry *Registry, log logging.Logger) *Session {
	return &Session{
		registry: registry,
		log:      log,
		client:   &http.Client{Timeout: 5 * time.Second},
		dialer:   websocket.DefaultDialer,
		state:    StateDisconnected,
		wsURLs:   make(map[string]string),
	}
}

// Connect attempts to reach the DevTools endpoint on the given port.
// On success it transitions to Connected and refreshes the tab
// registry. On failure it stays Disconnected and records the error
// message plus a help link. The failure is a recorded state, not a
// returned error.
func (s *Session) Connect(port int) ConnectionResult {
	s.mu.Lock()
	s.attempt++
	mine := s.attempt
	s.state = StateConnecting
	s.port = port
	s.mu.Unlock()

	targets, err := s.fetchTargets(port)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempt != mine {
		// A newer connect superseded this one; discard the outcome.
		return ConnectionResult{Success: false, Message: "superseded by a newer connect attempt"}
	}
	if err != nil {
		s.state = StateDisconnected
		s.lastErr = fmt.Sprintf("CDP connection requires Chrome --remote-debugging-port=%d: %v", port, err)
		s.helpURL = HelpURL
		s.log.Warn("cdp connect failed", "port", port, "error", err)
		return ConnectionResult{Success: false, Message: s.lastErr, ErrorHelpURL: s.helpURL}
	}

	tabs := s.applyTargetsLocked(targets)
	s.state = StateConnected
	s.lastErr = ""
	s.helpURL = ""
	s.log.Info("cdp connected", "port", port, "tabs", len(tabs))
	return ConnectionResult{
		Success:   true,
		Message:   fmt.Sprintf("Connected to Chrome on port %d", port),
		TabsCount: len(tabs),
	}
}

// Disconnect drops the connection and clears discovery state.
func (s *Session) Disconnect() {
	s.mu.Lock()
	s.attempt++
	s.state = StateDisconnected
	s.wsURLs = make(map[string]string)
	s.mu.Unlock()
	s.registry.ReplaceAll(nil)
}

// RefreshTabs performs tab discovery and replaces the registry
// wholesale. It surfaces an error rather than silently no-op when the
// session is not connected.
func (s *Session) RefreshTabs() ([]domain.Tab, error) {
	s.mu.Lock()
	if s.state != StateConnected {
		s.mu.Unlock()
		return nil, domain.ErrNotConnected
	}
	port := s.port
	s.mu.Unlock()

	targets, err := s.fetchTargets(port)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, fmt.Errorf("tab discovery failed: %w", err)
	}

	s.mu.Lock()
	tabs := s.applyTargetsLocked(targets)
	s.mu.Unlock()
	return tabs, nil
}

// FindTab returns the first tab whose title contains the given
// substring, matched case-insensitively.
func (s *Session) FindTab(titleContains string) (domain.Tab, error) {
	s.mu.Lock()
	connected := s.state == StateConnected
	s.mu.Unlock()
	if !connected {
		return domain.Tab{}, domain.ErrNotConnected
	}

	needle := strings.ToLower(titleContains)
	for _, t := range s.registry.All() {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			return t, nil
		}
	}
	return domain.Tab{}, domain.ErrTabNotFound
}

// ExecuteScript evaluates a script string in the given tab's execution
// context. Transport failures are returned as an error; a remote
// exception is reported in the result with its message verbatim.
func (s *Session) ExecuteScript(tabID, script string) (ScriptResult, error) {
	s.mu.Lock()
	if s.state != StateConnected {
		s.mu.Unlock()
		return ScriptResult{}, domain.ErrNotConnected
	}
	wsURL, ok := s.wsURLs[tabID]
	s.mu.Unlock()
	if !ok {
		return ScriptResult{}, fmt.Errorf("%w: %s", domain.ErrTabNotFound, tabID)
	}

	value, remoteErr, err := s.evaluate(wsURL, script)
	if err != nil {
		return ScriptResult{}, fmt.Errorf("script execution on tab %s: %w", tabID, err)
	}
	if remoteErr != "" {
		return ScriptResult{Success: false, Error: remoteErr}, nil
	}
	return ScriptResult{Success: true, Result: value}, nil
}

// State returns the current connection state.
func (s *Session) State() ConnState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the recorded error message and help link, if any.
func (s *Session) LastError() (msg, helpURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr, s.helpURL
}

// fetchTargets lists debuggable targets from the DevTools HTTP API.
func (s *Session) fetchTargets(port int) ([]devtoolsTarget, error) {
	resp, err := s.client.Get(fmt.Sprintf("http://127.0.0.1:%d/json/list", port))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("devtools endpoint returned %s", resp.Status)
	}
	var targets []devtoolsTarget
	if err := json.NewDecoder(resp.Body).Decode(&targets); err != nil {
		return nil, fmt.Errorf("decode target list: %w", err)
	}
	return targets, nil
}

// applyTargetsLocked converts page targets to tabs and replaces the
// registry and websocket map. Caller holds s.mu.
func (s *Session) applyTargetsLocked(targets []devtoolsTarget) []domain.Tab {
	tabs := make([]domain.Tab, 0, len(targets))
	wsURLs := make(map[string]string, len(targets))
	for _, t := range targets {
		if t.Type != "page" {
			continue
		}
		host := domain.ExtractDomain(t.URL)
		tabs = append(tabs, domain.Tab{
			ID:          t.ID,
			Title:       t.Title,
			URL:         t.URL,
			Domain:      host,
			HasSelector: HasSelectorFor(host),
		})
		if t.WebSocketDebuggerURL != "" {
			wsURLs[t.ID] = t.WebSocketDebuggerURL
		}
	}
	s.wsURLs = wsURLs
	s.registry.ReplaceAll(tabs)
	return tabs
}

// evaluateRequest is the Runtime.evaluate wire message.
type evaluateRequest struct {
	ID     int            `json:"id"`
	Method string         `json:"method"`
	Params evaluateParams `json:"params"`
}

type evaluateParams struct {
	Expression    string `json:"expression"`
	ReturnByValue bool   `json:"returnByValue"`
}

// evaluateResponse is the subset of the Runtime.evaluate reply we use.
type evaluateResponse struct {
	ID     int `json:"id"`
	Result struct {
		Result struct {
			Type  string          `json:"type"`
			Value json.RawMessage `json:"value"`
		} `json:"result"`
		ExceptionDetails *struct {
			Text      string `json:"text"`
			Exception *struct {
				Description string `json:"description"`
			} `json:"exception"`
		} `json:"exceptionDetails"`
	} `json:"result"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// evaluate runs one Runtime.evaluate round trip over the tab's
// debugger websocket.
func (s *Session) evaluate(wsURL, script string) (value, remoteErr string, err error) {
	conn, _, err := s.dialer.Dial(wsURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("dial debugger websocket: %w", err)
	}
	defer conn.Close()

	const evalID = 1
	req := evaluateRequest{
		ID:     evalID,
		Method: "Runtime.evaluate",
		Params: evaluateParams{Expression: script, ReturnByValue: true},
	}
	if err := conn.WriteJSON(req); err != nil {
		return "", "", fmt.Errorf("send evaluate request: %w", err)
	}

	deadline := time.Now().Add(10 * time.Second)
	_ = conn.SetReadDeadline(deadline)
	for {
		var resp evaluateResponse
		if err := conn.ReadJSON(&resp); err != nil {
			return "", "", fmt.Errorf("read evaluate response: %w", err)
		}
		// Protocol events share the channel; only the matching reply
		// carries our id.
		if resp.ID != evalID {
			continue
		}
		if resp.Error != nil {
			return "", resp.Error.Message, nil
		}
		if details := resp.Result.ExceptionDetails; details != nil {
			if details.Exception != nil && details.Exception.Description != "" {
				return "", details.Exception.Description, nil
			}
			return "", details.Text, nil
		}
		return decodeValue(resp.Result.Result.Value), "", nil
	}
}

// decodeValue renders the returned value as a string. Strings come back
// JSON-quoted; anything else keeps its JSON rendering.
func decodeValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return string(raw)
}
