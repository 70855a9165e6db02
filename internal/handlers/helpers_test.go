package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/aaronzipp/who-is-the-wolf/internal/config"
	"github.com/aaronzipp/who-is-the-wolf/internal/game"
	"github.com/aaronzipp/who-is-the-wolf/internal/render"
	"github.com/aaronzipp/who-is-the-wolf/internal/service"
	"github.com/aaronzipp/who-is-the-wolf/internal/sse"
	"github.com/aaronzipp/who-is-the-wolf/internal/store"
)

// zeroRandom always draws the first option, so the creator holds the minority word
type zeroRandom struct{}

func (zeroRandom) IntN(int) int { return 0 }

func testConfig() *config.Config {
	return &config.Config{
		Mode:         "test",
		Secret:       "test-secret",
		PublicURL:    "http://wolf.example",
		AllowOrigins: []string{"http://localhost:5173"},
		ReadLimit:    4096,
		PingPeriod:   time.Minute,
		Store:        config.StoreConfig{Driver: config.DriverMemory},
		Game: config.GameConfig{
			Capacity:      3,
			MinorityCount: 1,
			VotingWindow:  time.Hour,
			SweepInterval: time.Minute,
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newTestRouter(t))
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	n := 0
	engine := &game.Engine{
		Clock:  func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) },
		Random: zeroRandom{},
		Words:  game.DefaultWordBank(),
		NewID: func() string {
			n++
			return fmt.Sprintf("ROOM%02d", n)
		},
		VotingWindow: time.Hour,
	}
	manager := service.NewManager(engine, store.NewMemoryStore(), sse.NewHub(100*time.Millisecond))
	return SetupRouter(testConfig(), manager)
}

// player is one browser: an HTTP client with its own cookie jar
type player struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
}

func newPlayer(t *testing.T, srv *httptest.Server, name string) *player {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	p := &player{t: t, srv: srv, client: &http.Client{Jar: jar, Timeout: 5 * time.Second}}
	if name != "" {
		status, _ := p.do(http.MethodPost, "/api/identity", map[string]string{"name": name})
		require.Equal(t, http.StatusOK, status)
	}
	return p
}

func (p *player) do(method, path string, body any) (int, []byte) {
	p.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(p.t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, p.srv.URL+path, reader)
	require.NoError(p.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := p.client.Do(req)
	require.NoError(p.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(p.t, err)
	return resp.StatusCode, data
}

// view performs a request that must succeed with want and decodes the session view
func (p *player) view(method, path string, body any, want int) render.SessionView {
	p.t.Helper()
	status, data := p.do(method, path, body)
	require.Equal(p.t, want, status, string(data))
	var v render.SessionView
	require.NoError(p.t, json.Unmarshal(data, &v))
	return v
}

// fail performs a request that must be rejected and returns the status and error code
func (p *player) fail(method, path string, body any) (int, string) {
	p.t.Helper()
	status, data := p.do(method, path, body)
	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(p.t, json.Unmarshal(data, &resp), string(data))
	return status, resp.Code
}

func (p *player) me() string {
	p.t.Helper()
	status, data := p.do(http.MethodGet, "/api/me", nil)
	require.Equal(p.t, http.StatusOK, status)
	var resp struct {
		UserID string `json:"userId"`
	}
	require.NoError(p.t, json.Unmarshal(data, &resp))
	return resp.UserID
}
