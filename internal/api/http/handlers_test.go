package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/ai"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/apps"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/monitor"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/search"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/session"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/settings"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/shell"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/testutil"
)

type testServer struct {
	router *gin.Engine
	shell  *shell.Shell
}

func newTestServer(t *testing.T, gen ai.Generator) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	metrics := monitoring.NewMetrics()
	assistant := ai.NewAssistant(gen, nil, metrics)
	catalog := apps.Default()
	fs := testutil.SeededFS(t)
	sh := shell.New(shell.Deps{
		Catalog:   catalog,
		FS:        fs,
		Assistant: assistant,
		Metrics:   metrics,
		Now:       testutil.FixedClock(),
		Updater:   settings.UpdaterOptions{CheckDelay: time.Millisecond, InstallTick: time.Millisecond},
	})

	h := NewHandlers(
		sh,
		session.NewManager(sh, nil).WithMetrics(metrics),
		search.NewService(catalog, fs, assistant, nil),
		assistant,
		metrics,
		nil,
	)
	router := gin.New()
	h.Register(router)
	return &testServer{router: router, shell: sh}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRoot(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "online", body["status"])
	assert.Equal(t, Version, body["version"])
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, map[string]interface{}{"available": false}, body["ai"])
}

func TestWindowLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/windows/terminal/launch", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	win := decode(t, w)["window"].(map[string]interface{})
	assert.Equal(t, "terminal", win["id"])
	assert.Equal(t, float64(1), win["z_index"])

	w = srv.do(t, http.MethodPost, "/api/windows/terminal/maximize", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["window"].(map[string]interface{})["is_maximized"])

	w = srv.do(t, http.MethodPost, "/api/windows/terminal/minimize", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["window"].(map[string]interface{})["is_minimized"])

	w = srv.do(t, http.MethodDelete, "/api/windows/terminal", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "terminal", decode(t, w)["closed"])
	assert.Empty(t, srv.shell.Windows())
}

func TestWindowErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"unknown app", http.MethodPost, "/api/windows/doom/launch", http.StatusNotFound},
		{"invalid id", http.MethodPost, "/api/windows/bad.id/launch", http.StatusBadRequest},
		{"focus closed window", http.MethodPost, "/api/windows/files/focus", http.StatusNotFound},
		{"close closed window", http.MethodDelete, "/api/windows/files", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, tt.method, tt.path, nil)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.NotEmpty(t, decode(t, w)["error"])
		})
	}
}

func TestLaunchSettingsTab(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/windows/settings/launch", LaunchRequest{Tab: "System"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, settings.TabSystem, srv.shell.Settings().Tab())

	w = srv.do(t, http.MethodPost, "/api/windows/settings/launch", LaunchRequest{Tab: "Games"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLaunchNotepadWithContent(t *testing.T) {
	srv := newTestServer(t, nil)
	content := "draft"

	w := srv.do(t, http.MethodPost, "/api/windows/notepad/launch", LaunchRequest{FileContent: &content})
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/api/notepad", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "draft", decode(t, w)["content"])

	w = srv.do(t, http.MethodPut, "/api/notepad", ContentRequest{Content: "edited"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "edited", decode(t, w)["content"])
}

func TestPointerDrag(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodPost, "/api/windows/files/launch", nil)
	start, _ := srv.shell.Window(apps.Files)

	w := srv.do(t, http.MethodPost, "/api/pointer/down", PointerDownRequest{AppID: "files", X: 100, Y: 70, Target: "titlebar"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(t, http.MethodPost, "/api/pointer/move", PointerMoveRequest{X: 150, Y: 90})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["moved"])

	srv.do(t, http.MethodPost, "/api/pointer/up", nil)
	w = srv.do(t, http.MethodPost, "/api/pointer/move", PointerMoveRequest{X: 400, Y: 400})
	assert.Equal(t, false, decode(t, w)["moved"])

	moved, _ := srv.shell.Window(apps.Files)
	assert.Equal(t, start.X+50, moved.X)
	assert.Equal(t, start.Y+20, moved.Y)

	w = srv.do(t, http.MethodPost, "/api/pointer/down", PointerDownRequest{AppID: "music", Target: "body"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestKeysAndOverlays(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/keys", KeyRequest{Code: "Space", Ctrl: true})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["consumed"])
	assert.Equal(t, true, srv.shell.Overlays().Search)

	w = srv.do(t, http.MethodPost, "/api/overlays/widgets/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["open"])

	w = srv.do(t, http.MethodPost, "/api/overlays/dashboard/toggle", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPut, "/api/menu", MenuRequest{Name: "File"})
	assert.Equal(t, "File", decode(t, w)["active_menu"])

	w = srv.do(t, http.MethodPost, "/api/overlays/dismiss", nil)
	require.Equal(t, http.StatusOK, w.Code)
	overlays := srv.shell.Overlays()
	assert.False(t, overlays.Widgets)
	assert.Empty(t, overlays.ActiveMenu)

	w = srv.do(t, http.MethodPost, "/api/keys", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVFSEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/vfs/nodes", CreateNodeRequest{
		Parent: "/home/user/Documents", Type: "file", Name: "note.txt", Content: "hi",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/home/user/Documents/note.txt", decode(t, w)["path"])

	w = srv.do(t, http.MethodGet, "/api/vfs/cat?path=/home/user/Documents/note.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi", decode(t, w)["content"])

	w = srv.do(t, http.MethodGet, "/api/vfs/ls?path=/home/user/Documents", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "welcome.txt")

	w = srv.do(t, http.MethodGet, "/api/vfs/find?pattern=**/*.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["matches"], 2)

	w = srv.do(t, http.MethodDelete, "/api/vfs/nodes?path=/home/user/Documents/note.txt", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/api/vfs/tree", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dir", decode(t, w)["type"])
}

func TestListDirMissingOrFileIsEmpty(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, p := range []string{"/home/user/Downloads", "/etc/hostname"} {
		t.Run(p, func(t *testing.T) {
			w := srv.do(t, http.MethodGet, "/api/vfs/ls?path="+p, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			body := decode(t, w)
			assert.Equal(t, p, body["path"])
			assert.Empty(t, body["entries"])
		})
	}
}

func TestVFSErrors(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"stat missing", http.MethodGet, "/api/vfs/stat?path=/nope", nil, http.StatusNotFound},
		{"cat a directory", http.MethodGet, "/api/vfs/cat?path=/etc", nil, http.StatusBadRequest},
		{"cat without path", http.MethodGet, "/api/vfs/cat", nil, http.StatusBadRequest},
		{"bad pattern", http.MethodGet, "/api/vfs/find?pattern=%5B", nil, http.StatusBadRequest},
		{"unknown type", http.MethodPost, "/api/vfs/nodes", CreateNodeRequest{Parent: "/", Type: "link", Name: "x"}, http.StatusBadRequest},
		{"create under file", http.MethodPost, "/api/vfs/nodes", CreateNodeRequest{Parent: "/etc/motd", Type: "dir", Name: "x"}, http.StatusBadRequest},
		{"remove missing", http.MethodDelete, "/api/vfs/nodes?path=/nope", nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestTerminalExec(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/terminal/exec", ExecRequest{Input: "pwd"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	srv.do(t, http.MethodPost, "/api/windows/terminal/launch", nil)
	w = srv.do(t, http.MethodPost, "/api/terminal/exec", ExecRequest{Input: "mkdir Projects"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(t, http.MethodGet, "/api/vfs/stat?path=/home/user/Projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dir", decode(t, w)["type"])

	w = srv.do(t, http.MethodGet, "/api/terminal", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/home/user", decode(t, w)["cwd"])
}

func TestFilesEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodGet, "/api/files", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	srv.do(t, http.MethodPost, "/api/windows/files/launch", nil)
	w = srv.do(t, http.MethodPost, "/api/files/navigate", PathRequest{Path: "/home/user/Documents"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/home/user/Documents", decode(t, w)["path"])

	w = srv.do(t, http.MethodGet, "/api/files/search?pattern=WEL", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["entries"], 1)

	w = srv.do(t, http.MethodPost, "/api/files/open", NameRequest{Name: "welcome.txt"})
	require.Equal(t, http.StatusOK, w.Code)
	action := decode(t, w)["action"].(map[string]interface{})
	assert.Equal(t, "launch", action["kind"])
	assert.Equal(t, "notepad", action["app_id"])

	w = srv.do(t, http.MethodPost, "/api/files/up", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/home/user", decode(t, w)["path"])
}

func TestOpenPath(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/desktop/open", PathRequest{Path: "/home/user/Desktop/Atlas Reign.lnk"})
	require.Equal(t, http.StatusOK, w.Code)
	_, ok := srv.shell.Window(apps.Game)
	assert.True(t, ok)

	w = srv.do(t, http.MethodPost, "/api/desktop/open", PathRequest{Path: "/missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPut, "/api/settings/accent", AccentRequest{Accent: "rose"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, settings.AccentRose, srv.shell.Snapshot().Appearance.Accent)

	w = srv.do(t, http.MethodPut, "/api/settings/accent", AccentRequest{Accent: "neon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPut, "/api/settings/tab", TabRequest{Tab: "Privacy"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Privacy", decode(t, w)["tab"])

	w = srv.do(t, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rose", decode(t, w)["accent"])
}

func TestUpdateEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/settings/update/check", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	srv.do(t, http.MethodPost, "/api/windows/settings/launch", nil)
	w = srv.do(t, http.MethodPost, "/api/settings/update/install", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = srv.do(t, http.MethodPost, "/api/settings/update/check", nil)
	require.Equal(t, http.StatusAccepted, w.Code)

	view, _ := srv.shell.SettingsView()
	assert.Eventually(t, func() bool {
		return view.Updater().Status().Phase == settings.UpdateAvailable
	}, time.Second, 5*time.Millisecond)

	w = srv.do(t, http.MethodPost, "/api/settings/update/install", nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Eventually(t, func() bool {
		return view.Updater().Status().Phase == settings.UpdateCompleted
	}, time.Second, 5*time.Millisecond)
}

func TestAccountEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/accounts", settings.UserInput{Name: "Ada Lovelace", Email: "ada@chimera.os"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	user := decode(t, w)
	assert.Equal(t, "AL", user["initials"])
	id := user["id"].(string)

	w = srv.do(t, http.MethodPut, "/api/accounts/"+id, settings.UserInput{Name: "Ada King"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada King", decode(t, w)["name"])

	w = srv.do(t, http.MethodPost, "/api/accounts", settings.UserInput{Name: "Bob", Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/accounts/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["deleted"])
	assert.Len(t, srv.shell.Settings().Users(), 2)

	w = srv.do(t, http.MethodPost, "/api/accounts/"+id+"/switch", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, srv.shell.Settings().CurrentUser().ID)

	w = srv.do(t, http.MethodDelete, "/api/accounts/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["deleted"])

	w = srv.do(t, http.MethodPost, "/api/accounts/404/switch", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodGet, "/api/accounts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["users"], 1)
}

func TestChatEndpoints(t *testing.T) {
	srv := newTestServer(t, testutil.NewMockGenerator(t, "Hi from the model"))

	w := srv.do(t, http.MethodPost, "/api/chat", ChatRequest{Message: "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	srv.do(t, http.MethodPost, "/api/windows/ai/launch", nil)
	w = srv.do(t, http.MethodPost, "/api/chat", ChatRequest{Message: "hello"})
	require.Equal(t, http.StatusAccepted, w.Code)

	assert.Eventually(t, func() bool {
		w := srv.do(t, http.MethodGet, "/api/chat", nil)
		return strings.Contains(w.Body.String(), "Hi from the model")
	}, time.Second, 10*time.Millisecond)
}

func TestAssistantEndpoints(t *testing.T) {
	srv := newTestServer(t, testutil.NewMockGenerator(t, "<b>Forty-two</b>"))

	w := srv.do(t, http.MethodPost, "/api/ai/ask", AskRequest{Prompt: "meaning of life?"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Forty-two", decode(t, w)["reply"])

	w = srv.do(t, http.MethodPost, "/api/ai/ask", AskRequest{Prompt: "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/api/browser/simulate", SimulateRequest{Query: "example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ai.NotFoundPage().Title, decode(t, w)["title"])

	w = srv.do(t, http.MethodGet, "/api/social/reddit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Reddit", decode(t, w)["app"])

	w = srv.do(t, http.MethodGet, "/api/social/terminal", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearch(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodGet, "/api/search?q=term", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "term", body["query"])
	assert.NotEmpty(t, body["apps"])
}

func TestSessionEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodPost, "/api/windows/terminal/launch", nil)
	srv.do(t, http.MethodPost, "/api/windows/files/launch", nil)

	w := srv.do(t, http.MethodPost, "/api/sessions", SaveSessionRequest{Name: "work"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["id"].(string)

	srv.do(t, http.MethodDelete, "/api/windows/terminal", nil)
	srv.do(t, http.MethodPost, "/api/vfs/nodes", CreateNodeRequest{Parent: "/", Type: "dir", Name: "scratch"})

	w = srv.do(t, http.MethodPost, "/api/sessions/"+id+"/restore", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, srv.shell.Windows(), 2)
	assert.False(t, srv.shell.FS().Exists("/scratch"))

	w = srv.do(t, http.MethodGet, "/api/sessions", nil)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = srv.do(t, http.MethodGet, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodDelete, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = srv.do(t, http.MethodGet, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = srv.do(t, http.MethodPost, "/api/sessions", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIngestLogs(t *testing.T) {
	srv := newTestServer(t, nil)

	w := srv.do(t, http.MethodPost, "/api/logs", UILogBatch{
		Source:  "ui",
		Entries: []UILogEntry{{ID: "1", Level: "warn", Message: "slow frame", Context: map[string]interface{}{"ms": 48.0}}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["entries_received"])

	w = srv.do(t, http.MethodPost, "/api/logs", UILogBatch{Source: "kernel", Entries: []UILogEntry{{}}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = srv.do(t, http.MethodPost, "/api/logs", UILogBatch{Source: "ui"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMonitorAndMetrics(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, http.MethodPost, "/api/windows/monitor/launch", nil)

	w := srv.do(t, http.MethodGet, "/api/monitor", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["cpu"], monitor.HistorySize)

	w = srv.do(t, http.MethodGet, "/api/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["windows"].(map[string]interface{})["total"])
	assert.NotNil(t, body["server"])
}
