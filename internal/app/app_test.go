package app

import (
	"context"
	"encoding/json"
	"geo_quiz/internal/config"
	"geo_quiz/internal/util"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(triviaURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, Mode: "test"},
		Trivia: config.TriviaConfig{
			BaseURL:      triviaURL,
			Category:     22,
			Type:         "multiple",
			Timeout:      2 * time.Second,
			DefaultCount: 5,
			MapBatchSize: 5,
			MaxCount:     50,
		},
		Map:     config.MapConfig{Credits: "Made by: test", Seed: 3},
		Storage: config.StorageConfig{Type: util.StorageNone},
		Desktop: config.DesktopConfig{Title: "Geography Quiz Bot"},
	}
}

func startApp(t *testing.T, triviaURL string) *App {
	t.Helper()
	a, err := NewApp(testConfig(triviaURL))
	require.NoError(t, err)
	require.NoError(t, a.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		a.Shutdown(ctx)
	})
	return a
}

func fetch(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestAppServesQuizRoutes(t *testing.T) {
	trivia := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response_code":0,"results":[{"type":"multiple","difficulty":"easy","category":"Geography","question":"Q?","correct_answer":"A","incorrect_answers":["B","C","D"]}]}`))
	}))
	defer trivia.Close()

	a := startApp(t, trivia.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, a.WaitReady(ctx))

	code, body := fetch(t, a.URL()+"/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `id="quiz-container"`)

	code, body = fetch(t, a.URL()+"/get_questions?num=1")
	assert.Equal(t, http.StatusOK, code)
	var qs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &qs))
	assert.Len(t, qs, 1)

	code, body = fetch(t, a.URL()+"/map?score=3&rounds=2")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Rounds Played: 2, Score: 3")
	assert.Equal(t, 1, strings.Count(body, "Hint for Q"))

	code, body = fetch(t, a.URL()+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "trivia_fetch_total")

	code, _ = fetch(t, a.URL()+"/swagger/doc.json")
	assert.Equal(t, http.StatusOK, code)

	code, _ = fetch(t, a.URL()+"/nope")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAppHomeIndependentOfTrivia(t *testing.T) {
	a := startApp(t, "http://127.0.0.1:1/api.php")

	code, body := fetch(t, a.URL()+"/")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `id="start-screen"`)

	code, body = fetch(t, a.URL()+"/get_questions")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", body)
}

func TestWaitReadyTimesOutWithoutServer(t *testing.T) {
	a, err := NewApp(testConfig("http://127.0.0.1:1/api.php"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, a.WaitReady(ctx), util.ErrServiceNotReady)
}

func TestStartFailsOnBusyPort(t *testing.T) {
	a := startApp(t, "http://127.0.0.1:1/api.php")

	cfg := testConfig("http://127.0.0.1:1/api.php")
	cfg.Server.Port = a.listener.Addr().(*net.TCPAddr).Port

	b, err := NewApp(cfg)
	require.NoError(t, err)
	assert.Error(t, b.Start())
}

func TestReloadRunsCallbacks(t *testing.T) {
	a, err := NewApp(testConfig("http://127.0.0.1:1/api.php"))
	require.NoError(t, err)

	var got *config.Config
	a.RegisterConfigCallback(func(c *config.Config) { got = c })

	next := testConfig("http://127.0.0.1:2/api.php")
	a.Reload(next)
	assert.Same(t, next, got)
}

func TestShutdownStopsBackgroundWork(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1/api.php")
	cfg.RateLimit = config.RateLimitConfig{MaxRequests: 10, WindowMinutes: 1}

	a, err := NewApp(cfg)
	require.NoError(t, err)
	require.NoError(t, a.Start())
	require.NoError(t, a.ctx.Err())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, a.Shutdown(ctx))
	assert.ErrorIs(t, a.ctx.Err(), context.Canceled)
}
