package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newHNServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[11,12]`)
	})
	mux.HandleFunc("/item/11.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":11,"title":"Postgres tips","score":30,"url":"https://pg.example"}`)
	})
	mux.HandleFunc("/item/12.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"id":12,"title":"Rust vs Go","score":300}`)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func writeConfig(t *testing.T, apiURL string) string {
	t.Helper()
	body := fmt.Sprintf(`
logging:
  level: error
source:
  kind: api
  apiBaseUrl: %s
sentiment:
  provider: none
refresh:
  storyCount: 5
`, apiURL)
	path := filepath.Join(t.TempDir(), "hackernews.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRefreshPrintsRankedTable(t *testing.T) {
	t.Setenv("HACKERNEWS_CONFIG", "")
	ts := newHNServer(t)

	out, err := run(t, "refresh", "--config", writeConfig(t, ts.URL), "--color", "never")
	require.NoError(t, err)
	require.Less(t, strings.Index(out, "Rust vs Go"), strings.Index(out, "Postgres tips"))
	require.Contains(t, out, "https://news.ycombinator.com/item?id=12")
	require.Contains(t, out, "completed: 2 inserted")
}

func TestRefreshWatchPrintsInsertions(t *testing.T) {
	t.Setenv("HACKERNEWS_CONFIG", "")
	ts := newHNServer(t)

	out, err := run(t, "refresh", "--watch", "--config", writeConfig(t, ts.URL), "--color", "never", "-n", "1")
	require.NoError(t, err)
	require.Contains(t, out, "feed cleared")
	require.Equal(t, 1, strings.Count(out, "+ [1]"))
	require.Contains(t, out, "completed: 1 inserted")
}

func TestRefreshRejectsInvalidFlags(t *testing.T) {
	t.Setenv("HACKERNEWS_CONFIG", "")
	ts := newHNServer(t)
	path := writeConfig(t, ts.URL)

	_, err := run(t, "refresh", "--config", path, "--count", "0")
	require.ErrorContains(t, err, "storyCount")

	_, err = run(t, "refresh", "--config", path, "--source", "fax")
	require.ErrorContains(t, err, "source.kind")

	_, err = run(t, "refresh", "--config", path, "--color", "sometimes")
	require.ErrorContains(t, err, "invalid color mode")
}

func TestMissingConfigFails(t *testing.T) {
	t.Setenv("HACKERNEWS_CONFIG", "")

	_, err := run(t, "refresh", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "loading config")
}

func TestRefreshFailurePrintsPartialFeed(t *testing.T) {
	t.Setenv("HACKERNEWS_CONFIG", "")

	served := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("/topstories.json", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[11,13]`)
	})
	mux.HandleFunc("/item/11.json", func(w http.ResponseWriter, _ *http.Request) {
		defer close(served)
		fmt.Fprint(w, `{"id":11,"title":"Postgres tips","score":30}`)
	})
	mux.HandleFunc("/item/13.json", func(w http.ResponseWriter, _ *http.Request) {
		<-served
		time.Sleep(100 * time.Millisecond)
		http.Error(w, "gone", http.StatusInternalServerError)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	out, err := run(t, "refresh", "--config", writeConfig(t, ts.URL), "--color", "never")
	require.ErrorContains(t, err, "500")
	require.Contains(t, out, "Postgres tips")
	require.NotContains(t, out, "completed")
}
