package cloud

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDropboxUpload(t *testing.T) {
	var gotBody []byte
	var gotArg uploadArg
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/2/files/upload", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.Unmarshal([]byte(r.Header.Get("Dropbox-API-Arg")), &gotArg))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	localPath := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(localPath, []byte(`[{"id":1}]`), 0600))

	client := NewDropboxClient("test-token", testLogger())
	client.SetBaseURL(srv.URL)

	err := client.Upload(context.Background(), localPath, "/notes.json")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "/notes.json", gotArg.Path)
	assert.Equal(t, "overwrite", gotArg.Mode)
	assert.Equal(t, `[{"id":1}]`, string(gotBody))
}

func TestDropboxUploadMissingFile(t *testing.T) {
	client := NewDropboxClient("test-token", testLogger())

	err := client.Upload(context.Background(), filepath.Join(t.TempDir(), "нет.json"), "/notes.json")
	assert.Error(t, err)
}

func TestDropboxUploadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	localPath := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(localPath, []byte(`[]`), 0600))

	client := NewDropboxClient("bad-token", testLogger())
	client.SetBaseURL(srv.URL)

	err := client.Upload(context.Background(), localPath, "/notes.json")
	assert.Error(t, err)
}

func TestDropboxDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/2/files/download", r.URL.Path)

		var arg downloadArg
		require.NoError(t, json.Unmarshal([]byte(r.Header.Get("Dropbox-API-Arg")), &arg))
		assert.Equal(t, "/notes.json", arg.Path)

		_, _ = w.Write([]byte(`[{"id":2,"title":"из облака"}]`))
	}))
	defer srv.Close()

	localPath := filepath.Join(t.TempDir(), "notes.json")

	client := NewDropboxClient("test-token", testLogger())
	client.SetBaseURL(srv.URL)

	err := client.Download(context.Background(), "/notes.json", localPath)
	require.NoError(t, err)

	data, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":2,"title":"из облака"}]`, string(data))
}
