//go:build unit

package github_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/ghpush/internal/domain/entities"
	ghRepo "github.com/rios0rios0/ghpush/internal/infrastructure/repositories/github"
	"github.com/rios0rios0/ghpush/test/domain/entitybuilders"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   map[string]any
}

func newServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.EscapedPath(),
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			assert.NoError(t, json.Unmarshal(data, &rec.Body))
		}
		requests = append(requests, rec)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestContentsRepositoryPutFile(t *testing.T) {
	t.Parallel()

	target := entitybuilders.NewTargetBuilder().WithOwner("octocat").WithName("hello-world").BuildTarget()

	t.Run("should send the contents payload with bearer auth", func(t *testing.T) {
		t.Parallel()

		// given
		server, requests := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"content":{"sha":"new"}}`))
		})
		repo, err := ghRepo.NewContentsRepository("secret-token", server.URL)
		require.NoError(t, err)
		file := entities.RemoteFile{
			Path:    "docs/intro.md",
			Message: "Update docs/intro.md",
			Content: "aGVsbG8=",
			Branch:  "main",
		}

		// when
		status, putErr := repo.PutFile(context.Background(), target, file)

		// then
		require.NoError(t, putErr)
		assert.Equal(t, http.StatusCreated, status)
		require.Len(t, *requests, 1)
		req := (*requests)[0]
		assert.Equal(t, http.MethodPut, req.Method)
		assert.Equal(t, "/repos/octocat/hello-world/contents/docs/intro.md", req.Path)
		assert.Equal(t, "Bearer secret-token", req.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github.v3+json", req.Header.Get("Accept"))
		assert.Equal(t, map[string]any{
			"message": "Update docs/intro.md",
			"content": "aGVsbG8=",
			"branch":  "main",
		}, req.Body)
	})

	t.Run("should include the sha when updating", func(t *testing.T) {
		t.Parallel()

		// given
		server, requests := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{}`))
		})
		repo, err := ghRepo.NewContentsRepository("t", server.URL)
		require.NoError(t, err)

		// when
		status, putErr := repo.PutFile(context.Background(), target, entities.RemoteFile{
			Path: "a.txt", Message: "Update a.txt", Content: "YQ==", Branch: "main", SHA: "abc123",
		})

		// then
		require.NoError(t, putErr)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "abc123", (*requests)[0].Body["sha"])
	})

	t.Run("should report 422 as a status, not an error", func(t *testing.T) {
		t.Parallel()

		// given
		server, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"Invalid request.\n\n\"sha\" wasn't supplied."}`))
		})
		repo, err := ghRepo.NewContentsRepository("t", server.URL)
		require.NoError(t, err)

		// when
		status, putErr := repo.PutFile(context.Background(), target, entities.RemoteFile{Path: "a.txt"})

		// then
		require.NoError(t, putErr)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
	})

	t.Run("should escape special characters in path segments", func(t *testing.T) {
		t.Parallel()

		// given
		server, requests := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
		repo, err := ghRepo.NewContentsRepository("t", server.URL)
		require.NoError(t, err)

		// when
		_, putErr := repo.PutFile(context.Background(), target, entities.RemoteFile{Path: "notes/a b#1.txt"})

		// then
		require.NoError(t, putErr)
		assert.Equal(t, "/repos/octocat/hello-world/contents/notes/a%20b%231.txt", (*requests)[0].Path)
	})

	t.Run("should return transport failures as errors", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.NotFoundHandler())
		serverURL := server.URL
		server.Close()
		repo, err := ghRepo.NewContentsRepository("t", serverURL)
		require.NoError(t, err)

		// when
		status, putErr := repo.PutFile(context.Background(), target, entities.RemoteFile{Path: "a.txt"})

		// then
		require.Error(t, putErr)
		assert.Zero(t, status)
	})
}

func TestContentsRepositoryGetFileSHA(t *testing.T) {
	t.Parallel()

	target := entitybuilders.NewTargetBuilder().WithBranch("develop").BuildTarget()

	t.Run("should return the blob sha of the file on the branch", func(t *testing.T) {
		t.Parallel()

		// given
		server, requests := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"type":"file","path":"a.txt","sha":"3d21ec53a331a6f037a91c368710b99387d012c1"}`))
		})
		repo, err := ghRepo.NewContentsRepository("secret-token", server.URL)
		require.NoError(t, err)

		// when
		sha, status, getErr := repo.GetFileSHA(context.Background(), target, "a.txt")

		// then
		require.NoError(t, getErr)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "3d21ec53a331a6f037a91c368710b99387d012c1", sha)
		req := (*requests)[0]
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/repos/octocat/hello-world/contents/a.txt", req.Path)
		assert.Equal(t, "ref=develop", req.Query)
		assert.Equal(t, "Bearer secret-token", req.Header.Get("Authorization"))
		assert.Nil(t, req.Body)
	})

	t.Run("should report a missing file as a status", func(t *testing.T) {
		t.Parallel()

		// given
		server, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		})
		repo, err := ghRepo.NewContentsRepository("t", server.URL)
		require.NoError(t, err)

		// when
		sha, status, getErr := repo.GetFileSHA(context.Background(), target, "a.txt")

		// then
		require.NoError(t, getErr)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Empty(t, sha)
	})

	t.Run("should fail when the response is not a file object", func(t *testing.T) {
		t.Parallel()

		// given
		server, _ := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"type":"file","sha":"x"}]`))
		})
		repo, err := ghRepo.NewContentsRepository("t", server.URL)
		require.NoError(t, err)

		// when
		_, _, getErr := repo.GetFileSHA(context.Background(), target, "dir")

		// then
		require.Error(t, getErr)
		assert.Contains(t, getErr.Error(), "failed to decode response")
	})
}

func TestNewContentsRepository(t *testing.T) {
	t.Parallel()

	t.Run("should reject an unparsable API URL", func(t *testing.T) {
		t.Parallel()

		// given
		apiURL := "://bad"

		// when
		repo, err := ghRepo.NewContentsRepository("t", apiURL)

		// then
		require.Error(t, err)
		assert.Nil(t, repo)
	})
}
