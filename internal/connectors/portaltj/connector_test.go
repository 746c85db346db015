package portaltj

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atrium-legal/jurisync-cli/internal/core/domain"
	"github.com/atrium-legal/jurisync-cli/internal/core/ports/driven"
)

func TestSearchDecodesRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Maria Silva", r.URL.Query().Get("q"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"numero":"0001234-56.2023.8.26.0100","classe":"Procedimento Comum","juiz":"Dr. Souza"}]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: "tok-1"})
	defer c.Close()

	raws, err := c.Search(context.Background(), "Maria Silva", driven.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, raws, 1)

	assert.Equal(t, domain.SourcePortalTJ, raws[0].SourceSystem)
	require.NotNil(t, raws[0].Portal)
	assert.Equal(t, "0001234-56.2023.8.26.0100", raws[0].Portal.Numero)
	assert.Equal(t, "Dr. Souza", raws[0].Portal.Juiz)
}

func TestSearchPassesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	raws, err := c.Search(context.Background(), "tjsp", driven.SearchOptions{Page: 3, PageSize: 50})
	require.NoError(t, err)
	assert.Empty(t, raws)
}

func TestSearchClassifiesFailures(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, domain.ErrRateLimited},
		{http.StatusForbidden, domain.ErrPermanent},
		{http.StatusBadGateway, domain.ErrTransient},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		c := New(Config{BaseURL: srv.URL})
		_, err := c.Search(context.Background(), "x", driven.SearchOptions{})
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)

		srv.Close()
	}
}
