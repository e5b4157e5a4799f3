package toolify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const newToolsPage = `<html><body>
<div class="tool-item">
  <a class="go-tool-detail-name" href="/tool/acme">Acme AI</a>
  <p class="tool-desc">Great tool</p>
  <a rel="dofollow" target="_blank" href="https://www.toolify.ai/tool/acme">detail</a>
  <a rel="dofollow" target="_blank" href="https://acme.ai">visit</a>
</div>
<div class="tool-item">
  <p class="tool-desc">card with no name, extraction must skip it</p>
</div>
<div class="tool-item">
  <a class="go-tool-detail-name" href="/tool/beta">Beta
    Writer</a>
  <p class="tool-desc">  Writes   things  </p>
</div>
</body></html>`

func TestFetchRawRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/new", r.URL.Path)
		w.Write([]byte(newToolsPage))
	}))
	defer srv.Close()

	adapter := NewAdapter()
	adapter.BaseUrl = srv.URL

	records, err := adapter.FetchRawRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, "Acme AI", records[0].Name)
	require.Equal(t, "Great tool", records[0].ShortDescription)
	require.Equal(t, "https://acme.ai", records[0].SourceUrl)
	require.Equal(t, Source, records[0].Source)
	require.Equal(t, "new", records[0].Type)

	// broken card is skipped, the rest of the batch survives
	require.Equal(t, "Beta Writer", records[1].Name)
	require.Equal(t, "Writes things", records[1].ShortDescription)
	require.Equal(t, "", records[1].SourceUrl)
}

func TestFetchRawRecordsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	adapter := NewAdapter()
	adapter.BaseUrl = srv.URL

	_, err := adapter.FetchRawRecords(context.Background())
	require.Error(t, err)
}
