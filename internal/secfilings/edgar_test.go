package secfilings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `{
  "hits": {
    "hits": [
      {
        "_source": {
          "adsh": "0001045810-26-000042",
          "form": "8-K",
          "file_date": "2026-02-24",
          "display_names": ["NVIDIA CORP  (NVDA)  (CIK 0001045810)"],
          "ciks": ["0001045810"],
          "items": ["2.02", "9.01"]
        }
      },
      {
        "_source": {
          "adsh": "0001045810-26-000042",
          "form": "8-K",
          "file_date": "2026-02-24",
          "display_names": ["NVIDIA CORP  (NVDA)  (CIK 0001045810)"],
          "ciks": ["0001045810"]
        }
      },
      {
        "_source": {
          "adsh": "0000912057-26-001187",
          "file_type": "4",
          "date_filed": "2026-02-22",
          "entity_name": "Smith John",
          "ciks": ["0000912057"]
        }
      },
      {
        "_source": {
          "adsh": "0000912057-26-001200",
          "root_forms": ["SC 13G"],
          "date_filed": "2026-02-21",
          "ciks": []
        }
      }
    ]
  }
}`

func TestExtractFilings(t *testing.T) {
	var payload searchResponse
	require.NoError(t, json.Unmarshal([]byte(searchFixture), &payload))

	filings := extractFilings(payload)
	require.Len(t, filings, 3)

	first := filings[0]
	assert.Equal(t, "8-K", first.FilingType)
	assert.Equal(t, "2026-02-24", first.FiledDate)
	assert.Equal(t, "NVIDIA CORP  (NVDA)  (CIK 0001045810)", first.Title)
	assert.Equal(t, "https://www.sec.gov/Archives/edgar/data/0001045810/0001045810-26-000042/", first.URL)
	assert.Equal(t, []string{"2.02", "9.01"}, first.Items)

	second := filings[1]
	assert.Equal(t, "4", second.FilingType)
	assert.Equal(t, "2026-02-22", second.FiledDate)
	assert.Equal(t, "Smith John", second.Title)
	assert.Empty(t, second.Items)

	third := filings[2]
	assert.Equal(t, "SC 13G", third.FilingType)
	assert.Empty(t, third.URL)
}

func TestExtractFilingsEmpty(t *testing.T) {
	filings := extractFilings(searchResponse{})
	assert.NotNil(t, filings)
	assert.Empty(t, filings)
}

func TestStringList(t *testing.T) {
	var s stringList
	require.NoError(t, json.Unmarshal([]byte(`"single"`), &s))
	assert.Equal(t, stringList{"single"}, s)

	require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &s))
	assert.Equal(t, stringList{"a", "b"}, s)

	assert.Error(t, json.Unmarshal([]byte(`42`), &s))
}

func TestClientSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `"NVDA"`, r.URL.Query().Get("q"))
		assert.Equal(t, "2026-02-19", r.URL.Query().Get("startdt"))
		assert.Equal(t, "2026-02-26", r.URL.Query().Get("enddt"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(searchFixture))
	}))
	defer server.Close()

	client := NewClient(server.Client(), zerolog.Nop())
	client.baseURL = server.URL

	endDate := time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC)
	filings, err := client.Search(context.Background(), "NVDA", endDate)
	require.NoError(t, err)
	assert.Len(t, filings, 3)
}

func TestClientSearchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.Client(), zerolog.Nop())
	client.baseURL = server.URL

	_, err := client.Search(context.Background(), "NVDA", time.Now())
	require.Error(t, err)
}
