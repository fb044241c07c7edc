package external

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rxguard/rxguard-api/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRecallsParsesEnforcementRecords(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Contains(t, r.URL.Query().Get("search"), "examplium")
		w.Write([]byte(`{"results":[
			{"classification":"Class I","reason_for_recall":"contamination","status":"Ongoing","recall_initiation_date":"20240115"},
			{"classification":"Class II","reason_for_recall":"labeling error","recall_initiation_date":"20231101"}
		]}`))
	}))
	defer srv.Close()

	client := NewRecallClient(srv.URL, time.Second, NewMemoryCache())

	notices, err := client.FindRecalls(context.Background(), "Examplium ")
	require.NoError(t, err)
	require.Len(t, notices, 2)

	assert.Equal(t, reference.StatusRecalled, notices[0].Status)
	assert.Equal(t, "contamination", notices[0].Reason)
	assert.Equal(t, "FDA", notices[0].Authority)
	assert.Equal(t, "2024-01-15", notices[0].EffectiveDate)
	assert.Equal(t, reference.StatusPartialRecall, notices[1].Status)

	// Second lookup is answered from cache.
	_, err = client.FindRecalls(context.Background(), "examplium")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFindRecallsNotFoundMeansNoRecalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewRecallClient(srv.URL, time.Second, nil)

	notices, err := client.FindRecalls(context.Background(), "cleanium")
	require.NoError(t, err)
	assert.Empty(t, notices)
}

func TestFindRecallsServerErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewRecallClient(srv.URL, time.Second, nil)

	_, err := client.FindRecalls(context.Background(), "examplium")
	assert.Error(t, err)
}

func TestFindRecallsEmptyDrug(t *testing.T) {
	client := NewRecallClient("http://unreachable.invalid", time.Second, nil)

	notices, err := client.FindRecalls(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Empty(t, notices)
}

func TestClassificationStatus(t *testing.T) {
	assert.Equal(t, reference.StatusRecalled, classificationStatus("Class I"))
	assert.Equal(t, reference.StatusPartialRecall, classificationStatus(" Class II "))
	assert.Equal(t, reference.StatusUnderReview, classificationStatus("Class III"))
	assert.Equal(t, reference.StatusUnderReview, classificationStatus(""))
}

func TestFormatInitDate(t *testing.T) {
	assert.Equal(t, "2024-01-15", formatInitDate("20240115"))
	assert.Equal(t, "not-a-date", formatInitDate("not-a-date"))
}
