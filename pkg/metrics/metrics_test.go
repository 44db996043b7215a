package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLatencyHandler(t *testing.T) {
	table := []struct {
		name string
		path string
		code int
		want string
	}{{
		name: "implicit ok",
		path: "/ok",
		want: "200",
	}, {
		name: "explicit status",
		path: "/missing",
		code: http.StatusNotFound,
		want: "404",
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			h := LatencyHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.code != 0 {
					w.WriteHeader(tc.code)
				}
				w.Write([]byte("hi"))
			}))
			before := testutil.CollectAndCount(requestLatency)
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", tc.path, nil))
			if got := testutil.CollectAndCount(requestLatency); got != before+1 {
				t.Errorf("got %d series, wanted %d", got, before+1)
			}
			if _, err := requestLatency.GetMetricWith(map[string]string{"verb": "GET", "path": tc.path, "code": tc.want}); err != nil {
				t.Errorf("missing series: %v", err)
			}
		})
	}
}

func TestObserveCache(t *testing.T) {
	hits := testutil.ToFloat64(cacheLookups.WithLabelValues("hit"))
	ObserveCache(true)
	ObserveCache(false)
	if got := testutil.ToFloat64(cacheLookups.WithLabelValues("hit")); got != hits+1 {
		t.Errorf("got %v hits, wanted %v", got, hits+1)
	}
}

func TestObserveChart(t *testing.T) {
	ObserveChart("interpolation", "none", 20*time.Millisecond)
	if got := testutil.CollectAndCount(chartLatency); got < 1 {
		t.Errorf("no chart latency recorded")
	}
}
