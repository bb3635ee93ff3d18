package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("GET", "/api/v1/products", 200, 15*time.Millisecond)
	m.Observe("GET", "/api/v1/products", 200, 5*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)
	m.IncRateLimited("public")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", map[string]string{"route": "/api/v1/products", "status": "200"}); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 2 {
		t.Fatalf("expected 2 requests, got %f", got)
	}
	if _, err := fetchCounterValue(mfs, "http_requests_total", map[string]string{"route": "unknown", "status": "404"}); err != nil {
		t.Fatalf("empty routes should be labelled unknown: %v", err)
	}
	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", map[string]string{"route": "/api/v1/products"}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "http_rate_limited_total", map[string]string{"scope": "public"}); err != nil || got != 1 {
		t.Fatalf("expected one rate limited request, got %f (%v)", got, err)
	}
}

func TestSeedMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSeedMetrics(reg)
	m.ObserveRun(time.Second, nil)
	m.ObserveRun(time.Second, errors.New("boom"))
	m.AddCreated("variants", 120)
	m.AddCreated("products", 0)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, name := range []string{"seed_run_success", "seed_run_failure"} {
		if got, err := fetchCounterValue(mfs, name, nil); err != nil || got != 1 {
			t.Fatalf("expected %s=1, got %f (%v)", name, got, err)
		}
	}
	if got, err := fetchCounterValue(mfs, "seed_rows_created", map[string]string{"entity": "variants"}); err != nil || got != 120 {
		t.Fatalf("expected 120 variants, got %f (%v)", got, err)
	}
	if _, err := fetchCounterValue(mfs, "seed_rows_created", map[string]string{"entity": "products"}); err == nil {
		t.Fatal("zero additions should not create a series")
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Millisecond)
	NewSeedMetrics(nil).ObserveRun(time.Second, nil)
	var m *HTTPMetrics
	m.IncRateLimited("public")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
