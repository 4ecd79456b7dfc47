package metrics

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/moltaidev/usdc-mandate/pkg/config"
	"github.com/moltaidev/usdc-mandate/pkg/mandate"
	"github.com/moltaidev/usdc-mandate/pkg/report"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
	}
}

func passedReport() *report.Report {
	return &report.Report{
		RunID:     "run-1",
		StartedAt: time.Unix(1700000000, 0),
		Duration:  2 * time.Millisecond,
		Passed:    true,
		Mandate:   report.Result{Kind: report.KindMandate, Status: report.StatusValid},
		Ledger:    &report.Result{Kind: report.KindLedger, Status: report.StatusValid, Entries: 4},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)
	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}

	if NewCollector(&config.MetricsConfig{}, nil).Registry() == nil {
		t.Error("expected a fresh registry when none is given")
	}
}

func TestCollector_RecordRun(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordRun(passedReport())

	failed := passedReport()
	failed.Passed = false
	failed.Mandate = report.Result{
		Kind:   report.KindMandate,
		Status: report.StatusInvalid,
		Errors: []string{"a", "b"},
	}
	failed.Ledger = &report.Result{Kind: report.KindLedger, Status: report.StatusUnreadable}
	collector.RecordRun(failed)

	aborted := &report.Report{Aborted: true, Mandate: report.Result{Kind: report.KindMandate, Status: report.StatusUnreadable}}
	collector.RecordRun(aborted)

	rm := collector.runMetrics
	if got := testutil.ToFloat64(rm.runsTotal.WithLabelValues("passed")); got != 1 {
		t.Errorf("passed runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rm.runsTotal.WithLabelValues("failed")); got != 1 {
		t.Errorf("failed runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rm.runsTotal.WithLabelValues("aborted")); got != 1 {
		t.Errorf("aborted runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rm.lastRunSuccess); got != 0 {
		t.Errorf("last run success = %v, want 0", got)
	}

	dm := collector.documentMetrics
	if got := testutil.ToFloat64(dm.errorsTotal.WithLabelValues("mandate")); got != 3 {
		t.Errorf("mandate errors = %v, want 3", got)
	}
	if got := testutil.ToFloat64(dm.errorsTotal.WithLabelValues("ledger")); got != 1 {
		t.Errorf("ledger errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(dm.ledgerEntries); got != 4 {
		t.Errorf("ledger entries = %v, want 4", got)
	}
	if got := testutil.ToFloat64(dm.status.WithLabelValues("mandate", "unreadable")); got != 1 {
		t.Errorf("mandate unreadable status = %v, want 1", got)
	}
	if got := testutil.ToFloat64(dm.status.WithLabelValues("mandate", "valid")); got != 0 {
		t.Errorf("mandate valid status = %v, want 0", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.RecordRun(passedReport())

	if got := testutil.ToFloat64(collector.runMetrics.runsTotal.WithLabelValues("passed")); got != 0 {
		t.Errorf("disabled collector recorded %v runs", got)
	}
}

func TestCollector_RecordUsage(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordUsage(&mandate.Status{
		Limit:      decimal.NewFromInt(100),
		Spent:      decimal.RequireFromString("25.5"),
		Percentage: 0.255,
		WindowEnd:  time.Unix(1700086400, 0),
	})

	um := collector.usageMetrics
	if got := testutil.ToFloat64(um.spent); got != 25.5 {
		t.Errorf("spent = %v, want 25.5", got)
	}
	if got := testutil.ToFloat64(um.ratio); got != 0.255 {
		t.Errorf("ratio = %v, want 0.255", got)
	}
	if got := testutil.ToFloat64(um.periodEnds); got != 1700086400 {
		t.Errorf("period end = %v", got)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		rep  *report.Report
		want string
	}{
		{&report.Report{Passed: true}, "passed"},
		{&report.Report{}, "failed"},
		{&report.Report{Aborted: true}, "aborted"},
	}
	for _, tt := range tests {
		if got := Outcome(tt.rep); got != tt.want {
			t.Errorf("Outcome(%+v) = %q, want %q", tt.rep, got, tt.want)
		}
	}
}

func TestCollector_WriteTextfile(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordRun(passedReport())

	path := filepath.Join(t.TempDir(), "nested", "check.prom")
	if err := collector.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read textfile: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		`test_check_runs_total{outcome="passed"} 1`,
		`test_check_last_run_success 1`,
		`test_check_ledger_entries 4`,
		`# TYPE test_check_run_duration_seconds histogram`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("textfile missing %q:\n%s", want, content)
		}
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordRun(passedReport())

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "test_check_runs_total") {
		t.Errorf("handler output missing runs_total:\n%s", rec.Body.String())
	}
}

func TestCollector_Serve(t *testing.T) {
	// Reserve a free port.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	collector := NewCollector(testConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	go func() { done <- collector.Serve(ctx, addr, mux) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/metrics")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("metrics endpoint not reachable: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	resp, err = http.Get("http://" + addr + "/health")
	if err != nil {
		t.Fatalf("extra route not reachable: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("/health status = %d, want 204", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not stop after cancellation")
	}
}
