// Package health exposes liveness and readiness endpoints for long-running
// mandate checks.
//
// Watch mode mounts the endpoints next to /metrics:
//
//   - /health: the process is running
//   - /ready: every registered check passes (503 otherwise)
//   - /version: build information
//
// # Usage
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("last_check", func(ctx context.Context) error {
//	    return runner.LastError()
//	})
//
//	mux := http.NewServeMux()
//	health.Mount(mux, checker, version, commit, buildDate)
//
// Readiness runs all checks concurrently, each bounded by the checker's
// timeout. A check that times out counts as unhealthy.
package health
