package httpsrv

import "net/http"

type HealthReporter interface {
	Running() bool
}

// healthHandler answers 200 while the poll loop runs and 503 otherwise.
// Without a reporter the process being up is enough.
func healthHandler(r HealthReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if r != nil && !r.Running() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("STOPPED"))

			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
