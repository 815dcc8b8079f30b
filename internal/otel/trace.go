package otel

import (
	"os"
	"sync/atomic"
)

// TraceEnv enables the on-disk event journal when set to any value.
const TraceEnv = "DISCIPLE_TRACE"

var traceEnabled atomic.Bool

func init() {
	traceEnabled.Store(os.Getenv(TraceEnv) != "")
}

// TraceEnabled reports whether DISCIPLE_TRACE was set at startup.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

func setTraceEnabled(v bool) {
	traceEnabled.Store(v)
}
