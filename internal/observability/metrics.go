package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for HTTP traffic and the
// allocation operations behind it.
type Metrics struct {
	mu             sync.Mutex
	requestCount   map[string]int64
	errorCount     map[string]int64
	operationCount map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:   make(map[string]int64),
		errorCount:     make(map[string]int64),
		operationCount: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordOperation counts allocation-core operations (park, vacate, reserve,
// payment) by outcome.
func (m *Metrics) RecordOperation(operation string, succeeded bool) {
	if m == nil {
		return
	}
	key := operation + "|" + strconv.FormatBool(succeeded)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operationCount[key]++
}

// OperationCount returns the recorded count for an operation/outcome pair.
func (m *Metrics) OperationCount(operation string, succeeded bool) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operationCount[operation+"|"+strconv.FormatBool(succeeded)]
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
