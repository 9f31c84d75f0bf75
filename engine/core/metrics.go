package core

import (
	"sync"
	"time"
)

const AVG_COUNT uint8 = 30

// Metrics keeps a rolling average of render times plus served/failed job
// counters. Written by the render thread, read by anyone.
type Metrics struct {
	mu sync.RWMutex

	renderAVGCounter uint8
	msTimes          [AVG_COUNT]float64
	samples          uint8
	msAvg            float64

	jobsServed uint64
	jobsFailed uint64
	lastJob    time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Update folds a finished job into the rolling window.
func (m *Metrics) Update(elapsed time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ms := float64(elapsed) / float64(time.Millisecond)
	m.msTimes[m.renderAVGCounter] = ms
	m.renderAVGCounter++
	m.renderAVGCounter %= AVG_COUNT
	if m.samples < AVG_COUNT {
		m.samples++
	}

	sum := 0.0
	for i := uint8(0); i < m.samples; i++ {
		sum += m.msTimes[i]
	}
	m.msAvg = sum / float64(m.samples)

	m.lastJob = elapsed
	if failed {
		m.jobsFailed++
	} else {
		m.jobsServed++
	}
}

// RenderTime returns the average job latency in milliseconds over the last
// AVG_COUNT jobs.
func (m *Metrics) RenderTime() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.msAvg
}

func (m *Metrics) Jobs() (served uint64, failed uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jobsServed, m.jobsFailed
}

func (m *Metrics) LastJob() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastJob
}
