// Package monitor produces the simulated system activity shown by the
// monitor app: a rolling CPU history, memory, temperature and network
// readings, plus a process table derived from the open windows.
package monitor

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/logging"
)

const (
	HistorySize   = 10
	DefaultPeriod = 2 * time.Second
	memoryPercent = 64
	initialNet    = 124
)

var initialCPU = []float64{20, 25, 45, 30, 22, 60, 45, 50, 48, 52}

// Summary describes the CPU history.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	P90    float64 `json:"p90"`
	Peak   float64 `json:"peak"`
}

// RuntimeStats are real figures from the Go runtime hosting the desktop.
type RuntimeStats struct {
	Goroutines int    `json:"goroutines"`
	HeapAlloc  uint64 `json:"heap_alloc_bytes"`
	NumGC      uint32 `json:"num_gc"`
}

// Process is one row of the process table.
type Process struct {
	Name   string  `json:"name"`
	PID    int     `json:"pid"`
	Load   float64 `json:"load"`
	Status string  `json:"status"`
}

// Stats is one reading of the monitor.
type Stats struct {
	CPU       []float64    `json:"cpu"`
	Current   float64      `json:"current_cpu"`
	Memory    float64      `json:"memory"`
	Temp      float64      `json:"temp"`
	Net       float64      `json:"net"`
	Summary   Summary      `json:"summary"`
	Processes []Process    `json:"processes"`
	Runtime   RuntimeStats `json:"runtime"`
	SampledAt time.Time    `json:"sampled_at"`
}

// WindowSource lists the titles of open windows.
type WindowSource func() []string

// Options configures a Sampler.
type Options struct {
	Period   time.Duration
	Rand     *rand.Rand
	Now      func() time.Time
	Windows  WindowSource
	Logger   *logging.Logger
	OnSample func(Stats)
}

// Sampler owns the readings and advances them on each tick.
type Sampler struct {
	opts   Options
	logger *logging.Logger

	mu        sync.RWMutex
	cpu       []float64
	temp      float64
	net       float64
	sampledAt time.Time
}

// NewSampler creates a sampler holding the initial readings.
func NewSampler(opts Options) *Sampler {
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Sampler{
		opts:      opts,
		logger:    logging.OrNop(opts.Logger).Named("monitor"),
		cpu:       append([]float64(nil), initialCPU...),
		temp:      42,
		net:       initialNet,
		sampledAt: opts.Now(),
	}
}

// Tick advances every reading once.
func (s *Sampler) Tick() Stats {
	s.mu.Lock()
	r := s.opts.Rand
	s.cpu = append(s.cpu[1:], float64(r.Intn(60)+20))
	s.temp = float64(40 + r.Intn(8))
	s.net += float64(r.Intn(20) - 10)
	if s.net < 0 {
		s.net = 0
	}
	s.sampledAt = s.opts.Now()
	s.mu.Unlock()

	snap := s.Snapshot()
	if s.opts.OnSample != nil {
		s.opts.OnSample(snap)
	}
	return snap
}

// Run ticks every period until ctx is done.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.opts.Period)
	defer ticker.Stop()

	s.logger.Debug("Sampler started", zap.Duration("period", s.opts.Period))
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Sampler stopped")
			return
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Snapshot returns the current readings.
func (s *Sampler) Snapshot() Stats {
	s.mu.RLock()
	cpu := append([]float64(nil), s.cpu...)
	stats := Stats{
		CPU:       cpu,
		Current:   cpu[len(cpu)-1],
		Memory:    memoryPercent,
		Temp:      s.temp,
		Net:       s.net,
		SampledAt: s.sampledAt,
	}
	s.mu.RUnlock()

	stats.Summary = Summarize(cpu)
	stats.Runtime = readRuntime()
	if s.opts.Windows != nil {
		stats.Processes = Processes(s.opts.Windows(), stats.Current)
	} else {
		stats.Processes = Processes(nil, stats.Current)
	}
	return stats
}

// Summarize computes mean, sample standard deviation, 90th percentile and
// peak of a series.
func Summarize(series []float64) Summary {
	if len(series) == 0 {
		return Summary{}
	}
	sorted := append([]float64(nil), series...)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		std = 0
	}
	return Summary{
		Mean:   mean,
		StdDev: std,
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Peak:   sorted[len(sorted)-1],
	}
}

// Processes builds the process table: the fixed system services followed
// by one row per open window. cpu spreads a little load across rows.
func Processes(windows []string, cpu float64) []Process {
	procs := []Process{
		{Name: "Nova-Engine", PID: 8421, Load: round1(cpu * 0.24), Status: "Stable"},
		{Name: "WindowServer", PID: 1024, Load: round1(4.2 + float64(len(windows))*0.8), Status: "Stable"},
	}
	for i, title := range windows {
		status := "Idle"
		if i == len(windows)-1 {
			status = "Active"
		}
		procs = append(procs, Process{
			Name:   title,
			PID:    2000 + i*17,
			Load:   round1(cpu * 0.05 / float64(i+1)),
			Status: status,
		})
	}
	return procs
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}

func readRuntime() RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeStats{
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  m.HeapAlloc,
		NumGC:      m.NumGC,
	}
}
