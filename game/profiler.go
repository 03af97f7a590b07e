package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"
)

// Profiler captures a CPU profile when a simulation tick runs slow
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
	threshold       time.Duration
	now             func() time.Time
}

// NewProfiler creates a profiler writing to dir that triggers on ticks
// slower than threshold.
func NewProfiler(dir string, threshold time.Duration) *Profiler {
	return &Profiler{
		captureCooldown: 10 * time.Second, // Don't capture more than once every 10 seconds
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
		threshold:       threshold,
		now:             time.Now,
	}
}

// Observe records how long a tick took. A slow tick starts a capture in the
// background unless one ran recently. It reports whether a capture started.
func (p *Profiler) Observe(elapsed time.Duration, reason string) bool {
	if elapsed <= p.threshold {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if p.isProfiling || (!p.lastCaptureTime.IsZero() && now.Sub(p.lastCaptureTime) < p.captureCooldown) {
		return false
	}
	p.isProfiling = true
	p.lastCaptureTime = now

	baseName := fmt.Sprintf("slow-tick-%s-%s", now.Format("20060102-150405"), reason)
	log.Printf("Slow tick (%v > %v), capturing %s", elapsed, p.threshold, baseName)

	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()
		if err := p.captureCPUProfile(baseName); err != nil {
			log.Printf("Error capturing CPU profile: %v", err)
			return
		}
		p.logMemStats()
	}()
	return true
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

func (p *Profiler) captureCPUProfile(baseName string) error {
	if err := os.MkdirAll(p.profilesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create profiles dir: %w", err)
	}
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	log.Printf("CPU profile saved to %s (go tool pprof -http=:8080 %s)", profilePath, profilePath)
	return nil
}

func (p *Profiler) logMemStats() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Printf("Memory: Alloc=%d KB Sys=%d KB NumGC=%d HeapObjects=%d",
		m.Alloc/1024, m.Sys/1024, m.NumGC, m.HeapObjects)
}
