package pprof

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// SampleInterval is how often the continuous heap profile is sampled.
var SampleInterval = 30 * time.Second

var (
	mu        sync.Mutex
	heapStop  chan struct{}
	heapDone  chan struct{}
	cpuActive bool
)

// Dir returns pprofPath, or ~/.debug-log-viewer when it is empty.
func Dir(pprofPath string) (string, error) {
	if pprofPath != "" {
		return pprofPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(home, ".debug-log-viewer"), nil
}

// Setup starts CPU profiling and periodic heap sampling into pprofPath.
func Setup(pprofPath string) error {
	mu.Lock()
	defer mu.Unlock()

	dir, err := Dir(pprofPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create pprof directory")
	}

	cpuFile := filepath.Join(dir, "cpu.pprof")
	f, err := os.Create(cpuFile)
	if err != nil {
		return errors.Wrap(err, "could not create CPU profile file")
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "could not start CPU profile")
	}
	cpuActive = true
	log.Info().Str("path", cpuFile).Msg("CPU profiling started")

	if err := startHeapSampling(dir); err != nil {
		log.Error().Err(err).Msg("Failed to start memory profiling")
	}
	return nil
}

// Stop ends profiling and writes a final heap profile.
func Stop(pprofPath string) {
	mu.Lock()
	defer mu.Unlock()

	dir, err := Dir(pprofPath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve pprof directory")
		return
	}
	if cpuActive {
		pprof.StopCPUProfile()
		cpuActive = false
	}
	stopHeapSampling()

	memFile := filepath.Join(dir, "memory.pprof")
	if err := writeHeap(memFile); err != nil {
		log.Error().Err(err).Str("path", memFile).Msg("Could not write memory profile")
		return
	}
	log.Info().Str("path", memFile).Msg("Memory profile written")
}

func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}

// startHeapSampling appends a heap profile to memory_continuous.pprof every
// SampleInterval until stopHeapSampling.
func startHeapSampling(dir string) error {
	memFile := filepath.Join(dir, "memory_continuous.pprof")
	f, err := os.Create(memFile)
	if err != nil {
		return errors.Wrap(err, "could not create continuous memory profile file")
	}

	heapStop = make(chan struct{})
	heapDone = make(chan struct{})
	ticker := time.NewTicker(SampleInterval)
	go func(stop <-chan struct{}, done chan<- struct{}) {
		defer close(done)
		defer f.Close()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				runtime.GC()
				if err := pprof.WriteHeapProfile(f); err != nil {
					log.Error().Err(err).Msg("Failed to write memory profile sample")
				}
				_, _ = f.WriteString("\n--- Memory Sample ---\n")
			case <-stop:
				return
			}
		}
	}(heapStop, heapDone)

	log.Info().Str("path", memFile).Dur("interval", SampleInterval).Msg("Continuous memory profiling started")
	return nil
}

func stopHeapSampling() {
	if heapStop == nil {
		return
	}
	close(heapStop)
	<-heapDone
	heapStop, heapDone = nil, nil
	log.Info().Msg("Continuous memory profiling stopped")
}
