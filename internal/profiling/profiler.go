//go:build profiler

package profiling

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/felixge/fgprof"
	"github.com/google/gops/agent"
)

// Available reports whether this binary was built with the profiler tag.
const Available = true

type profiler struct {
	settings Settings

	mu      sync.Mutex
	cpuFile *os.File
	fgFile  *os.File
	fgStop  func() error
	once    sync.Once
}

// Start begins whatever the environment requests and returns a stop func that
// flushes every profile. The stop func is safe to call more than once.
func Start(ctx context.Context) func() {
	settings := SettingsFromEnv()
	if !settings.Enabled() {
		return func() {}
	}
	p := &profiler{settings: settings}
	if settings.Gops {
		if err := agent.Listen(agent.Options{Addr: settings.GopsAddr, ShutdownCleanup: true}); err != nil {
			slog.Warn("profiling: gops agent failed", slog.Any("err", err))
		}
	}
	p.startCPU()
	p.startFgprof()
	if settings.Duration > 0 {
		go func() {
			timer := time.NewTimer(settings.Duration)
			defer timer.Stop()
			select {
			case <-ctx.Done():
			case <-timer.C:
			}
			p.stopSampling()
		}()
	}
	return p.stop
}

func (p *profiler) startCPU() {
	if p.settings.CPUPath == "" {
		return
	}
	path, err := profilePath(p.settings.CPUPath)
	if err != nil {
		slog.Warn("profiling: cpu profile path invalid", slog.Any("err", err))
		return
	}
	file, err := os.Create(path)
	if err != nil {
		slog.Warn("profiling: open cpu profile failed", slog.Any("err", err))
		return
	}
	if err := pprof.StartCPUProfile(file); err != nil {
		_ = file.Close()
		slog.Warn("profiling: start cpu profile failed", slog.Any("err", err))
		return
	}
	p.cpuFile = file
	slog.Info("profiling: cpu profile started", slog.String("path", path))
}

func (p *profiler) startFgprof() {
	if p.settings.FgPath == "" {
		return
	}
	path, err := profilePath(p.settings.FgPath)
	if err != nil {
		slog.Warn("profiling: fgprof path invalid", slog.Any("err", err))
		return
	}
	file, err := os.Create(path)
	if err != nil {
		slog.Warn("profiling: open fgprof profile failed", slog.Any("err", err))
		return
	}
	p.fgFile = file
	p.fgStop = fgprof.Start(file, fgprof.FormatPprof)
	slog.Info("profiling: fgprof started", slog.String("path", path))
}

func (p *profiler) stopSampling() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		_ = p.cpuFile.Close()
		p.cpuFile = nil
	}
	if p.fgFile != nil {
		if err := p.fgStop(); err != nil {
			slog.Warn("profiling: fgprof stop failed", slog.Any("err", err))
		}
		_ = p.fgFile.Close()
		p.fgFile = nil
	}
}

func (p *profiler) stop() {
	p.once.Do(func() {
		p.stopSampling()
		if p.settings.MemPath != "" {
			if err := writeHeapProfile(p.settings.MemPath); err != nil {
				slog.Warn("profiling: heap profile failed", slog.Any("err", err))
			}
		}
		if p.settings.Gops {
			agent.Close()
		}
	})
}

func writeHeapProfile(raw string) error {
	path, err := profilePath(raw)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()
	runtime.GC()
	if err := pprof.WriteHeapProfile(file); err != nil {
		return err
	}
	slog.Info("profiling: heap profile written", slog.String("path", path))
	return nil
}
