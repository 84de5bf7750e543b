package observability

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats is a snapshot of the resources used by the current process.
type ProcessStats struct {
	RSS        uint64
	CPUPercent float64
	AllocMemMb uint64
	NumGC      uint32
}

// CurrentProcessStats reads memory and CPU usage of this process.
func CurrentProcessStats() (ProcessStats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessStats{}, err
	}
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return ProcessStats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return ProcessStats{}, err
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return ProcessStats{
		RSS:        memInfo.RSS,
		CPUPercent: cpuPercent,
		AllocMemMb: m.Alloc / 1024 / 1024,
		NumGC:      m.NumGC,
	}, nil
}

// LogProcessStats logs a snapshot, failures are only reported at debug level.
func LogProcessStats(log *slog.Logger) {
	stats, err := CurrentProcessStats()
	if err != nil {
		log.Debug("Failed to collect self stats", "err", err)
		return
	}
	log.Info("Process stats",
		"rss_bytes", stats.RSS,
		"cpu_percent", stats.CPUPercent,
		"alloc_mb", stats.AllocMemMb,
		"num_gc", stats.NumGC,
	)
}
