package renderer

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// DetectWorkers returns the number of logical CPUs, or runtime.NumCPU when the host
// cannot be queried
func DetectWorkers() int {
	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		return runtime.NumCPU()
	}
	return count
}

// SystemInfo describes the host a render runs on
type SystemInfo struct {
	CPUModel     string
	LogicalCores int
	TotalMemory  uint64 // Bytes
}

// HostInfo queries CPU and memory details of the host
func HostInfo() (SystemInfo, error) {
	info := SystemInfo{LogicalCores: DetectWorkers()}

	cpuInfo, err := cpu.Info()
	if err != nil {
		return info, fmt.Errorf("query cpu info: %w", err)
	}
	if len(cpuInfo) > 0 {
		info.CPUModel = cpuInfo[0].ModelName
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return info, fmt.Errorf("query memory info: %w", err)
	}
	info.TotalMemory = memInfo.Total

	return info, nil
}

// String formats the info for a log line
func (s SystemInfo) String() string {
	model := s.CPUModel
	if model == "" {
		model = "unknown cpu"
	}
	return fmt.Sprintf("%s, %d logical cores, %.1f GiB memory",
		model, s.LogicalCores, float64(s.TotalMemory)/(1<<30))
}
