// Package sysinfo reports the host CPU and memory the renderer sizes its
// worker pool from.
package sysinfo

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// ErrNoCPUInfo is returned when the platform reports no processors
var ErrNoCPUInfo = errors.New("sysinfo: no CPU information available")

// Info describes the host machine
type Info struct {
	CPUModel     string
	ClockGHz     float64
	LogicalCores int
	TotalRAMGB   uint64
}

// String formats the host summary on one line
func (i Info) String() string {
	return fmt.Sprintf("%s @ %.2f GHz, %d logical cores, %d GB RAM", i.CPUModel, i.ClockGHz, i.LogicalCores, i.TotalRAMGB)
}

// Read queries the CPU and memory of the current host
func Read() (Info, error) {
	cpuInfo, err := cpu.Info()
	if err != nil {
		return Info{}, fmt.Errorf("sysinfo: cpu info: %w", err)
	}
	if len(cpuInfo) == 0 {
		return Info{}, ErrNoCPUInfo
	}

	cores, err := cpu.Counts(true)
	if err != nil || cores <= 0 {
		cores = runtime.NumCPU()
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return Info{}, fmt.Errorf("sysinfo: memory info: %w", err)
	}

	return Info{
		CPUModel:     cpuInfo[0].ModelName,
		ClockGHz:     cpuInfo[0].Mhz / 1000,
		LogicalCores: cores,
		TotalRAMGB:   memInfo.Total / (1024 * 1024 * 1024),
	}, nil
}

// DefaultWorkers returns the number of logical CPUs, falling back to the Go
// runtime's count when gopsutil cannot tell
func DefaultWorkers() int {
	cores, err := cpu.Counts(true)
	if err != nil || cores <= 0 {
		return runtime.NumCPU()
	}
	return cores
}
