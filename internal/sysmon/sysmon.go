// Package sysmon samples system-wide CPU and memory usage for run summaries.
package sysmon

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent   float64 // 0.0 .. 100.0, since the previous sample
	MemPercent   float64 // 0.0 .. 100.0
	MemTotal     uint64  // bytes of physical memory
	LogicalCores int     // logical CPUs reported by the OS
}

// Sample collects a single system-wide snapshot. CPU usage uses interval 0,
// i.e. the delta since the last call. Fields that cannot be read stay zero.
func Sample() Stats {
	var s Stats
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
		s.MemTotal = vmem.Total
	}
	if n, err := cpu.Counts(true); err == nil {
		s.LogicalCores = n
	}
	return s
}
