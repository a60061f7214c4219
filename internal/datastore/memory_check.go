package datastore

import (
	"github.com/aleister1102/pqwriter/internal/common"
	"github.com/aleister1102/pqwriter/internal/writeropts"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
)

// VirtualMemoryFunc reports system memory. mem.VirtualMemory in production.
type VirtualMemoryFunc func() (*mem.VirtualMemoryStat, error)

// MemoryHeadroomResult describes how a buffered row group compares to the
// memory currently available on the host.
type MemoryHeadroomResult struct {
	RowGroupBytes  uint64
	AvailableBytes uint64
	BudgetBytes    uint64
	WithinBudget   bool
}

// CheckMemoryHeadroom warns when one buffered row group would take more than
// headroom (0..1] of available memory. Writers buffer a whole row group
// before flushing, so this is the peak the options imply.
func CheckMemoryHeadroom(opts writeropts.WriterOptions, headroom float64, statFn VirtualMemoryFunc, logger zerolog.Logger) (MemoryHeadroomResult, error) {
	if headroom <= 0 || headroom > 1 {
		return MemoryHeadroomResult{}, common.NewValidationError("memory_headroom", headroom, "must be in (0, 1]")
	}
	if statFn == nil {
		statFn = mem.VirtualMemory
	}

	vmStat, err := statFn()
	if err != nil {
		return MemoryHeadroomResult{}, common.WrapError(err, "failed to get system memory stats")
	}

	result := MemoryHeadroomResult{
		RowGroupBytes:  uint64(opts.MaxRowGroupSize()),
		AvailableBytes: vmStat.Available,
		BudgetBytes:    uint64(float64(vmStat.Available) * headroom),
	}
	result.WithinBudget = result.RowGroupBytes <= result.BudgetBytes

	if !result.WithinBudget {
		logger.Warn().
			Uint64("row_group_mb", result.RowGroupBytes/1024/1024).
			Uint64("available_mb", result.AvailableBytes/1024/1024).
			Float64("headroom", headroom).
			Msg("Max row group size exceeds memory budget")
	}

	return result, nil
}
