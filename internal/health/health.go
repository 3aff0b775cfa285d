package health

import (
	"context"
	"time"

	"erp-ledger/internal/repositories"

	"github.com/shirou/gopsutil/v3/mem"
)

type HealthChecker struct {
	store  repositories.Pinger
	driver string
}

type HealthStatus struct {
	Status string       `json:"status"`
	Store  StoreHealth  `json:"store"`
	Memory *MemoryStats `json:"memory,omitempty"`
}

type StoreHealth struct {
	Driver       string `json:"driver"`
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

type MemoryStats struct {
	TotalBytes  uint64  `json:"total_bytes"`
	UsedBytes   uint64  `json:"used_bytes"`
	UsedPercent float64 `json:"used_percent"`
}

// NewHealthChecker accepts a nil store for drivers that cannot be pinged
func NewHealthChecker(store repositories.Pinger, driver string) *HealthChecker {
	return &HealthChecker{store: store, driver: driver}
}

func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	storeHealth := h.checkStore(ctx)

	status := "healthy"
	if storeHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status: status,
		Store:  storeHealth,
		Memory: checkMemory(),
	}
}

func (h *HealthChecker) checkStore(ctx context.Context) StoreHealth {
	if h.store == nil {
		return StoreHealth{Driver: h.driver, Status: "healthy"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return StoreHealth{
			Driver:       h.driver,
			Status:       "unhealthy",
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return StoreHealth{
		Driver:       h.driver,
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func checkMemory() *MemoryStats {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil
	}
	return &MemoryStats{
		TotalBytes:  vm.Total,
		UsedBytes:   vm.Used,
		UsedPercent: vm.UsedPercent,
	}
}
