package workload

import (
	"fmt"
	"time"
)

// Sleep is a latency-bound workload: each item blocks for a fixed delay.
type Sleep struct {
	delay time.Duration
}

// NewSleep returns a workload sleeping us microseconds per item.
func NewSleep(us int) *Sleep {
	if us < 0 {
		us = 0
	}
	return &Sleep{delay: time.Duration(us) * time.Microsecond}
}

// Name implements Workload.
func (s *Sleep) Name() string { return "sleep" }

// Description implements Workload.
func (s *Sleep) Description() string {
	return fmt.Sprintf("sleep %s per item", s.delay)
}

// Process implements Workload.
func (s *Sleep) Process(int) error {
	time.Sleep(s.delay)
	return nil
}
