package service

import (
	"iter"
	"time"
)

// OccupancyRecord is one row of the windowed occupancy report.
type OccupancyRecord struct {
	SpaceID      int
	LicensePlate string
	EntryTime    time.Time
}

// ReportService is a read-only aggregator over the allocation pool. It never
// mutates allocation state; reports see only the latest session per space.
type ReportService struct {
	alloc *AllocationService
	now   func() time.Time
}

// NewReportService constructs the report engine. The clock override is for
// tests; nil means time.Now.
func NewReportService(alloc *AllocationService, now func() time.Time) *ReportService {
	if now == nil {
		now = time.Now
	}
	return &ReportService{alloc: alloc, now: now}
}

// OccupancyReport yields every session whose entry falls at or after start
// and whose exit (or the current instant, for open sessions) falls at or
// before end. The sequence is lazy and restartable: each iteration walks a
// fresh snapshot of the pool.
func (s *ReportService) OccupancyReport(start, end time.Time) iter.Seq[OccupancyRecord] {
	return func(yield func(OccupancyRecord) bool) {
		for _, session := range s.alloc.SessionSnapshots() {
			if session.EntryTime == nil {
				continue
			}
			exit := s.now()
			if session.ExitTime != nil {
				exit = *session.ExitTime
			}
			if session.EntryTime.Before(start) || exit.After(end) {
				continue
			}
			record := OccupancyRecord{
				SpaceID:      session.SpaceID,
				LicensePlate: session.LicensePlate,
				EntryTime:    *session.EntryTime,
			}
			if !yield(record) {
				return
			}
		}
	}
}

// RevenueReport sums the fee of every space whose latest session ended
// inside [start, end]. Sessions overwritten by a later occupancy are gone
// from the pool and therefore absent from the total.
func (s *ReportService) RevenueReport(start, end time.Time) float64 {
	var revenue float64
	engine := s.alloc.PricingEngine()
	for _, session := range s.alloc.SessionSnapshots() {
		if session.EntryTime == nil || session.ExitTime == nil {
			continue
		}
		exit := *session.ExitTime
		if exit.Before(start) || exit.After(end) {
			continue
		}
		revenue += engine.Fee(*session.EntryTime, exit)
	}
	return revenue
}
