package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func windowBounds(f *allocationFixture, fromOffset, toOffset time.Duration) (time.Time, time.Time) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return base.Add(fromOffset), base.Add(toOffset)
}

func TestOccupancyReport_WindowsSessions(t *testing.T) {
	f := newAllocationFixture(t, 3)
	ctx := context.Background()
	reports := NewReportService(f.alloc, f.clock.Now)

	alice := f.registerDriver(t, "Alice", "alice@example.com", "AAA-1")
	bob := f.registerDriver(t, "Bob", "bob@example.com", "BBB-2")

	// alice: 09:00 - 11:00, closed; bob: 11:00 - still open
	_, err := f.alloc.ParkVehicle(ctx, alice.ID)
	require.NoError(t, err)
	f.clock.Advance(2 * time.Hour)
	require.NoError(t, f.alloc.VacateSpace(ctx, 1))
	_, err = f.alloc.ParkVehicle(ctx, bob.ID)
	require.NoError(t, err)

	start, end := windowBounds(f, -time.Hour, 3*time.Hour)
	var plates []string
	for record := range reports.OccupancyReport(start, end) {
		plates = append(plates, record.LicensePlate)
	}
	require.ElementsMatch(t, []string{"AAA-1", "BBB-2"}, plates)

	// tighter window excludes alice (exit 11:00 past end) and bob (open
	// session, "now" is 11:00)
	start, end = windowBounds(f, -time.Hour, time.Hour)
	count := 0
	for range reports.OccupancyReport(start, end) {
		count++
	}
	require.Equal(t, 0, count)
}

func TestOccupancyReport_Restartable(t *testing.T) {
	f := newAllocationFixture(t, 2)
	ctx := context.Background()
	reports := NewReportService(f.alloc, f.clock.Now)
	alice := f.registerDriver(t, "Alice", "alice@example.com", "AAA-1")
	_, err := f.alloc.ParkVehicle(ctx, alice.ID)
	require.NoError(t, err)

	start, end := windowBounds(f, -time.Hour, time.Hour)
	seq := reports.OccupancyReport(start, end)

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	require.Equal(t, first, second)
	require.Equal(t, 1, first)
}

func TestOccupancyReport_EarlyBreak(t *testing.T) {
	f := newAllocationFixture(t, 3)
	ctx := context.Background()
	reports := NewReportService(f.alloc, f.clock.Now)
	alice := f.registerDriver(t, "Alice", "alice@example.com", "AAA-1")
	bob := f.registerDriver(t, "Bob", "bob@example.com", "BBB-2")
	_, err := f.alloc.ParkVehicle(ctx, alice.ID)
	require.NoError(t, err)
	_, err = f.alloc.ParkVehicle(ctx, bob.ID)
	require.NoError(t, err)

	start, end := windowBounds(f, -time.Hour, time.Hour)
	count := 0
	for range reports.OccupancyReport(start, end) {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestRevenueReport_SumsClosedSessions(t *testing.T) {
	f := newAllocationFixture(t, 3)
	ctx := context.Background()
	reports := NewReportService(f.alloc, f.clock.Now)

	alice := f.registerDriver(t, "Alice", "alice@example.com", "AAA-1")
	bob := f.registerDriver(t, "Bob", "bob@example.com", "BBB-2")

	// alice: 09:00 - 11:00 closed (peak, 2h x 5 x 2 = 20);
	// bob: 11:00 - open, contributes nothing
	_, err := f.alloc.ParkVehicle(ctx, alice.ID)
	require.NoError(t, err)
	f.clock.Advance(2 * time.Hour)
	require.NoError(t, f.alloc.VacateSpace(ctx, 1))
	_, err = f.alloc.ParkVehicle(ctx, bob.ID)
	require.NoError(t, err)

	start, end := windowBounds(f, -time.Hour, 3*time.Hour)
	require.Equal(t, 20.0, reports.RevenueReport(start, end))

	// window before the exit: nothing to sum
	start, end = windowBounds(f, -2*time.Hour, -time.Hour)
	require.Equal(t, 0.0, reports.RevenueReport(start, end))
}

// Only the latest occupant per space is visible: a reassigned space drops
// its previous session from both reports.
func TestReports_LatestSessionOnly(t *testing.T) {
	f := newAllocationFixture(t, 1)
	ctx := context.Background()
	reports := NewReportService(f.alloc, f.clock.Now)

	alice := f.registerDriver(t, "Alice", "alice@example.com", "AAA-1")
	bob := f.registerDriver(t, "Bob", "bob@example.com", "BBB-2")

	_, err := f.alloc.ParkVehicle(ctx, alice.ID)
	require.NoError(t, err)
	f.clock.Advance(2 * time.Hour)
	require.NoError(t, f.alloc.VacateSpace(ctx, 1))

	// bob overwrites the space's session slot
	_, err = f.alloc.ParkVehicle(ctx, bob.ID)
	require.NoError(t, err)

	start, end := windowBounds(f, -time.Hour, 3*time.Hour)
	require.Equal(t, 0.0, reports.RevenueReport(start, end))

	var plates []string
	for record := range reports.OccupancyReport(start, end) {
		plates = append(plates, record.LicensePlate)
	}
	require.Equal(t, []string{"BBB-2"}, plates)
}
