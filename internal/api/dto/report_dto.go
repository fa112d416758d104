package dto

// OccupancyEntry is one row of the occupancy report.
type OccupancyEntry struct {
	SpaceID      int    `json:"space_id"`
	LicensePlate string `json:"license_plate"`
	EntryTime    string `json:"entry_time"`
}

// RevenueResponse totals fees over the requested window.
type RevenueResponse struct {
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	TotalRevenue float64 `json:"total_revenue"`
}
