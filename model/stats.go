// model/stats.go
package model

// ProductStats is the /stats/products aggregate.
type ProductStats struct {
	TotalProduct int `json:"totalProduct"`
}

// RentalStats is the /stats/rentals aggregate: a grand total plus a
// per-status breakdown.
type RentalStats struct {
	TotalRental int                    `json:"totalRental"`
	Statuses    map[RentalStatus]int64 `json:"statuses"`
}
