// model/rental.go
package model

type RentalStatus string

const (
	RentalPending   RentalStatus = "PENDING"
	RentalApproved  RentalStatus = "APPROVED"
	RentalOngoing   RentalStatus = "ONGOING"
	RentalCompleted RentalStatus = "COMPLETED"
	RentalCancelled RentalStatus = "CANCELLED"
)

// RentalStatuses lists every status the upstream recognizes, in
// lifecycle order.
var RentalStatuses = []RentalStatus{
	RentalPending, RentalApproved, RentalOngoing, RentalCompleted, RentalCancelled,
}

func (s RentalStatus) Valid() bool {
	for _, known := range RentalStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Rental mirrors the upstream RentalDTO. ItemID is a weak reference to
// a Product; ItemName is resolved upstream and carried for display.
// Dates are ISO yyyy-mm-dd strings, as the upstream serializes them.
type Rental struct {
	ID           int64        `json:"id"`
	ItemID       int64        `json:"itemId"`
	ItemName     string       `json:"itemName,omitempty"`
	BorrowerID   string       `json:"borrowerId,omitempty"`
	BorrowerName string       `json:"borrowerName,omitempty"`
	StartDate    string       `json:"startDate"`
	EndDate      string       `json:"endDate"`
	TotalPrice   float64      `json:"totalPrice"`
	Status       RentalStatus `json:"status"`
	ApprovedBy   string       `json:"approvedBy,omitempty"`
	Paid         bool         `json:"paid"`
}

// RentalFilter narrows rental list queries. Zero-value fields mean
// "no constraint".
type RentalFilter struct {
	Name   string `json:"name" query:"name"`
	Status string `json:"status" query:"status"`
}

// RentalPatch is the mutable subset of a rental the gateway may send
// on update; every other field is read-only display data.
type RentalPatch struct {
	Status RentalStatus `json:"status"`
	Paid   bool         `json:"paid"`
}
