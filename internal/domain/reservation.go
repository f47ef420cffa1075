package domain

// Reservation links one flight to one passenger. The JSON field names keep the
// wire spelling used by existing clients.
type Reservation struct {
	ID          int64 `json:"id"`
	FlightID    int64 `json:"flight"`
	PassengerID int64 `json:"passanger"`
}
