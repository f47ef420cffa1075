package domain

type Flight struct {
	ID                       int64     `json:"id"`
	FlightNumber             string    `json:"flightNumber"`
	OperatingAirlines        string    `json:"operatingAirLines"`
	DepartureCity            string    `json:"departureCity"`
	ArrivalCity              string    `json:"arrivalCity"`
	DateOfDeparture          Date      `json:"dateOfDeparture"`
	EstimatedTimeOfDeparture TimeOfDay `json:"estimatedTimeOfDeparture"`
}

// FlightQuery selects flights by exact route and departure date.
type FlightQuery struct {
	DepartureCity   string
	ArrivalCity     string
	DateOfDeparture Date
}
