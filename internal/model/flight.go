package model

import "time"

// Flight is a tracked flight. Unlike the other record types, departure
// and arrival carry full timestamps, not calendar dates; a flight is an
// instant, not a day. Entries list most-recent-first by DepartureTime;
// flights with no recorded departure sort last.
type Flight struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	FlightNumber     string     `json:"flight_number"`
	Airline          string     `json:"airline"`
	DepartureAirport string     `json:"departure_airport"`
	ArrivalAirport   string     `json:"arrival_airport"`
	DepartureTime    *time.Time `json:"departure_time"`
	ArrivalTime      *time.Time `json:"arrival_time"`
	Gate             *string    `json:"gate"`
	Status           *string    `json:"status"`
}

// FlightPatch is the partial-update shape for Flight.
type FlightPatch struct {
	FlightNumber     *string    `json:"flight_number"`
	Airline          *string    `json:"airline"`
	DepartureAirport *string    `json:"departure_airport"`
	ArrivalAirport   *string    `json:"arrival_airport"`
	DepartureTime    *time.Time `json:"departure_time"`
	ArrivalTime      *time.Time `json:"arrival_time"`
	Gate             *string    `json:"gate"`
	Status           *string    `json:"status"`
}

// Apply overwrites the fields supplied in the patch.
func (f *Flight) Apply(patch FlightPatch) {
	if patch.FlightNumber != nil {
		f.FlightNumber = *patch.FlightNumber
	}
	if patch.Airline != nil {
		f.Airline = *patch.Airline
	}
	if patch.DepartureAirport != nil {
		f.DepartureAirport = *patch.DepartureAirport
	}
	if patch.ArrivalAirport != nil {
		f.ArrivalAirport = *patch.ArrivalAirport
	}
	if patch.DepartureTime != nil {
		f.DepartureTime = patch.DepartureTime
	}
	if patch.ArrivalTime != nil {
		f.ArrivalTime = patch.ArrivalTime
	}
	if patch.Gate != nil {
		f.Gate = patch.Gate
	}
	if patch.Status != nil {
		f.Status = patch.Status
	}
}
