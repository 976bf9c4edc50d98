package export

import (
	"time"

	"github.com/sakif/travelvault/internal/model"
)

// Section keys, also the JSON object keys and XLSX sheet names.
// gather assembles sections in this order regardless of how the caller
// ordered the request.
const (
	SectionPersonal  = "personal"
	SectionTravel    = "travel"
	SectionFlights   = "flights"
	SectionEmployers = "employers"
	SectionEducation = "education"
	SectionAddresses = "addresses"
)

// SectionOrder is the canonical section sequence in every output format.
var SectionOrder = []string{
	SectionPersonal,
	SectionTravel,
	SectionFlights,
	SectionEmployers,
	SectionEducation,
	SectionAddresses,
}

// ValidSection reports whether key names one of the six sections.
func ValidSection(key string) bool {
	for _, s := range SectionOrder {
		if s == key {
			return true
		}
	}
	return false
}

// Views are the export projections of the record types: the public
// fields only, with id and user_id stripped. Every encoder reads
// records through these, so the strip happens in exactly one place.
//
// The json tags drive the JSON format; the tabular formats (CSV, XLSX,
// PDF) read the same fields through headers/row pairs below, in the
// same order.

type personalView struct {
	FullName       *string     `json:"full_name"`
	PassportNumber *string     `json:"passport_number"`
	DOB            *model.Date `json:"dob"`
}

type travelView struct {
	Date        model.Date `json:"date"`
	Destination string     `json:"destination"`
	Notes       *string    `json:"notes"`
}

type flightView struct {
	FlightNumber     string     `json:"flight_number"`
	Airline          string     `json:"airline"`
	DepartureAirport string     `json:"departure_airport"`
	ArrivalAirport   string     `json:"arrival_airport"`
	DepartureTime    *time.Time `json:"departure_time"`
	ArrivalTime      *time.Time `json:"arrival_time"`
	Gate             *string    `json:"gate"`
	Status           *string    `json:"status"`
}

type employerView struct {
	CompanyName string      `json:"company_name"`
	Role        string      `json:"role"`
	StartDate   model.Date  `json:"start_date"`
	EndDate     *model.Date `json:"end_date"`
	Notes       *string     `json:"notes"`
}

type educationView struct {
	Institution string      `json:"institution"`
	Degree      string      `json:"degree"`
	StartDate   model.Date  `json:"start_date"`
	EndDate     *model.Date `json:"end_date"`
}

type addressView struct {
	Address  string      `json:"address"`
	City     string      `json:"city"`
	State    *string     `json:"state"`
	Country  string      `json:"country"`
	FromDate model.Date  `json:"from_date"`
	ToDate   *model.Date `json:"to_date"`
}

// section is one gathered, projected block of export data, ready for
// any encoder.
type section struct {
	key     string
	list    bool       // false only for personal
	present bool       // personal: whether the record exists
	headers []string   // column names, snake_case, view field order
	rows    [][]string // stringified records, empty cells for nil
	json    any        // the view value(s) for the JSON encoder
}

func personalSection(info *model.PersonalInfo) section {
	s := section{
		key:     SectionPersonal,
		headers: []string{"full_name", "passport_number", "dob"},
	}
	if info == nil {
		return s
	}

	v := personalView{
		FullName:       info.FullName,
		PassportNumber: info.PassportNumber,
		DOB:            info.DOB,
	}
	s.present = true
	s.json = v
	s.rows = [][]string{{strOrEmpty(v.FullName), strOrEmpty(v.PassportNumber), dateOrEmpty(v.DOB)}}
	return s
}

func travelSection(entries []model.TravelHistory) section {
	views := make([]travelView, 0, len(entries))
	rows := make([][]string, 0, len(entries))
	for _, t := range entries {
		v := travelView{Date: t.Date, Destination: t.Destination, Notes: t.Notes}
		views = append(views, v)
		rows = append(rows, []string{v.Date.String(), v.Destination, strOrEmpty(v.Notes)})
	}
	return section{
		key:     SectionTravel,
		list:    true,
		headers: []string{"date", "destination", "notes"},
		rows:    rows,
		json:    views,
	}
}

func flightsSection(flights []model.Flight) section {
	views := make([]flightView, 0, len(flights))
	rows := make([][]string, 0, len(flights))
	for _, f := range flights {
		v := flightView{
			FlightNumber:     f.FlightNumber,
			Airline:          f.Airline,
			DepartureAirport: f.DepartureAirport,
			ArrivalAirport:   f.ArrivalAirport,
			DepartureTime:    f.DepartureTime,
			ArrivalTime:      f.ArrivalTime,
			Gate:             f.Gate,
			Status:           f.Status,
		}
		views = append(views, v)
		rows = append(rows, []string{
			v.FlightNumber,
			v.Airline,
			v.DepartureAirport,
			v.ArrivalAirport,
			timeOrEmpty(v.DepartureTime),
			timeOrEmpty(v.ArrivalTime),
			strOrEmpty(v.Gate),
			strOrEmpty(v.Status),
		})
	}
	return section{
		key:  SectionFlights,
		list: true,
		headers: []string{
			"flight_number", "airline", "departure_airport", "arrival_airport",
			"departure_time", "arrival_time", "gate", "status",
		},
		rows: rows,
		json: views,
	}
}

func employersSection(employers []model.Employer) section {
	views := make([]employerView, 0, len(employers))
	rows := make([][]string, 0, len(employers))
	for _, e := range employers {
		v := employerView{
			CompanyName: e.CompanyName,
			Role:        e.Role,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
			Notes:       e.Notes,
		}
		views = append(views, v)
		rows = append(rows, []string{
			v.CompanyName, v.Role, v.StartDate.String(), dateOrEmpty(v.EndDate), strOrEmpty(v.Notes),
		})
	}
	return section{
		key:     SectionEmployers,
		list:    true,
		headers: []string{"company_name", "role", "start_date", "end_date", "notes"},
		rows:    rows,
		json:    views,
	}
}

func educationSection(entries []model.Education) section {
	views := make([]educationView, 0, len(entries))
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		v := educationView{
			Institution: e.Institution,
			Degree:      e.Degree,
			StartDate:   e.StartDate,
			EndDate:     e.EndDate,
		}
		views = append(views, v)
		rows = append(rows, []string{
			v.Institution, v.Degree, v.StartDate.String(), dateOrEmpty(v.EndDate),
		})
	}
	return section{
		key:     SectionEducation,
		list:    true,
		headers: []string{"institution", "degree", "start_date", "end_date"},
		rows:    rows,
		json:    views,
	}
}

func addressesSection(addresses []model.Address) section {
	views := make([]addressView, 0, len(addresses))
	rows := make([][]string, 0, len(addresses))
	for _, a := range addresses {
		v := addressView{
			Address:  a.Address,
			City:     a.City,
			State:    a.State,
			Country:  a.Country,
			FromDate: a.FromDate,
			ToDate:   a.ToDate,
		}
		views = append(views, v)
		rows = append(rows, []string{
			v.Address, v.City, strOrEmpty(v.State), v.Country, v.FromDate.String(), dateOrEmpty(v.ToDate),
		})
	}
	return section{
		key:     SectionAddresses,
		list:    true,
		headers: []string{"address", "city", "state", "country", "from_date", "to_date"},
		rows:    rows,
		json:    views,
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateOrEmpty(d *model.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
