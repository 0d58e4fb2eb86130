package models

// Vehicle is the car an instructor teaches in.
type Vehicle struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year,omitempty"`
	Plate        string `json:"plate"`
	Transmission string `json:"transmission"`
	EngineType   string `json:"engineType"`
}

// Instructor is a bookable instructor as returned by the core API.
// HourlyRate is a pointer: an instructor without a published rate cannot
// be booked and pricing must fail loudly rather than default.
type Instructor struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Email                 string   `json:"email"`
	Phone                 string   `json:"phone,omitempty"`
	Status                string   `json:"status"`
	Vehicle               *Vehicle `json:"vehicle,omitempty"`
	HourlyRate            *float64 `json:"hourlyRate,omitempty"`
	State                 string   `json:"state,omitempty"`
	City                  string   `json:"city,omitempty"`
	NeighborhoodTeach     string   `json:"neighborhoodTeach,omitempty"`
	Gender                string   `json:"gender,omitempty"`
	CompletedLessonsCount int      `json:"completedLessonsCount,omitempty"`
	Rating                float64  `json:"rating,omitempty"`
	Bio                   string   `json:"bio,omitempty"`
}

// InstructorFilter describes the search filters for the approved list.
type InstructorFilter struct {
	State             string
	City              string
	NeighborhoodTeach string
	Gender            string
	Transmission      string
	EngineType        string
}
