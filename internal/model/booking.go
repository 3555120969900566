package model

import "time"

// The types below mirror the booking side of the schema.  No handler reads
// or writes them yet; they exist so that the tables created by the
// migrations have a Go shape.

// ScreenType enumerates showtimes.screen_type.
type ScreenType string

const (
	ScreenStandard ScreenType = "standard"
	ScreenIMAX     ScreenType = "imax"
	Screen3D       ScreenType = "3d"
	ScreenVIP      ScreenType = "vip"
)

func (s ScreenType) Valid() bool {
	switch s {
	case ScreenStandard, ScreenIMAX, Screen3D, ScreenVIP:
		return true
	}
	return false
}

// BookingStatus enumerates bookings.booking_status.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingRefunded  BookingStatus = "refunded"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingConfirmed, BookingCancelled, BookingRefunded:
		return true
	}
	return false
}

// SnackCategory enumerates snacks.category.
type SnackCategory string

const (
	SnackFood  SnackCategory = "snack"
	SnackDrink SnackCategory = "drink"
	SnackCombo SnackCategory = "combo"
)

func (c SnackCategory) Valid() bool {
	switch c {
	case SnackFood, SnackDrink, SnackCombo:
		return true
	}
	return false
}

// Theater is a row of `theaters`.
type Theater struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Address    *string   `json:"address"`
	Distance   *string   `json:"distance"`
	TotalSeats int       `json:"total_seats"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Showtime is a row of `showtimes`.
type Showtime struct {
	ID             string     `json:"id"`
	MovieID        string     `json:"movie_id"`
	TheaterID      string     `json:"theater_id"`
	ShowDate       string     `json:"show_date"` // YYYY-MM-DD
	ShowTime       string     `json:"show_time"` // HH:MM:SS
	TicketPrice    float64    `json:"ticket_price"`
	AvailableSeats int        `json:"available_seats"`
	ScreenType     ScreenType `json:"screen_type"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Booking is a row of `bookings`.  Movie and theater names are copied at
// booking time so the record survives catalog edits.
type Booking struct {
	ID               string        `json:"id"`
	BookingReference string        `json:"booking_reference"`
	UserID           *string       `json:"user_id"`
	ShowtimeID       *string       `json:"showtime_id"`
	MovieTitle       string        `json:"movie_title"`
	TheaterName      string        `json:"theater_name"`
	ShowDate         string        `json:"show_date"`
	ShowTime         string        `json:"show_time"`
	Seats            []string      `json:"seats"`
	TicketCount      int           `json:"ticket_count"`
	TicketTotal      float64       `json:"ticket_total"`
	SnacksTotal      float64       `json:"snacks_total"`
	BookingFee       float64       `json:"booking_fee"`
	TaxAmount        float64       `json:"tax_amount"`
	GrandTotal       float64       `json:"grand_total"`
	CustomerEmail    *string       `json:"customer_email"`
	CustomerPhone    *string       `json:"customer_phone"`
	BookingStatus    BookingStatus `json:"booking_status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Snack is a row of `snacks`.
type Snack struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Price       float64       `json:"price"`
	ImageEmoji  *string       `json:"image_emoji"`
	Category    SnackCategory `json:"category"`
	IsAvailable bool          `json:"is_available"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// BookingSnack is a row of `booking_snacks`.
type BookingSnack struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	SnackID    *string   `json:"snack_id"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}
