package validate

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/iliyamo/movie-ticket-cms/internal/model"
)

// MovieInput is a checked create/update payload.
type MovieInput struct {
	Movie model.Movie
	// SetActive is non-nil only when the body carried is_active as a JSON
	// boolean.
	SetActive *bool
}

// movieFields holds the string columns checked by tag rules once the raw
// payload has been coerced.
type movieFields struct {
	Title       string  `label:"Title" validate:"required,max=255"`
	Description *string `label:"Description" validate:"omitempty,max=65535"`
	ImageURL    *string `label:"Image URL" validate:"omitempty,http_url,max=2048"`
	BackdropURL *string `label:"Backdrop URL" validate:"omitempty,http_url,max=2048"`
	TrailerURL  *string `label:"Trailer URL" validate:"omitempty,http_url,max=2048"`
	ReleaseDate *string `label:"Release date" validate:"omitempty,datetime=2006-01-02"`
	Director    *string `label:"Director" validate:"omitempty,max=255"`
}

// Movie parses a JSON movie body.  Numbers may arrive as JSON numbers or
// numeric strings; cast and genres may arrive as arrays or single values.
func Movie(body []byte) (MovieInput, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return MovieInput{}, &Error{Field: "body", Message: "Invalid JSON body"}
	}

	var (
		m   model.Movie
		err error
	)
	title, err := text(raw["title"], "Title")
	if err != nil {
		return MovieInput{}, err
	}
	f := movieFields{}
	if title != nil {
		f.Title = *title
	}
	textFields := []struct {
		key   string
		label string
		dst   **string
	}{
		{"description", "Description", &f.Description},
		{"image_url", "Image URL", &f.ImageURL},
		{"backdrop_url", "Backdrop URL", &f.BackdropURL},
		{"trailer_url", "Trailer URL", &f.TrailerURL},
		{"release_date", "Release date", &f.ReleaseDate},
		{"director", "Director", &f.Director},
	}
	for _, tf := range textFields {
		if *tf.dst, err = text(raw[tf.key], tf.label); err != nil {
			return MovieInput{}, err
		}
	}
	if err := Struct(&f); err != nil {
		return MovieInput{}, err
	}

	m.Title, m.Description = f.Title, f.Description
	m.ImageURL, m.BackdropURL, m.TrailerURL = f.ImageURL, f.BackdropURL, f.TrailerURL
	m.ReleaseDate, m.Director = f.ReleaseDate, f.Director

	if m.Duration, err = duration(raw["duration"]); err != nil {
		return MovieInput{}, err
	}
	if m.Rating, err = rating(raw["rating"]); err != nil {
		return MovieInput{}, err
	}
	if m.Cast, err = list(raw["cast"], "Cast"); err != nil {
		return MovieInput{}, err
	}
	if m.Genres, err = list(raw["genres"], "Genres"); err != nil {
		return MovieInput{}, err
	}

	in := MovieInput{Movie: m}
	var active bool
	if rm, ok := raw["is_active"]; ok && json.Unmarshal(rm, &active) == nil && !isNull(rm) {
		in.SetActive = &active
	}
	return in, nil
}

func isNull(rm json.RawMessage) bool {
	return len(rm) == 0 || bytes.Equal(bytes.TrimSpace(rm), []byte("null"))
}

// text reads an optional string.  Missing, null and blank all yield nil.
func text(rm json.RawMessage, label string) (*string, error) {
	if isNull(rm) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(rm, &s); err != nil {
		return nil, &Error{Field: label, Message: label + " must be a string"}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return &s, nil
}

// number reads a JSON number or numeric string.  ok is false for any
// other value, and v is nil when the field is absent, null or blank.
func number(rm json.RawMessage) (v *float64, ok bool) {
	if isNull(rm) {
		return nil, true
	}
	lit := strings.TrimSpace(string(rm))
	if strings.HasPrefix(lit, `"`) {
		var s string
		if err := json.Unmarshal(rm, &s); err != nil {
			return nil, false
		}
		lit = strings.TrimSpace(s)
		if lit == "" {
			return nil, true
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return &f, true
}

func duration(rm json.RawMessage) (*int, error) {
	f, ok := number(rm)
	if !ok || (f != nil && (*f <= 0 || *f != math.Trunc(*f) || *f > math.MaxInt32)) {
		return nil, &Error{Field: "Duration", Message: "Duration must be a positive whole number of minutes"}
	}
	if f == nil {
		return nil, nil
	}
	d := int(*f)
	return &d, nil
}

func rating(rm json.RawMessage) (*float64, error) {
	f, ok := number(rm)
	if !ok || (f != nil && (*f < 0 || *f > 5)) {
		return nil, &Error{Field: "Rating", Message: "Rating must be a number between 0 and 5"}
	}
	return f, nil
}

// list coerces an array or a single value into a list of strings.  Array
// elements are stringified, nulls and blanks are dropped.
func list(rm json.RawMessage, label string) ([]string, error) {
	out := []string{}
	if isNull(rm) {
		return out, nil
	}
	bad := &Error{Field: label, Message: label + " must be a list of strings"}
	lit := bytes.TrimSpace(rm)
	if len(lit) == 0 || lit[0] != '[' {
		s, ok := scalar(lit)
		if !ok {
			return nil, bad
		}
		if s != "" {
			out = append(out, s)
		}
		return out, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(lit, &elems); err != nil {
		return nil, bad
	}
	for _, e := range elems {
		if isNull(e) {
			continue
		}
		s, ok := scalar(bytes.TrimSpace(e))
		if !ok {
			return nil, bad
		}
		if s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// scalar stringifies a JSON string, number or boolean.
func scalar(lit []byte) (string, bool) {
	switch {
	case len(lit) == 0:
		return "", false
	case lit[0] == '"':
		var s string
		if err := json.Unmarshal(lit, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	case lit[0] == '{' || lit[0] == '[':
		return "", false
	default:
		// numbers and booleans keep their literal form
		return string(lit), true
	}
}
