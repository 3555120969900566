package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestMovie_Coercion(t *testing.T) {
	in, err := Movie([]byte(`{
		"title": "  Heat ",
		"description": "",
		"image_url": "https://img.example/heat.jpg",
		"duration": "120",
		"rating": 4.5,
		"release_date": "1995-12-15",
		"cast": ["Al Pacino", 42, null, " "],
		"genres": "crime",
		"is_active": false
	}`))
	require.NoError(t, err)

	m := in.Movie
	assert.Equal(t, "Heat", m.Title)
	assert.Nil(t, m.Description)
	require.NotNil(t, m.Duration)
	assert.Equal(t, 120, *m.Duration)
	require.NotNil(t, m.Rating)
	assert.Equal(t, 4.5, *m.Rating)
	assert.Equal(t, "1995-12-15", *m.ReleaseDate)
	assert.Equal(t, []string{"Al Pacino", "42"}, m.Cast)
	assert.Equal(t, []string{"crime"}, m.Genres)
	require.NotNil(t, in.SetActive)
	assert.False(t, *in.SetActive)
}

func TestMovie_Defaults(t *testing.T) {
	in, err := Movie([]byte(`{"title":"Heat","duration":"","rating":null,"is_active":"yes"}`))
	require.NoError(t, err)
	assert.Nil(t, in.Movie.Duration)
	assert.Nil(t, in.Movie.Rating)
	assert.Equal(t, []string{}, in.Movie.Cast)
	assert.Equal(t, []string{}, in.Movie.Genres)
	assert.Nil(t, in.SetActive)
}

func TestMovie_RatingKeepsPrecision(t *testing.T) {
	in, err := Movie([]byte(`{"title":"Heat","rating":"4.25"}`))
	require.NoError(t, err)
	require.NotNil(t, in.Movie.Rating)
	assert.Equal(t, 4.25, *in.Movie.Rating)
}

func TestMovie_DescriptionLength(t *testing.T) {
	long := strings.Repeat("a", 65535)
	in, err := Movie([]byte(`{"title":"Heat","description":"` + long + `"}`))
	require.NoError(t, err)
	assert.Len(t, *in.Movie.Description, 65535)

	_, err = Movie([]byte(`{"title":"Heat","description":"` + long + `b"}`))
	require.Error(t, err)
	assert.Equal(t, "Description must be at most 65535 characters", err.Error())
}

func TestMovie_Rejects(t *testing.T) {
	cases := map[string]struct {
		body string
		msg  string
	}{
		"missing title":      {`{"duration":120}`, "Title is required"},
		"blank title":        {`{"title":"   "}`, "Title is required"},
		"title not a string": {`{"title":5}`, "Title must be a string"},
		"negative duration":  {`{"title":"x","duration":"-5"}`, "Duration must be a positive whole number of minutes"},
		"zero duration":      {`{"title":"x","duration":0}`, "Duration must be a positive whole number of minutes"},
		"fraction duration":  {`{"title":"x","duration":90.5}`, "Duration must be a positive whole number of minutes"},
		"text duration":      {`{"title":"x","duration":"long"}`, "Duration must be a positive whole number of minutes"},
		"text rating":        {`{"title":"x","rating":"great"}`, "Rating must be a number between 0 and 5"},
		"rating too high":    {`{"title":"x","rating":7}`, "Rating must be a number between 0 and 5"},
		"bool rating":        {`{"title":"x","rating":true}`, "Rating must be a number between 0 and 5"},
		"bad url":            {`{"title":"x","image_url":"not a url"}`, "Image URL must be a valid URL"},
		"script url":         {`{"title":"x","image_url":"javascript:alert(1)"}`, "Image URL must be a valid URL"},
		"ftp trailer":        {`{"title":"x","trailer_url":"ftp://files.example/heat.mp4"}`, "Trailer URL must be a valid URL"},
		"bad date":           {`{"title":"x","release_date":"15/12/1995"}`, "Release date must be a valid date (YYYY-MM-DD)"},
		"object cast":        {`{"title":"x","cast":{"a":1}}`, "Cast must be a list of strings"},
		"nested genres":      {`{"title":"x","genres":[["a"]]}`, "Genres must be a list of strings"},
		"not json":           {`{`, "Invalid JSON body"},
		"null body":          {`null`, "Invalid JSON body"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Movie([]byte(tc.body))
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestSignUp(t *testing.T) {
	ok := SignUpInput{Email: " Ann@Example.com ", Password: "secret1", FullName: "Ann", Phone: strp("0123456789")}
	require.NoError(t, SignUp(&ok))
	assert.Equal(t, "ann@example.com", ok.Email)

	blankPhone := SignUpInput{Email: "a@b.co", Password: "secret1", FullName: "Ann", Phone: strp("  ")}
	require.NoError(t, SignUp(&blankPhone))
	assert.Nil(t, blankPhone.Phone)

	cases := map[string]struct {
		in  SignUpInput
		msg string
	}{
		"no email":    {SignUpInput{Password: "secret1", FullName: "Ann"}, "Email is required"},
		"bad email":   {SignUpInput{Email: "nope", Password: "secret1", FullName: "Ann"}, "Please enter a valid email"},
		"short pass":  {SignUpInput{Email: "a@b.co", Password: "12345", FullName: "Ann"}, "Password must be at least 6 characters"},
		"short name":  {SignUpInput{Email: "a@b.co", Password: "secret1", FullName: "A"}, "Full name must be at least 2 characters"},
		"short phone": {SignUpInput{Email: "a@b.co", Password: "secret1", FullName: "Ann", Phone: strp("12345")}, "Please enter a valid 10-digit phone number"},
		"alpha phone": {SignUpInput{Email: "a@b.co", Password: "secret1", FullName: "Ann", Phone: strp("01234abcde")}, "Please enter a valid 10-digit phone number"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			in := tc.in
			err := SignUp(&in)
			require.Error(t, err)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestProfile(t *testing.T) {
	clearPhone := ProfileInput{Phone: strp("")}
	require.NoError(t, Profile(&clearPhone))
	assert.Equal(t, "", *clearPhone.Phone)

	blank := ProfileInput{FullName: strp("  ")}
	assert.EqualError(t, Profile(&blank), "Full name is required")

	bad := ProfileInput{Phone: strp("123")}
	assert.EqualError(t, Profile(&bad), "Please enter a valid 10-digit phone number")
}

func TestSignIn(t *testing.T) {
	in := SignInInput{Email: "A@B.CO", Password: ""}
	assert.EqualError(t, SignIn(&in), "Password is required")
	assert.Equal(t, "a@b.co", in.Email)
}
