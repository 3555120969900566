package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-cms/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{User: "cms", Pass: "s3cret", Host: "db", Port: "3307", Name: "movies"})

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "cms", parsed.User)
	assert.Equal(t, "s3cret", parsed.Passwd)
	assert.Equal(t, "db:3307", parsed.Addr)
	assert.Equal(t, "movies", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}

func TestMigrationsEmbedded(t *testing.T) {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"migrations/00001_accounts_users.sql",
		"migrations/00002_movies.sql",
		"migrations/00003_booking_shapes.sql",
		"migrations/00004_movie_rating_precision.sql",
	}, names)
}

func TestMovieColumnsWidened(t *testing.T) {
	raw, err := fs.ReadFile(migrations, "migrations/00004_movie_rating_precision.sql")
	require.NoError(t, err)
	up, _, found := strings.Cut(string(raw), "-- +goose Down")
	require.True(t, found)
	assert.Regexp(t, `MODIFY rating\s+DOUBLE\s+NULL`, up)
	assert.Regexp(t, `MODIFY description\s+MEDIUMTEXT\s+NULL`, up)
}
