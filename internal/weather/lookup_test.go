package weather

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "cities": {
    "paris": {"name": "Paris", "icon": "fa-cloud-sun", "temperature": 18, "feelsLike": 17,
              "description": "Partly cloudy", "windSpeed": "12 km/h", "humidity": "65%", "visibility": "10 km"},
    "nyc":   {"name": "New York City", "icon": "fa-sun", "temperature": 22, "feelsLike": 23,
              "description": "Sunny", "windSpeed": "9 km/h", "humidity": "48%", "visibility": "16 km"},
    "oslo":  {"name": "Oslo", "icon": "fa-snowflake", "temperature": -3, "feelsLike": -8,
              "description": "Snow", "windSpeed": 20, "humidity": "90%"}
  }
}`

func sampleDataset(t *testing.T) *Dataset {
	t.Helper()
	ds, err := ParseDocument(strings.NewReader(sampleDocument))
	require.NoError(t, err)
	return ds
}

func TestLookupReturnsStoredRecordForEveryKey(t *testing.T) {
	ds := sampleDataset(t)

	for key, want := range ds.All() {
		got, err := Lookup(key, ds)
		require.NoError(t, err, key)
		require.Equal(t, want, got, key)
	}
}

func TestLookupIsCaseAndWhitespaceInsensitive(t *testing.T) {
	ds := sampleDataset(t)

	a, err := Lookup("Paris", ds)
	require.NoError(t, err)
	b, err := Lookup("  paris  ", ds)
	require.NoError(t, err)
	c, err := Lookup("\tPARIS\n", ds)
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.Equal(t, a, c)
	require.Equal(t, "Paris", a.Name)
}

func TestLookupUsesKeyNotDisplayName(t *testing.T) {
	ds := sampleDataset(t)

	rec, err := Lookup("NYC", ds)
	require.NoError(t, err)
	require.Equal(t, "New York City", rec.Name)

	_, err = Lookup("New York City", ds)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLookupEmptyQuery(t *testing.T) {
	ds := sampleDataset(t)

	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := Lookup(in, ds)
		require.ErrorIs(t, err, ErrEmptyQuery, "%q", in)

		var le *LookupError
		require.True(t, errors.As(err, &le))
		require.Equal(t, KindEmptyQuery, le.Kind)
		require.Equal(t, "Please enter a city name.", le.Error())
	}
}

func TestLookupEmptyQueryBeatsNotReady(t *testing.T) {
	_, err := Lookup("  ", nil)
	require.ErrorIs(t, err, ErrEmptyQuery)
}

func TestLookupNotReadyWithoutDataset(t *testing.T) {
	_, err := Lookup("paris", nil)
	require.ErrorIs(t, err, ErrNotReady)
	require.Equal(t, "Data has not loaded yet. Please wait...", err.Error())
}

func TestLookupNotFoundEchoesNormalizedName(t *testing.T) {
	ds := sampleDataset(t)

	for _, in := range []string{"tokyo", "  Tokyo ", "BERLIN", "new york"} {
		_, err := Lookup(in, ds)
		require.ErrorIs(t, err, ErrNotFound)

		var le *LookupError
		require.True(t, errors.As(err, &le))
		require.Equal(t, KindNotFound, le.Kind)
		require.Equal(t, strings.ToLower(strings.TrimSpace(in)), le.City)
	}
}

func TestLookupNotFoundMessage(t *testing.T) {
	_, err := Lookup("tokyo", sampleDataset(t))
	require.EqualError(t, err, `No data found for "tokyo". Please try a different city.`)
}

func TestLookupEndToEnd(t *testing.T) {
	ds := NewDataset([]KeyedRecord{
		{Key: "paris", Record: Record{Name: "Paris", Temperature: DegreesOf(18)}},
	})

	rec, err := Lookup("  PARIS ", ds)
	require.NoError(t, err)
	require.Equal(t, "Paris", rec.Name)
	require.Equal(t, 18.0, rec.Temperature.Value)

	_, err = Lookup("tokyo", ds)
	var le *LookupError
	require.ErrorAs(t, err, &le)
	require.Equal(t, KindNotFound, le.Kind)
	require.Equal(t, "tokyo", le.City)

	_, err = Lookup("", ds)
	require.ErrorIs(t, err, ErrEmptyQuery)
	require.Equal(t, 1, ds.Len())
}

func TestLookupKeepsMissingFieldsPermissive(t *testing.T) {
	rec, err := Lookup("oslo", sampleDataset(t))
	require.NoError(t, err)
	require.False(t, rec.Visibility.Valid)
	require.Equal(t, MissingValue, rec.Visibility.String())
	require.Equal(t, "20", rec.WindSpeed.String())
}
