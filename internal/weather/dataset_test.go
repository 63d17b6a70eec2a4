package weather

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCitiesListsEveryKeyOnceInDocumentOrder(t *testing.T) {
	ds := sampleDataset(t)

	want := []CityEntry{
		{Key: "paris", Name: "Paris"},
		{Key: "nyc", Name: "New York City"},
		{Key: "oslo", Name: "Oslo"},
	}
	if diff := cmp.Diff(want, ds.Cities()); diff != "" {
		t.Fatalf("Cities() mismatch (-want +got):\n%s", diff)
	}

	seen := map[string]bool{}
	for _, c := range ds.Cities() {
		require.False(t, seen[c.Key], "duplicate key %s", c.Key)
		seen[c.Key] = true
		_, ok := ds.Get(c.Key)
		require.True(t, ok)
	}
	require.Len(t, seen, ds.Len())
}

func TestCitiesIsRestartable(t *testing.T) {
	ds := sampleDataset(t)

	first := ds.Cities()
	first[0].Name = "mutated"

	if diff := cmp.Diff(sampleDataset(t).Cities(), ds.Cities()); diff != "" {
		t.Fatalf("second enumeration changed (-want +got):\n%s", diff)
	}

	var keys []string
	for k := range ds.All() {
		keys = append(keys, k)
		break
	}
	require.Equal(t, []string{"paris"}, keys)
}

func TestNewDatasetDuplicateKeyKeepsFirstPositionLastValue(t *testing.T) {
	ds := NewDataset([]KeyedRecord{
		{Key: "a", Record: Record{Name: "A1"}},
		{Key: "b", Record: Record{Name: "B"}},
		{Key: "a", Record: Record{Name: "A2"}},
	})

	require.Equal(t, 2, ds.Len())
	require.Equal(t, []CityEntry{{Key: "a", Name: "A2"}, {Key: "b", Name: "B"}}, ds.Cities())
}

func TestParseDocumentRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"not json":      `{"cities": `,
		"no cities":     `{"towns": {}}`,
		"null cities":   `{"cities": null}`,
		"cities array":  `{"cities": []}`,
		"bad degrees":   `{"cities": {"x": {"name": "X", "temperature": "warm"}}}`,
		"bad magnitude": `{"cities": {"x": {"name": "X", "humidity": true}}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDocument(strings.NewReader(doc))
			require.Error(t, err)
		})
	}
}

func TestParseDocumentEmptyCities(t *testing.T) {
	ds, err := ParseDocument(strings.NewReader(`{"cities": {}}`))
	require.NoError(t, err)
	require.Equal(t, 0, ds.Len())
	require.Empty(t, ds.Cities())
}

func TestFingerprintTracksContentAndOrder(t *testing.T) {
	a := NewDataset([]KeyedRecord{{Key: "x", Record: Record{Name: "X"}}, {Key: "y", Record: Record{Name: "Y"}}})
	b := NewDataset([]KeyedRecord{{Key: "x", Record: Record{Name: "X"}}, {Key: "y", Record: Record{Name: "Y"}}})
	c := NewDataset([]KeyedRecord{{Key: "y", Record: Record{Name: "Y"}}, {Key: "x", Record: Record{Name: "X"}}})
	d := NewDataset([]KeyedRecord{{Key: "x", Record: Record{Name: "X"}}, {Key: "y", Record: Record{Name: "Y", Temperature: DegreesOf(1)}}})

	require.Equal(t, a.Fingerprint(), b.Fingerprint())
	require.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	require.NotEqual(t, a.Fingerprint(), d.Fingerprint())
}

func TestDegreesDecoding(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"temperature": "18.5", "feelsLike": null}`), &r))
	require.Equal(t, DegreesOf(18.5), r.Temperature)
	require.False(t, r.FeelsLike.Valid)
	require.Equal(t, "18.5", r.Temperature.String())
	require.Equal(t, MissingValue, r.FeelsLike.String())

	out, err := json.Marshal(r)
	require.NoError(t, err)
	require.Contains(t, string(out), `"temperature":18.5`)
	require.Contains(t, string(out), `"feelsLike":null`)
	require.Contains(t, string(out), `"visibility":null`)
}
