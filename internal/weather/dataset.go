package weather

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
)

// ErrNoCities is returned when a document lacks the top-level cities object.
var ErrNoCities = errors.New("document has no cities object")

// KeyedRecord pairs a city key with its record when building a Dataset.
type KeyedRecord struct {
	Key    string
	Record Record
}

// Dataset maps city keys to records. It keeps the order in which keys
// appeared in the source and is read-only once built.
type Dataset struct {
	keys        []string
	records     map[string]Record
	fingerprint string
}

// NewDataset builds a Dataset from entries in source order. A repeated key
// keeps its first position and takes the last record.
func NewDataset(entries []KeyedRecord) *Dataset {
	ds := &Dataset{
		keys:    make([]string, 0, len(entries)),
		records: make(map[string]Record, len(entries)),
	}
	for _, e := range entries {
		if _, ok := ds.records[e.Key]; !ok {
			ds.keys = append(ds.keys, e.Key)
		}
		ds.records[e.Key] = e.Record
	}
	ds.fingerprint = ds.computeFingerprint()
	return ds
}

// ParseDocument decodes a weather document of the form {"cities": {...}}.
func ParseDocument(r io.Reader) (*Dataset, error) {
	var doc struct {
		Cities json.RawMessage `json:"cities"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if len(doc.Cities) == 0 || bytes.Equal(bytes.TrimSpace(doc.Cities), []byte("null")) {
		return nil, ErrNoCities
	}

	// Walk the object token by token so the key order survives.
	dec := json.NewDecoder(bytes.NewReader(doc.Cities))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode cities: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("decode cities: expected object, got %v", tok)
	}

	var entries []KeyedRecord
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode cities: %w", err)
		}
		key, _ := tok.(string)

		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode city %q: %w", key, err)
		}
		entries = append(entries, KeyedRecord{Key: key, Record: rec})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode cities: %w", err)
	}

	return NewDataset(entries), nil
}

// Len returns the number of cities.
func (d *Dataset) Len() int {
	return len(d.keys)
}

// Get returns the record stored under key. The key is used as is.
func (d *Dataset) Get(key string) (Record, bool) {
	rec, ok := d.records[key]
	return rec, ok
}

// Cities lists every entry in source order. Each call returns a fresh slice.
func (d *Dataset) Cities() []CityEntry {
	out := make([]CityEntry, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, CityEntry{Key: k, Name: d.records[k].Name})
	}
	return out
}

// All iterates over keys and records in source order.
func (d *Dataset) All() iter.Seq2[string, Record] {
	return func(yield func(string, Record) bool) {
		for _, k := range d.keys {
			if !yield(k, d.records[k]) {
				return
			}
		}
	}
}

// Fingerprint identifies the dataset content, including key order.
func (d *Dataset) Fingerprint() string {
	return d.fingerprint
}

func (d *Dataset) computeFingerprint() string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for k, rec := range d.All() {
		// Encoding a Record cannot fail; both custom marshalers are total.
		_ = enc.Encode(k)
		_ = enc.Encode(rec)
	}
	return hex.EncodeToString(h.Sum(nil))
}
