package weather

import "github.com/i474232898/weather-lookup/internal/common"

// Lookup resolves raw user input against ds. The input is trimmed and
// lowercased before it is matched against the dataset keys. A nil ds means
// the dataset has not been loaded yet.
//
// Failures are always *LookupError, checked in this order: empty query,
// dataset not loaded, unknown key.
func Lookup(raw string, ds *Dataset) (Record, error) {
	key := common.NormalizeCityKey(raw)
	if key == "" {
		return Record{}, &LookupError{Kind: KindEmptyQuery}
	}
	if ds == nil {
		return Record{}, &LookupError{Kind: KindNotReady}
	}

	rec, ok := ds.Get(key)
	if !ok {
		return Record{}, &LookupError{Kind: KindNotFound, City: key}
	}
	return rec, nil
}
