package market

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

const (
	dailySeriesKey = "Time Series (Daily)"
	closeKey       = "4. close"
)

// Quote is the provider payload for one symbol, or the reason it is missing.
type Quote struct {
	Symbol string
	Data   json.RawMessage
	Err    string
}

// Snapshot keeps quotes in the order their symbols were fetched.
type Snapshot []Quote

// Set adds a quote. A symbol seen before keeps its position and takes the new value.
func (s *Snapshot) Set(q Quote) {
	for i := range *s {
		if (*s)[i].Symbol == q.Symbol {
			(*s)[i] = q
			return
		}
	}
	*s = append(*s, q)
}

// MarshalJSON renders the snapshot as an object keyed by symbol in fetch order.
// Failed symbols render as {"error": "..."}.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, q := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(q.Symbol)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := q.value()
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (q Quote) value() ([]byte, error) {
	if q.Err != "" || len(q.Data) == 0 {
		msg := q.Err
		if msg == "" {
			msg = "no data"
		}
		return json.Marshal(map[string]string{"error": msg})
	}
	return q.Data, nil
}

// LatestClose reports the close of the first date in the daily series.
//
// The first date is taken in the order the provider wrote the keys, which is
// newest first for Alpha Vantage. The series is deliberately not re-sorted.
func (q Quote) LatestClose() (date string, close string, ok bool) {
	if q.Err != "" || len(q.Data) == 0 {
		return "", "", false
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(q.Data, &top); err != nil {
		return "", "", false
	}

	series, found := top[dailySeriesKey]
	if !found {
		return "", "", false
	}

	date, day, err := firstEntry(series)
	if err != nil {
		return "", "", false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(day, &fields); err != nil {
		return "", "", false
	}

	raw, found := fields[closeKey]
	if !found {
		return "", "", false
	}

	return date, scalarText(raw), true
}

var errNotObject = errors.New("not a JSON object")

// firstEntry returns the first key/value pair of a JSON object as written.
func firstEntry(raw json.RawMessage) (string, json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return "", nil, err
	}
	if delim, isDelim := tok.(json.Delim); !isDelim || delim != '{' {
		return "", nil, errNotObject
	}

	if !dec.More() {
		return "", nil, errors.New("empty object")
	}

	tok, err = dec.Token()
	if err != nil {
		return "", nil, err
	}
	key, _ := tok.(string)

	var value json.RawMessage
	if err := dec.Decode(&value); err != nil {
		return "", nil, err
	}

	return key, value, nil
}

func scalarText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
