package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Metric keys the panel gives special treatment beyond the card grid:
// temperature feeds the rolling history chart, humidity feeds the gauge.
// Every other key only produces a card.
const (
	KeyTemperature = "temperature"
	KeyHumidity    = "humidity"
)

// Value is a single sensor reading. The gateway reports either a number or a
// string per metric key; numbers keep their literal text so they render
// exactly as sent (24.5 stays "24.5", 60 stays "60", never "60.00"). Anything
// else in the payload is tolerated and carried as its raw JSON text.
type Value struct {
	text  string
	num   float64
	isNum bool
}

// NumberValue constructs a numeric Value from its literal text.
func NumberValue(literal string, f float64) Value {
	return Value{text: literal, num: f, isNum: true}
}

// StringValue constructs a string Value.
func StringValue(s string) Value {
	return Value{text: s}
}

// String returns the reading's natural display text.
func (v Value) String() string { return v.text }

// Number returns the reading as a float64 and whether it was numeric.
func (v Value) Number() (float64, bool) { return v.num, v.isNum }

func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Value{text: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		f, ferr := n.Float64()
		if ferr != nil {
			*v = Value{text: n.String()}
			return nil
		}
		*v = Value{text: n.String(), num: f, isNum: true}
		return nil
	}

	// Booleans, nulls and structured values are carried as raw text.
	*v = Value{text: string(bytes.TrimSpace(data))}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return []byte(v.text), nil
	}
	return json.Marshal(v.text)
}

// Reading is one metric in a sensor snapshot.
type Reading struct {
	Key   string
	Value Value
}

// SensorSnapshot is the full scalar state of the gateway at one fetch. It is
// an ordered sequence of readings, not a map: the gateway's JSON key order is
// preserved end to end, and the card grid renders in exactly that order.
// Snapshots carry no identity; each fetch fully replaces the previous one.
type SensorSnapshot struct {
	Readings []Reading
}

// Len reports the number of readings in the snapshot.
func (s *SensorSnapshot) Len() int { return len(s.Readings) }

// Get returns the reading for key. Absent keys are a normal condition, never
// an error: the caller simply omits the corresponding widget this cycle.
func (s *SensorSnapshot) Get(key string) (Value, bool) {
	for _, r := range s.Readings {
		if r.Key == key {
			return r.Value, true
		}
	}
	return Value{}, false
}

func (s *SensorSnapshot) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sensor payload is not a JSON object")
	}

	s.Readings = s.Readings[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in sensor payload", keyTok)
		}

		var v Value
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("decoding value for %q: %w", key, err)
		}
		s.Readings = append(s.Readings, Reading{Key: key, Value: v})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func (s SensorSnapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range s.Readings {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// StatusConnected is the single status token the gateway reports for a
// healthy device link.
const StatusConnected = "connected"

// DeviceRecord is one row of the gateway's device list. Records are recreated
// wholesale on every fetch; absent fields decode to empty strings.
type DeviceRecord struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Protocol    string `json:"protocol"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

// Connected reports whether the device's status is the exact "connected"
// token. Classification fails safe: every other value, including casing and
// unicode lookalikes, counts as not connected.
func (d DeviceRecord) Connected() bool { return d.Status == StatusConnected }
