package domain

import "time"

// Measurement is a persisted sensor reading. ID and Timestamp are always
// set once the record has been stored: the store assigns the identity and
// the service fills a missing timestamp with the current UTC time.
type Measurement struct {
	ID        int64     `json:"id"`
	DeviceID  string    `json:"device_id"`
	Sensor    string    `json:"sensor"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"ts"`
}

// MeasurementInput carries only the client-settable fields of a
// measurement. Identity and other server-owned fields never appear here.
type MeasurementInput struct {
	DeviceID  string
	Sensor    string
	Value     float64
	Timestamp *time.Time
}

// NewMeasurement builds the transient record to hand to the store,
// defaulting the timestamp to now when the client omitted it. All
// timestamps are normalized to UTC.
func NewMeasurement(in MeasurementInput, now time.Time) Measurement {
	ts := now
	if in.Timestamp != nil {
		ts = *in.Timestamp
	}
	return Measurement{
		DeviceID:  in.DeviceID,
		Sensor:    in.Sensor,
		Value:     in.Value,
		Timestamp: ts.UTC(),
	}
}
