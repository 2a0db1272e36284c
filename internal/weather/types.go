package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Document is the subset of a Visual Crossing timeline response the kiosk
// consumes. It is replaced wholesale on every successful fetch.
type Document struct {
	ResolvedAddress   Text        `json:"resolvedAddress"`
	Timezone          Text        `json:"timezone"`
	CurrentConditions *Conditions `json:"currentConditions"`
	Days              []Day       `json:"days"`
}

// Conditions is the currentConditions block.
type Conditions struct {
	Icon       Text    `json:"icon"`
	Temp       *Number `json:"temp"`
	Conditions Text    `json:"conditions"`
}

// Day is one entry of the days array.
type Day struct {
	TempMax *Number `json:"tempmax"`
	TempMin *Number `json:"tempmin"`
}

// Reading is the validated view of a Document used by the display.
type Reading struct {
	Icon       string
	Current    float64
	High       float64
	Low        float64
	Conditions string
	Address    string
}

// Text is a display-only string. Anything other than a JSON string decodes
// to "" instead of failing the document.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = ""
		return nil
	}
	*t = Text(s)
	return nil
}

// Number accepts a JSON number or a string holding one.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		*n = Number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// Reading validates the fields the display needs. A missing icon is not an
// error; the icon resolver falls back for empty codes.
func (d *Document) Reading() (Reading, error) {
	if d == nil {
		return Reading{}, &MalformedResponseError{Field: "document"}
	}
	if d.CurrentConditions == nil {
		return Reading{}, &MalformedResponseError{Field: "currentConditions"}
	}
	if d.CurrentConditions.Temp == nil {
		return Reading{}, &MalformedResponseError{Field: "currentConditions.temp"}
	}
	if len(d.Days) == 0 {
		return Reading{}, &MalformedResponseError{Field: "days[0]"}
	}
	today := d.Days[0]
	if today.TempMax == nil {
		return Reading{}, &MalformedResponseError{Field: "days[0].tempmax"}
	}
	if today.TempMin == nil {
		return Reading{}, &MalformedResponseError{Field: "days[0].tempmin"}
	}

	r := Reading{
		Current:    float64(*d.CurrentConditions.Temp),
		High:       float64(*today.TempMax),
		Low:        float64(*today.TempMin),
		Icon:       strings.TrimSpace(string(d.CurrentConditions.Icon)),
		Conditions: string(d.CurrentConditions.Conditions),
		Address:    string(d.ResolvedAddress),
	}
	return r, nil
}
