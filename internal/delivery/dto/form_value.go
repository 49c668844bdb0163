package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FormValue is a scalar that arrives either as a JSON number or as a string,
// the latter being what HTML forms submit.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

// Float parses the value; an empty value is zero.
func (v FormValue) Float() (float64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(string(v), 64)
}

// Int parses the value and drops any fraction; an empty value is zero.
func (v FormValue) Int() (int, error) {
	f, err := v.Float()
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// CSVList is a list that arrives either as a JSON array or as one
// comma separated string. Items are trimmed and empty items dropped.
type CSVList []string

func (l *CSVList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var raw []string
	switch {
	case bytes.Equal(data, []byte("null")):
	case len(data) > 0 && data[0] == '[':
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.Split(s, ",")
	}

	items := make([]string, 0, len(raw))
	for _, item := range raw {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*l = items
	return nil
}

// Split breaks every item on commas, trimming parts and dropping empty ones.
// Forms send a history either as one comma separated value or repeated.
func (l CSVList) Split() CSVList {
	items := make(CSVList, 0, len(l))
	for _, item := range l {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
	}
	return items
}
