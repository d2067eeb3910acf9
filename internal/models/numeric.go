package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Amount is a decimal money value sent either as a JSON number or a
// numeric string ("45.50").
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	v, err := parseJSONNumber(data)
	if err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// UnmarshalBSONValue also reads amounts stored as strings.
func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v, err := parseBSONNumber(t, data)
	if err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// Rank is a whole-number position such as a university's world rank,
// accepted as a JSON number or a numeric string.
type Rank int

func (r *Rank) UnmarshalJSON(data []byte) error {
	v, err := parseJSONNumber(data)
	if err != nil {
		return err
	}
	return r.set(v)
}

func (r *Rank) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v, err := parseBSONNumber(t, data)
	if err != nil {
		return err
	}
	return r.set(v)
}

func (r *Rank) set(v float64) error {
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return fmt.Errorf("invalid rank %v", v)
	}
	*r = Rank(v)
	return nil
}

// parseJSONNumber reads a number, a numeric string, "" or null (both zero).
func parseJSONNumber(data []byte) (float64, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return 0, nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, err
		}
		return parseNumericString(s)
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, err
	}
	return v, nil
}

func parseBSONNumber(t bsontype.Type, data []byte) (float64, error) {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Double:
		return rv.Double(), nil
	case bsontype.Int32:
		return float64(rv.Int32()), nil
	case bsontype.Int64:
		return float64(rv.Int64()), nil
	case bsontype.Decimal128:
		return parseNumericString(rv.Decimal128().String())
	case bsontype.String:
		return parseNumericString(rv.StringValue())
	case bsontype.Null, bsontype.Undefined:
		return 0, nil
	default:
		return 0, fmt.Errorf("cannot decode %s as a number", t)
	}
}

func parseNumericString(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
