package sqlite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// encodeAttributes stores extra record fields as a JSON object so the column
// stays schema-free.
//
// Integers of any width are written as integer literals and floats always
// carry a fraction or exponent, so decodeAttributes can tell them apart:
// integers come back as int64 (uint64 above math.MaxInt64) and floats as
// float64.
func encodeAttributes(attributes map[string]any) ([]byte, error) {
	if len(attributes) == 0 {
		return nil, nil
	}
	tagged, err := tagNumbers(attributes)
	if err != nil {
		return nil, fmt.Errorf("encode fingerprint attributes: %w", err)
	}
	payload, err := json.Marshal(tagged)
	if err != nil {
		return nil, fmt.Errorf("encode fingerprint attributes: %w", err)
	}
	return payload, nil
}

func decodeAttributes(payload []byte) (map[string]any, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()
	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	value, err := untagNumbers(raw)
	if err != nil {
		return nil, err
	}
	attributes, _ := value.(map[string]any)
	return attributes, nil
}

func tagNumbers(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			tagged, err := tagNumbers(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out[key] = tagged
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			tagged, err := tagNumbers(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = tagged
		}
		return out, nil
	case int:
		return json.Number(strconv.FormatInt(int64(v), 10)), nil
	case int8:
		return json.Number(strconv.FormatInt(int64(v), 10)), nil
	case int16:
		return json.Number(strconv.FormatInt(int64(v), 10)), nil
	case int32:
		return json.Number(strconv.FormatInt(int64(v), 10)), nil
	case int64:
		return json.Number(strconv.FormatInt(v, 10)), nil
	case uint:
		return json.Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint8:
		return json.Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint16:
		return json.Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint32:
		return json.Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint64:
		return json.Number(strconv.FormatUint(v, 10)), nil
	case float32:
		return floatNumber(float64(v))
	case float64:
		return floatNumber(v)
	default:
		return value, nil
	}
}

func floatNumber(v float64) (any, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("unsupported float value %v", v)
	}
	literal := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(literal, ".eE") {
		literal += ".0"
	}
	return json.Number(literal), nil
}

func untagNumbers(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			untagged, err := untagNumbers(item)
			if err != nil {
				return nil, err
			}
			v[key] = untagged
		}
		return v, nil
	case []any:
		for i, item := range v {
			untagged, err := untagNumbers(item)
			if err != nil {
				return nil, err
			}
			v[i] = untagged
		}
		return v, nil
	case json.Number:
		literal := v.String()
		if strings.ContainsAny(literal, ".eE") {
			return v.Float64()
		}
		if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return n, nil
		}
		return strconv.ParseUint(literal, 10, 64)
	default:
		return value, nil
	}
}
