// Package umask parses and validates unsharp-mask parameters.
//
// Parameters arrive as a single string in one of two forms:
//
//	radius=1,percent=65,threshold=2
//	{"radius": 1.5, "percent": 65, "threshold": 2}
//
// All three keys are required and each must lie within its range. Other keys
// are ignored. A string is either accepted in full or rejected with an error
// matching ErrInvalidParameters.
package umask

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dixieflatline76/Polish/util/log"
)

// Parameter keys.
const (
	KeyRadius    = "radius"
	KeyPercent   = "percent"
	KeyThreshold = "threshold"
)

// Valid ranges, inclusive.
const (
	MinRadius    = 0.1
	MaxRadius    = 250
	MinPercent   = 0
	MaxPercent   = 500
	MinThreshold = 0
	MaxThreshold = 255
)

var requiredKeys = []string{KeyPercent, KeyRadius, KeyThreshold}

// Params is a validated set of unsharp-mask parameters.
type Params struct {
	Radius    float64 // blur radius in pixels
	Percent   float64 // strength, 100 = difference added once
	Threshold float64 // minimum channel difference (0-255) that gets sharpened
}

// String returns the key=value form of p.
func (p Params) String() string {
	return fmt.Sprintf("%s=%s,%s=%s,%s=%s",
		KeyRadius, formatFloat(p.Radius),
		KeyPercent, formatFloat(p.Percent),
		KeyThreshold, formatFloat(p.Threshold))
}

// Validate checks s and returns it unchanged when it describes valid parameters.
func Validate(s string) (string, error) {
	if _, err := Parse(s); err != nil {
		return "", err
	}
	return s, nil
}

// Parse checks s and returns the parameters it describes.
func Parse(s string) (Params, error) {
	values, err := decode(s)
	if err != nil {
		return Params{}, err
	}
	if err := checkKeys(values); err != nil {
		return Params{}, err
	}
	log.Debugf("umask: %s=%s %s=%s %s=%s",
		KeyRadius, values[KeyRadius], KeyPercent, values[KeyPercent], KeyThreshold, values[KeyThreshold])
	if extra := extraKeys(values); len(extra) > 0 {
		log.Debugf("umask: ignoring parameters %s", strings.Join(extra, ", "))
	}

	p := Params{
		Radius:    values[KeyRadius].Value,
		Percent:   values[KeyPercent].Value,
		Threshold: values[KeyThreshold].Value,
	}
	if err := checkRange(KeyRadius, p.Radius, MinRadius, MaxRadius); err != nil {
		return Params{}, err
	}
	if err := checkRange(KeyPercent, p.Percent, MinPercent, MaxPercent); err != nil {
		return Params{}, err
	}
	if err := checkRange(KeyThreshold, p.Threshold, MinThreshold, MaxThreshold); err != nil {
		return Params{}, err
	}
	return p, nil
}

func isJSONObject(s string) bool {
	return strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}

func decode(s string) (map[string]Number, error) {
	if isJSONObject(s) {
		return decodeJSON(s)
	}
	return decodePairs(s)
}

// decodePairs reads comma separated key=value pairs. A repeated key keeps
// its last value.
func decodePairs(s string) (map[string]Number, error) {
	values := make(map[string]Number)
	for _, pair := range strings.Split(s, ",") {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, invalidCause("malformed pair", fmt.Errorf("%q has no '=' separator", pair))
		}
		key = strings.TrimSpace(key)
		n, err := ParseNumber(raw)
		if err != nil {
			return nil, invalidCause(fmt.Sprintf("value of %q", key), err)
		}
		values[key] = n
	}
	return values, nil
}

func decodeJSON(s string) (map[string]Number, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, invalidCause("malformed JSON", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, invalid("malformed JSON: trailing data after object")
	}

	values := make(map[string]Number, len(raw))
	for key, v := range raw {
		num, ok := v.(json.Number)
		if !ok {
			return nil, invalidCause(fmt.Sprintf("value of %q", key), fmt.Errorf("%v (%T) is not a number", v, v))
		}
		f, err := num.Float64()
		if err != nil {
			return nil, invalidCause(fmt.Sprintf("value of %q", key), err)
		}
		values[key] = Number{Value: f, Integer: !strings.ContainsAny(num.String(), ".eE")}
	}
	return values, nil
}

func checkKeys(values map[string]Number) error {
	var missing []string
	for _, key := range requiredKeys {
		if _, ok := values[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return invalid(fmt.Sprintf("missing required parameters %s, expected keys: %s",
			strings.Join(missing, ", "), strings.Join(requiredKeys, ", ")))
	}
	return nil
}

// extraKeys returns the quoted keys that name no parameter, sorted.
func extraKeys(values map[string]Number) []string {
	var extra []string
	for key := range values {
		if !isRequired(key) {
			extra = append(extra, strconv.Quote(key))
		}
	}
	sort.Strings(extra)
	return extra
}

func isRequired(key string) bool {
	for _, k := range requiredKeys {
		if k == key {
			return true
		}
	}
	return false
}

// checkRange is written so that NaN fails both comparisons.
func checkRange(key string, v, lo, hi float64) error {
	if !(v >= lo) {
		return invalid(fmt.Sprintf("%s %s is below the minimum of %s (must be between %s and %s)",
			key, formatFloat(v), formatFloat(lo), formatFloat(lo), formatFloat(hi)))
	}
	if !(v <= hi) {
		return invalid(fmt.Sprintf("%s %s is above the maximum of %s (must be between %s and %s)",
			key, formatFloat(v), formatFloat(hi), formatFloat(lo), formatFloat(hi)))
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
