package models

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// entryFieldMap caches JSON tag -> struct field index mappings
var (
	entryFieldMap     map[string]int
	entryFieldMapOnce sync.Once
)

func getEntryFieldMap() map[string]int {
	entryFieldMapOnce.Do(func() {
		t := reflect.TypeOf(Entry{})
		entryFieldMap = make(map[string]int, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("json")
			if tag == "" || tag == "-" {
				continue
			}
			name := strings.Split(tag, ",")[0]
			entryFieldMap[name] = i
		}
	})
	return entryFieldMap
}

// UnmarshalJSON accepts both native and string-encoded values, so a blob
// that was hand-edited or written by an older page script (e.g.
// "timeSeconds": "2550") still loads. Negative times are clamped to zero.
func (e *Entry) UnmarshalJSON(data []byte) error {
	// Alias prevents infinite recursion
	type Alias Entry
	a := (*Alias)(e)

	if err := json.Unmarshal(data, a); err == nil {
		e.clamp()
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	fieldMap := getEntryFieldMap()
	v := reflect.ValueOf(a).Elem()

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}

		fv := v.Field(idx)
		if !fv.CanSet() {
			continue
		}

		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		// JSON string into a numeric field
		if len(rawVal) > 1 && rawVal[0] == '"' {
			var s string
			if err := json.Unmarshal(rawVal, &s); err != nil {
				continue
			}
			if s == "" {
				continue
			}
			coerceStringToField(fv, s)
			continue
		}

		// JSON number into a string field (ids written as numbers), or a
		// fractional number into an int field (2550.5 truncates to 2550)
		var n json.Number
		if err := json.Unmarshal(rawVal, &n); err == nil {
			coerceStringToField(fv, n.String())
		}
	}

	e.clamp()
	return nil
}

func (e *Entry) clamp() {
	if e.TimeSeconds < 0 {
		e.TimeSeconds = 0
	}
}

// coerceStringToField converts a string value to the field's native type.
func coerceStringToField(fv reflect.Value, s string) {
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// "2550.4" truncates to 2550
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(n) || n >= math.MaxInt64 || n <= math.MinInt64 {
			return
		}
		if fv.OverflowInt(int64(n)) {
			return
		}
		fv.SetInt(int64(n))
	case reflect.String:
		fv.SetString(s)
	}
}
