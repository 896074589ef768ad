package app

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"

	"github.com/spf13/cast"

	"github.com/jsamuelsen/viewlink/internal/domain"
)

// Validation messages.
const (
	msgInvalidService  = "Invalid service: Should be a string."
	msgInvalidEntity   = "Invalid entity: Should be a string."
	msgInvalidEntityID = "Invalid entity ID: Should exist and must be a string."
	msgInvalidParams   = "Invalid params: Should be an object."
	msgInvalidEntries  = "Invalid entries: Should be an array."
	msgEmptyEntries    = "Invalid entries: Should contain at least one entry."
)

// ValidateBasicParams checks service, entity and params in that order.
// The first failing check decides the returned code.
func ValidateBasicParams(service, entity, params any) error {
	if _, ok := asString(service); !ok {
		return domain.NewError(domain.CodeInvalidService, msgInvalidService)
	}

	if _, ok := asString(entity); !ok {
		return domain.NewError(domain.CodeInvalidEntity, msgInvalidEntity)
	}

	return ValidateParams(params)
}

// ValidateEntityID checks that entityID is a string.
func ValidateEntityID(entityID any) error {
	if _, ok := asString(entityID); !ok {
		return domain.NewError(domain.CodeInvalidEntityID, msgInvalidEntityID)
	}

	return nil
}

// ValidateEntries checks that entries is a non-empty slice or array.
func ValidateEntries(entries any) error {
	if entries == nil {
		return domain.NewError(domain.CodeInvalidEntries, msgInvalidEntries)
	}

	v := reflect.ValueOf(entries)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return domain.NewError(domain.CodeInvalidEntries, msgInvalidEntries)
	}

	if v.Len() == 0 {
		return domain.NewError(domain.CodeInvalidEntries, msgEmptyEntries)
	}

	return nil
}

// ValidateParams checks that params is absent or a map keyed by strings.
func ValidateParams(params any) error {
	if _, err := toParams(params); err != nil {
		return err
	}

	return nil
}

// asString reports whether v is a string, including named string types.
func asString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}

	if v == nil {
		return "", false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}

	return "", false
}

// toParams normalizes every accepted params shape into ordered pairs.
// Plain maps carry no insertion order, so their keys are sorted.
func toParams(params any) (domain.Params, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case domain.Params:
		return p, nil
	case url.Values:
		var out domain.Params

		for _, key := range sortedKeys(map[string][]string(p)) {
			for _, value := range p[key] {
				out = out.Add(key, value)
			}
		}

		return out, nil
	case map[string]string:
		out := make(domain.Params, 0, len(p))
		for _, key := range sortedKeys(p) {
			out = out.Add(key, p[key])
		}

		return out, nil
	case map[string]any:
		out := make(domain.Params, 0, len(p))
		for _, key := range sortedKeys(p) {
			out = out.Add(key, p[key])
		}

		return out, nil
	}

	rv := reflect.ValueOf(params)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, domain.NewError(domain.CodeInvalidParams, msgInvalidParams)
	}

	keys := make([]string, 0, rv.Len())
	values := make(map[string]any, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		keys = append(keys, key)
		values[key] = iter.Value().Interface()
	}

	sort.Strings(keys)

	out := make(domain.Params, 0, len(keys))
	for _, key := range keys {
		out = out.Add(key, values[key])
	}

	return out, nil
}

// toEntries stringifies each element of a slice or array.
func toEntries(entries any) []string {
	switch e := entries.(type) {
	case []string:
		return e
	case []any:
		out := make([]string, len(e))
		for i, v := range e {
			out[i] = stringify(v)
		}

		return out
	}

	rv := reflect.ValueOf(entries)

	out := make([]string, rv.Len())
	for i := range out {
		out[i] = stringify(rv.Index(i).Interface())
	}

	return out
}

// stringify converts a query or path value to its string form.
func stringify(v any) string {
	if v == nil {
		return ""
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
