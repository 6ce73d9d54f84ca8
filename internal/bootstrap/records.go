package bootstrap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/wolfeidau/gatehouse/internal/identity"
	"gopkg.in/yaml.v3"
)

// unreadableBatchError is returned when the batch file cannot be turned into a
// list of records. Its message is what the operator sees.
type unreadableBatchError struct {
	Reason string
	Err    error
}

func (e *unreadableBatchError) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *unreadableBatchError) Is(target error) bool {
	return target == ErrUnreadableBatch
}

func (e *unreadableBatchError) Unwrap() error {
	return e.Err
}

// loadRecords reads a batch file and returns its top-level list. YAML is
// selected by the .yaml or .yml extension, anything else is read as JSON.
func loadRecords(path string) ([]any, error) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &unreadableBatchError{Reason: fmt.Sprintf("%s file not found at %s", name, path)}
		}
		return nil, &unreadableBatchError{Reason: "error reading " + name, Err: err}
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &unreadableBatchError{Reason: "invalid YAML format in " + name, Err: err}
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &unreadableBatchError{Reason: "invalid JSON format in " + name, Err: err}
		}
	}

	list, ok := doc.([]any)
	if !ok {
		return nil, &unreadableBatchError{Reason: name + " should contain a list of users"}
	}

	return list, nil
}

// decodeRecord converts one batch entry into a Record. Only the keys below
// are accepted, so a batch file cannot set flags such as is_staff directly.
func decodeRecord(raw any) (identity.Record, error) {
	var rec identity.Record

	m, ok := raw.(map[string]any)
	if !ok {
		return rec, ErrInvalidRecord
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		value := m[key]

		var err error
		switch key {
		case "email":
			rec.Email, err = stringValue(key, value)
		case "phone":
			rec.Phone, err = stringValue(key, value)
		case "password":
			rec.Password, err = stringValue(key, value)
		case "first_name":
			rec.FirstName, err = stringValue(key, value)
		case "last_name":
			rec.LastName, err = stringValue(key, value)
		case "is_superuser":
			rec.IsSuperuser, err = boolValue(key, value)
		default:
			err = fmt.Errorf("%w: unknown field %q", ErrInvalidRecord, key)
		}
		if err != nil {
			return identity.Record{}, err
		}
	}

	return rec, nil
}

// stringValue accepts strings and null. YAML numbers are rejected so a phone
// written without quotes is not silently reformatted.
func stringValue(key string, v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidRecord, key)
	}
}

func boolValue(key string, v any) (bool, error) {
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	default:
		return false, fmt.Errorf("%w: %s must be a boolean", ErrInvalidRecord, key)
	}
}
