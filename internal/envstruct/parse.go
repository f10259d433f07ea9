// Package envstruct fills configuration structs from environment variables.
package envstruct

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

var (
	ErrEnvNotSet    = errors.New("environment variable not set")
	ErrInvalidValue = errors.New("v must be a pointer to a struct")
	ErrParse        = errors.New("cannot parse environment variable")
)

// Populate populates the fields of the pointer to struct v with values from the environment.
//
// lookupEnv has the same signature as [os.LookupEnv]. Fields tagged with `env:"ENV_VAR"` are set
// from ENV_VAR, falling back to the `envDefault:"value"` tag. A tagged field with neither yields
// ErrEnvNotSet. Supported field kinds are string, bool and int.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptrRef := reflect.ValueOf(v)
	if ptrRef.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: not pointer: %v", ErrInvalidValue, v)
	}
	ref := ptrRef.Elem()
	if ref.Kind() != reflect.Struct {
		return fmt.Errorf("%w: not struct: %v", ErrInvalidValue, v)
	}

	refType := ref.Type()
	var errorList []error
	for i := range refType.NumField() {
		refField := ref.Field(i)
		refTypeField := refType.Field(i)
		tag := refTypeField.Tag

		envVarName, ok := tag.Lookup("env")
		if !ok {
			continue
		}
		if !refField.CanSet() {
			errorList = append(errorList, fmt.Errorf("%w: cannot set field: %s", ErrInvalidValue, refTypeField.Name))
			continue
		}
		val, err := envLookupWithFallback(envVarName, tag, lookupEnv)
		if err != nil {
			errorList = append(errorList, err)
			continue
		}
		if err = setField(refField, val); err != nil {
			errorList = append(errorList, fmt.Errorf("field %s, env %s: %w", refTypeField.Name, envVarName, err))
		}
	}

	return errors.Join(errorList...)
}

func setField(field reflect.Value, val string) error {
	switch field.Kind() { //nolint:exhaustive // unsupported kinds share the default branch.
	case reflect.String:
		field.SetString(val)
	case reflect.Bool:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("%w: %q is not a bool", ErrParse, val)
		}
		field.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%w: %q is not an int", ErrParse, val)
		}
		field.SetInt(int64(n))
	default:
		return fmt.Errorf("%w: unsupported type %s", ErrInvalidValue, field.Kind())
	}
	return nil
}

func envLookupWithFallback(
	envVarName string, tag reflect.StructTag, lookupEnv func(string) (string, bool)) (string, error) {
	envVarValue, ok := lookupEnv(envVarName)
	if !ok {
		envVarValue, ok = tag.Lookup("envDefault")
		if !ok {
			return "", fmt.Errorf("%w: environment variable not set: %s", ErrEnvNotSet, envVarName)
		}
	}
	return envVarValue, nil
}
