package config

import (
	"fmt"
	"strings"
)

type MissingEnvError struct {
	Names []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("missing required env %s", strings.Join(e.Names, ", "))
}

// Required collects every empty value into a single MissingEnvError.
type Required struct {
	missing []string
}

func (r *Required) NonEmpty(value, envName string) {
	if value == "" {
		r.missing = append(r.missing, envName)
	}
}

func (r *Required) NonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		r.missing = append(r.missing, envName)
	}
}

func (r *Required) Err() error {
	if len(r.missing) == 0 {
		return nil
	}
	return &MissingEnvError{Names: r.missing}
}
