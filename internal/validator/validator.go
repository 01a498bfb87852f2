package validator

import "github.com/garrettladley/weightrack/internal/xerrors"

type Validator interface {
	// Validate validates the fields of the struct and returns a map of errors.
	// returns nil if no errors are found
	Validate() map[string]string
}

func Validate(v Validator) *xerrors.Error {
	if err := v.Validate(); err != nil {
		return xerrors.Validation(err)
	}
	return nil
}

// Fields collects per-field messages. The first message for a field wins.
type Fields map[string]string

func (f Fields) Check(ok bool, field string, msg string) {
	if ok {
		return
	}
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// Result is nil when nothing failed, matching Validator.Validate.
func (f Fields) Result() map[string]string {
	if len(f) == 0 {
		return nil
	}
	return f
}
