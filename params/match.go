package params

import (
	"fmt"
	"strconv"

	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/values"
	"github.com/ygrebnov/errorc"
	"go.starlark.net/starlark"
)

// Slot is one position of a matched call: either a supplied host argument or a default.
type Slot struct {
	Param     Param
	Host      starlark.Value
	Defaulted bool
}

// Match checks the argument count against the spec and pads missing trailing
// optional arguments with their defaults, left to right.
func (s Spec) Match(args starlark.Tuple, kwargs []starlark.Tuple) ([]Slot, error) {
	if len(kwargs) > 0 {
		name, _ := starlark.AsString(kwargs[0][0])
		return nil, errorc.With(
			errs.ErrArity,
			errorc.String(errs.FieldParam, name),
			errorc.String(errs.FieldReason, "keyword arguments are not supported"),
		)
	}

	n := len(args)
	if n < s.required || n > len(s.params) {
		var reason string
		switch {
		case s.required == len(s.params):
			reason = fmt.Sprintf("got %d arguments, want %d", n, s.required)
		case n < s.required:
			reason = fmt.Sprintf("got %d arguments, want at least %d", n, s.required)
		default:
			reason = fmt.Sprintf("got %d arguments, want at most %d", n, len(s.params))
		}
		return nil, errorc.With(
			errs.ErrArity,
			errorc.String(errs.FieldMin, strconv.Itoa(s.required)),
			errorc.String(errs.FieldMax, strconv.Itoa(len(s.params))),
			errorc.String(errs.FieldReason, reason),
		)
	}

	slots := make([]Slot, len(s.params))
	for i, param := range s.params {
		slots[i].Param = param
		if i < n {
			slots[i].Host = args[i]
		} else {
			slots[i].Defaulted = true
		}
	}
	return slots, nil
}

// Convert converts matched slots to native values. Defaults are used as declared.
func Convert(slots []Slot) ([]values.Value, error) {
	ret := make([]values.Value, len(slots))
	for i, slot := range slots {
		if slot.Defaulted {
			ret[i] = slot.Param.Default
			continue
		}
		v, err := values.ToNative(slot.Host, slot.Param.Type)
		if err != nil {
			return nil, errorc.With(
				err,
				errorc.String(errs.FieldParam, slot.Param.Name),
				errorc.String(errs.FieldIndex, strconv.Itoa(i)),
			)
		}
		ret[i] = v
	}
	return ret, nil
}

// Unpack matches and converts a host call's arguments.
func (s Spec) Unpack(args starlark.Tuple, kwargs []starlark.Tuple) ([]values.Value, error) {
	slots, err := s.Match(args, kwargs)
	if err != nil {
		return nil, err
	}
	return Convert(slots)
}

func formatDefault(param Param) string {
	host, err := values.ToHost(param.Default)
	if err != nil {
		return "?"
	}
	return host.String()
}
