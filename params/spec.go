package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/values"
	"github.com/ygrebnov/errorc"
)

// Spec is an ordered, positional parameter list whose optional parameters form a trailing block.
type Spec struct {
	params   []Param
	required int
}

func New(params ...Param) (Spec, error) {
	seen := make(map[string]bool, len(params))
	required := 0
	for i, param := range params {
		fail := func(reason string) (Spec, error) {
			return Spec{}, errorc.With(
				errs.ErrInvalidSpec,
				errorc.String(errs.FieldParam, param.Name),
				errorc.String(errs.FieldIndex, strconv.Itoa(i)),
				errorc.String(errs.FieldReason, reason),
			)
		}

		if param.Name == "" {
			return fail("empty parameter name")
		}
		if seen[param.Name] {
			return fail("duplicated parameter name")
		}
		seen[param.Name] = true

		if !param.Type.Valid() || param.Type.Kind == values.KindVoid {
			return fail("invalid parameter type " + param.Type.String())
		}

		if !param.Optional {
			if param.Default.IsValid() {
				return fail("default value on required parameter")
			}
			if i != required {
				return fail("required parameter after optional parameter")
			}
			required++
			continue
		}

		if !param.Default.IsValid() {
			return fail("optional parameter without default value")
		}
		if !param.Type.Accepts(param.Default) {
			return fail(fmt.Sprintf(
				"default value of type %s for parameter of type %s",
				param.Default.Type(),
				param.Type,
			))
		}
	}

	return Spec{
		params:   params,
		required: required,
	}, nil
}

func Must(params ...Param) Spec {
	spec, err := New(params...)
	if err != nil {
		panic(err)
	}
	return spec
}

func (s Spec) Len() int {
	return len(s.params)
}

func (s Spec) Required() int {
	return s.required
}

func (s Spec) Param(i int) Param {
	return s.params[i]
}

func (s Spec) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, param := range s.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(param.Name)
		b.WriteString(" ")
		b.WriteString(param.Type.String())
		if param.Optional {
			b.WriteString(" = ")
			b.WriteString(formatDefault(param))
		}
	}
	b.WriteString(")")
	return b.String()
}
