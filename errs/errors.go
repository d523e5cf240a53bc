package errs

import "github.com/ygrebnov/errorc"

var namespace = errorc.Namespace("starbind")

// Call-time failures. Each one is a caller contract violation and is raised at the call boundary.
var (
	ErrArity           = namespace.NewError("wrong number of arguments")
	ErrTypeMismatch    = namespace.NewError("type mismatch")
	ErrNotFound        = namespace.NewError("not found")
	ErrReadOnly        = namespace.NewError("read-only property")
	ErrNativeExecution = namespace.NewError("native execution failed")
	ErrUseAfterFree    = namespace.NewError("use after free")
)

// Registration-time failures.
var (
	ErrInvalidSpec = namespace.NewError("invalid binding spec")
	ErrDuplicate   = namespace.NewError("duplicated binding")
	ErrSealed      = namespace.NewError("registration table sealed")
)

var newKey = errorc.KeyFactory("starbind")

var (
	FieldFunction = newKey("function", "binding")
	FieldClass    = newKey("class", "binding")
	FieldProperty = newKey("property", "binding")
	FieldModule   = newKey("module", "binding")
)

var (
	FieldParam = newKey("name", "param")
	FieldIndex = newKey("index", "param")
)

var (
	FieldWant = newKey("want", "value")
	FieldGot  = newKey("got", "value")
)

var (
	FieldMin = newKey("min", "arity")
	FieldMax = newKey("max", "arity")
)

var FieldReason = newKey("reason")
