package samples

import (
	"github.com/reusee/starbind/classes"
	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/exports"
	"github.com/reusee/starbind/params"
	"github.com/reusee/starbind/values"
)

type Point struct {
	X int32
	Y int32
}

var pointCtor = params.Must(
	params.Optional("x", values.Int32, values.I32(0)),
	params.Optional("y", values.Int32, values.I32(0)),
)

func newPoint(args []values.Value) (any, error) {
	return &Point{
		X: int32(args[0].Int()),
		Y: int32(args[1].Int()),
	}, nil
}

func getX(p *Point) values.Value {
	return values.I32(p.X)
}

func setX(p *Point, v values.Value) {
	p.X = int32(v.Int())
}

func getY(p *Point) values.Value {
	return values.I32(p.Y)
}

func setY(p *Point, v values.Value) {
	p.Y = int32(v.Int())
}

// Point(x = 0, y = 0) with read-only fields
func defineConstructor(r *exports.Registry) error {
	_, err := r.Class(classes.Def{
		Name: "Point",
		Ctor: pointCtor,
		New:  newPoint,
		Accessors: []classes.Accessor{
			classes.Field("x", values.Int32, getX, nil),
			classes.Field("y", values.Int32, getY, nil),
		},
	})
	return err
}

// Point(x = 0, y = 0) with x and y accessors
func defineInstanceAccessor(r *exports.Registry) error {
	_, err := r.Class(classes.Def{
		Name: "Point",
		Ctor: pointCtor,
		New:  newPoint,
		Accessors: []classes.Accessor{
			classes.Field("x", values.Int32, getX, setX),
			classes.Field("y", values.Int32, getY, setY),
		},
	})
	return err
}

func definePoint(r *exports.Registry) error {
	_, err := r.Class(classes.Def{
		Name: "Point",
		Ctor: pointCtor,
		New:  newPoint,
		Accessors: []classes.Accessor{
			classes.Field("x", values.Int32, getX, setX),
			classes.Field("y", values.Int32, getY, setY),
		},
		Methods: []classes.Method{
			classes.Func("move", params.Must(
				params.Required("dx", values.Int32),
				params.Optional("dy", values.Int32, values.I32(0)),
			), values.Void, func(p *Point, args []values.Value) (values.Value, error) {
				p.X += int32(args[0].Int())
				p.Y += int32(args[1].Int())
				return values.Value{}, nil
			}),
			classes.Func("dot", params.Must(
				params.Required("other", values.Object("Point")),
			), values.Int64, func(p *Point, args []values.Value) (values.Value, error) {
				native, err := args[0].Handle().Native()
				if err != nil {
					return values.Value{}, err
				}
				other, ok := native.(*Point)
				if !ok {
					return values.Value{}, errs.ErrTypeMismatch
				}
				return values.I64(int64(p.X)*int64(other.X) + int64(p.Y)*int64(other.Y)), nil
			}),
		},
	})
	return err
}
