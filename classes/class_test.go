package classes

import (
	"errors"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/starbind/errs"
	"github.com/reusee/starbind/handles"
	"github.com/reusee/starbind/modes"
	"github.com/reusee/starbind/params"
	"github.com/reusee/starbind/values"
	"go.starlark.net/starlark"
)

type point struct {
	X, Y int32
}

func pointDef(destroyed *atomic.Int64) Def {
	return Def{
		Name: "Point",
		Ctor: params.Must(
			params.Optional("x", values.Int32, values.I32(0)),
			params.Optional("y", values.Int32, values.I32(0)),
		),
		New: func(args []values.Value) (any, error) {
			return &point{
				X: int32(args[0].Int()),
				Y: int32(args[1].Int()),
			}, nil
		},
		Destroy: func(any) {
			if destroyed != nil {
				destroyed.Add(1)
			}
		},
		Accessors: []Accessor{
			Field("x", values.Int32,
				func(p *point) values.Value { return values.I32(p.X) },
				func(p *point, v values.Value) { p.X = int32(v.Int()) },
			),
			Field("y", values.Int32,
				func(p *point) values.Value { return values.I32(p.Y) },
				func(p *point, v values.Value) { p.Y = int32(v.Int()) },
			),
			Field("norm1", values.Int64,
				func(p *point) values.Value { return values.I64(int64(p.X) + int64(p.Y)) },
				nil,
			),
		},
		Methods: []Method{
			Func("move", params.Must(
				params.Required("dx", values.Int32),
				params.Optional("dy", values.Int32, values.I32(0)),
			), values.Void, func(p *point, args []values.Value) (values.Value, error) {
				p.X += int32(args[0].Int())
				p.Y += int32(args[1].Int())
				return values.Value{}, nil
			}),
		},
	}
}

func withClass(t *testing.T, destroyed *atomic.Int64, fn func(class *Class, table *handles.Table)) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		define DefineClass,
	) {
		table := handles.NewTable()
		class, err := define(table, pointDef(destroyed))
		if err != nil {
			t.Fatal(err)
		}
		fn(class, table)
	})
}

func get(t *testing.T, obj *Object, name string) int {
	t.Helper()
	v, err := obj.Attr(name)
	if err != nil {
		t.Fatal(err)
	}
	i, err := starlark.AsInt32(v)
	if err != nil {
		t.Fatal(err)
	}
	return i
}

func ints(ns ...int) starlark.Tuple {
	ret := make(starlark.Tuple, len(ns))
	for i, n := range ns {
		ret[i] = starlark.MakeInt(n)
	}
	return ret
}

func TestConstruct(t *testing.T) {
	withClass(t, nil, func(class *Class, table *handles.Table) {
		for _, c := range []struct {
			args []int
			x, y int
		}{
			{nil, 0, 0},
			{[]int{1}, 1, 0},
			{[]int{1, 2}, 1, 2},
		} {
			obj, err := class.New(ints(c.args...)...)
			if err != nil {
				t.Fatal(err)
			}
			if x := get(t, obj, "x"); x != c.x {
				t.Fatalf("got %d", x)
			}
			if y := get(t, obj, "y"); y != c.y {
				t.Fatalf("got %d", y)
			}
		}
		if table.Len() != 3 {
			t.Fatalf("got %d", table.Len())
		}

		_, err := class.New(ints(1, 2, 3)...)
		if !errors.Is(err, errs.ErrArity) {
			t.Fatalf("got %v", err)
		}
		_, err = class.New(starlark.String("1"))
		if !errors.Is(err, errs.ErrTypeMismatch) {
			t.Fatalf("got %v", err)
		}
		// failed constructions create nothing
		if table.Len() != 3 {
			t.Fatalf("got %d", table.Len())
		}
	})
}

func TestConstructorFailure(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		define DefineClass,
	) {
		table := handles.NewTable()
		class, err := define(table, Def{
			Name: "Broken",
			New: func([]values.Value) (any, error) {
				panic("boom")
			},
		})
		if err != nil {
			t.Fatal(err)
		}
		_, err = class.New()
		if !errors.Is(err, errs.ErrNativeExecution) {
			t.Fatalf("got %v", err)
		}
		if table.Len() != 0 {
			t.Fatal()
		}
	})
}

func TestAccessor(t *testing.T) {
	withClass(t, nil, func(class *Class, table *handles.Table) {
		obj, err := class.New()
		if err != nil {
			t.Fatal(err)
		}
		if err := obj.SetField("x", starlark.MakeInt(1)); err != nil {
			t.Fatal(err)
		}
		if x := get(t, obj, "x"); x != 1 {
			t.Fatalf("got %d", x)
		}

		obj, err = class.New(ints(1, 2)...)
		if err != nil {
			t.Fatal(err)
		}
		if x := get(t, obj, "x"); x != 1 {
			t.Fatalf("got %d", x)
		}
		if y := get(t, obj, "y"); y != 2 {
			t.Fatalf("got %d", y)
		}
		if n := get(t, obj, "norm1"); n != 3 {
			t.Fatalf("got %d", n)
		}
		if s := obj.String(); s != "Point(x=1, y=2, norm1=3)" {
			t.Fatalf("got %s", s)
		}

		// wraps to int32
		if err := obj.SetField("y", starlark.MakeInt64(1<<32+5)); err != nil {
			t.Fatal(err)
		}
		if y := get(t, obj, "y"); y != 5 {
			t.Fatalf("got %d", y)
		}
	})
}

func TestAccessorErrors(t *testing.T) {
	withClass(t, nil, func(class *Class, table *handles.Table) {
		obj, err := class.New()
		if err != nil {
			t.Fatal(err)
		}

		_, err = obj.Attr("z")
		if !errors.Is(err, errs.ErrNotFound) {
			t.Fatalf("got %v", err)
		}
		err = obj.SetField("z", starlark.MakeInt(1))
		if !errors.Is(err, errs.ErrNotFound) {
			t.Fatalf("got %v", err)
		}
		err = obj.SetField("norm1", starlark.MakeInt(1))
		if !errors.Is(err, errs.ErrReadOnly) {
			t.Fatalf("got %v", err)
		}
		err = obj.SetField("move", starlark.MakeInt(1))
		if !errors.Is(err, errs.ErrReadOnly) {
			t.Fatalf("got %v", err)
		}
		err = obj.SetField("x", starlark.String("1"))
		if !errors.Is(err, errs.ErrTypeMismatch) {
			t.Fatalf("got %v", err)
		}
		if x := get(t, obj, "x"); x != 0 {
			t.Fatalf("got %d", x)
		}

		obj.Freeze()
		err = obj.SetField("x", starlark.MakeInt(1))
		if !errors.Is(err, errs.ErrReadOnly) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestMethod(t *testing.T) {
	withClass(t, nil, func(class *Class, table *handles.Table) {
		globals, err := starlark.ExecFile(
			new(starlark.Thread),
			"test.star",
			`
p = Point(1, 2)
r = p.move(2)
p.move(1, 1)
x = p.x
y = p.y
`,
			starlark.StringDict{
				"Point": class,
			},
		)
		if err != nil {
			t.Fatal(err)
		}
		if globals["r"] != starlark.None {
			t.Fatalf("got %v", globals["r"])
		}
		if globals["x"].String() != "4" {
			t.Fatalf("got %v", globals["x"])
		}
		if globals["y"].String() != "3" {
			t.Fatalf("got %v", globals["y"])
		}
	})
}

func TestUseAfterFree(t *testing.T) {
	var destroyed atomic.Int64
	withClass(t, &destroyed, func(class *Class, table *handles.Table) {
		obj, err := class.New()
		if err != nil {
			t.Fatal(err)
		}
		move, err := obj.Attr("move")
		if err != nil {
			t.Fatal(err)
		}

		if !obj.Release() {
			t.Fatal()
		}
		if obj.Release() {
			t.Fatal("released twice")
		}
		if n := destroyed.Load(); n != 1 {
			t.Fatalf("got %d", n)
		}

		_, err = obj.Attr("x")
		if !errors.Is(err, errs.ErrUseAfterFree) {
			t.Fatalf("got %v", err)
		}
		err = obj.SetField("x", starlark.MakeInt(1))
		if !errors.Is(err, errs.ErrUseAfterFree) {
			t.Fatalf("got %v", err)
		}
		_, err = starlark.Call(new(starlark.Thread), move, ints(1), nil)
		if !errors.Is(err, errs.ErrUseAfterFree) {
			t.Fatalf("got %v", err)
		}
		if !strings.HasPrefix(obj.String(), "<destroyed Point#") {
			t.Fatalf("got %s", obj.String())
		}

		_, err = values.ToHost(values.MakeObject(obj.InstanceHandle()))
		if !errors.Is(err, errs.ErrUseAfterFree) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	withClass(t, nil, func(class *Class, table *handles.Table) {
		obj, err := class.New()
		if err != nil {
			t.Fatal(err)
		}
		v, err := values.ToNative(obj, values.Object("Point"))
		if err != nil {
			t.Fatal(err)
		}
		host, err := values.ToHost(v)
		if err != nil {
			t.Fatal(err)
		}
		if host != starlark.Value(obj) {
			t.Fatal("identity lost")
		}
		_, err = values.ToNative(obj, values.Object("Line"))
		if !errors.Is(err, errs.ErrTypeMismatch) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestReclaim(t *testing.T) {
	var destroyed atomic.Int64
	withClass(t, &destroyed, func(class *Class, table *handles.Table) {
		func() {
			for range 10 {
				if _, err := class.New(); err != nil {
					t.Fatal(err)
				}
			}
		}()
		deadline := time.Now().Add(5 * time.Second)
		for destroyed.Load() < 10 {
			if time.Now().After(deadline) {
				t.Skip("instances not reclaimed in time")
			}
			runtime.GC()
			time.Sleep(time.Millisecond * 10)
		}
		if table.Len() != 0 {
			t.Fatalf("got %d", table.Len())
		}
	})
}

func TestDefineErrors(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		define DefineClass,
	) {
		table := handles.NewTable()

		def := pointDef(nil)
		def.Accessors = append(def.Accessors, def.Accessors[0])
		if _, err := define(table, def); !errors.Is(err, errs.ErrDuplicate) {
			t.Fatalf("got %v", err)
		}

		def = pointDef(nil)
		def.New = nil
		if _, err := define(table, def); !errors.Is(err, errs.ErrInvalidSpec) {
			t.Fatalf("got %v", err)
		}

		def = pointDef(nil)
		def.Accessors[0].Type = values.Void
		if _, err := define(table, def); !errors.Is(err, errs.ErrInvalidSpec) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestInsertFailureDestructorPanic(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		define DefineClass,
	) {
		table := handles.NewTable()
		def := pointDef(nil)
		def.Destroy = func(any) {
			panic("destroy")
		}
		class, err := define(table, def)
		if err != nil {
			t.Fatal(err)
		}
		table.Close()

		_, err = class.New()
		if !errors.Is(err, errs.ErrUseAfterFree) {
			t.Fatalf("got %v", err)
		}
		if !errors.Is(err, errs.ErrNativeExecution) {
			t.Fatalf("got %v", err)
		}
	})
}

func TestRepeatedReads(t *testing.T) {
	withClass(t, nil, func(class *Class, table *handles.Table) {
		globals, err := starlark.ExecFile(
			new(starlark.Thread),
			"test.star",
			`
p = Point(1, 2)
reads = [p.x, p.x, p.y, p.norm1, p.y, p.x, str(p), p.y]
p.move(0)
reads.append(p.x)
reads.append(p.y)
`,
			starlark.StringDict{
				"Point": class,
			},
		)
		if err != nil {
			t.Fatal(err)
		}
		if s := globals["reads"].String(); s != `[1, 1, 2, 3, 2, 1, "Point(x=1, y=2, norm1=3)", 2, 1, 2]` {
			t.Fatalf("got %s", s)
		}
	})
}
