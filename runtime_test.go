package mython

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func num(n int) ObjectHolder      { return Own(NewNumber(n)) }
func str(s string) ObjectHolder   { return Own(NewString(s)) }
func boolean(b bool) ObjectHolder { return Own(NewBool(b)) }

func testCtx() (*SimpleContext, *bytes.Buffer) {
	var buf bytes.Buffer
	return &SimpleContext{Out: &buf}, &buf
}

// retVal builds a method body that ignores its closure and returns v.
func retVal(v ObjectHolder) Executable {
	return ExecutableFunc(func(Closure, Context) (ObjectHolder, error) {
		return v, nil
	})
}

func printTo(t *testing.T, h ObjectHolder) string {
	t.Helper()
	ctx, buf := testCtx()
	if err := h.MustGet().Print(buf, ctx); err != nil {
		t.Fatalf("Print: %v", err)
	}
	return buf.String()
}

func Test_Runtime_HolderStates(t *testing.T) {
	if None().IsValid() {
		t.Fatalf("None must be invalid")
	}
	if None().Get() != nil {
		t.Fatalf("None.Get must be nil")
	}
	n := NewNumber(1)
	if !Own(n).IsValid() || Own(n).Get() != Object(n) {
		t.Fatalf("Own must hold the object")
	}
	if !Share(n).IsValid() || Share(n).Get() != Object(n) {
		t.Fatalf("Share must view the object")
	}
}

func Test_Runtime_MustGet_PanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("MustGet on empty holder must panic")
		}
	}()
	None().MustGet()
}

func Test_Runtime_IsTrue(t *testing.T) {
	cls := NewClass("C", nil, nil)
	cases := []struct {
		h    ObjectHolder
		want bool
	}{
		{None(), false},
		{num(0), false},
		{num(1), true},
		{num(-3), true},
		{boolean(false), false},
		{boolean(true), true},
		{str(""), false},
		{str("x"), true},
		{Own(cls), false},
		{Own(NewInstance(cls)), false},
	}
	for _, c := range cases {
		if got := IsTrue(c.h); got != c.want {
			t.Fatalf("IsTrue(%v): want %v, got %v", c.h, c.want, got)
		}
	}
}

func Test_Runtime_Truthiness_NotOverridable(t *testing.T) {
	// Even an instance with comparison dunders stays falsy.
	cls := NewClass("Truthy", []Method{
		{Name: "__eq__", FormalParams: []string{"other"}, Body: retVal(boolean(true))},
	}, nil)
	if IsTrue(Own(NewInstance(cls))) {
		t.Fatalf("instance truthiness must be fixed false")
	}
}

func Test_Runtime_ValuePrinting(t *testing.T) {
	if got := printTo(t, num(42)); got != "42" {
		t.Fatalf("Number print: %q", got)
	}
	if got := printTo(t, num(-7)); got != "-7" {
		t.Fatalf("Number print: %q", got)
	}
	if got := printTo(t, str("hi")); got != "hi" {
		t.Fatalf("String print: %q", got)
	}
	if got := printTo(t, boolean(true)); got != "True" {
		t.Fatalf("Bool print: %q", got)
	}
	if got := printTo(t, boolean(false)); got != "False" {
		t.Fatalf("Bool print: %q", got)
	}
	if got := printTo(t, Own(NewClass("Rect", nil, nil))); got != "Class Rect" {
		t.Fatalf("Class print: %q", got)
	}
}

func Test_Runtime_ClassTableSnapshot(t *testing.T) {
	parent := NewClass("P", []Method{
		{Name: "f", Body: retVal(num(1))},
	}, nil)
	child := NewClass("C", nil, parent)

	// Replacing f on the parent after the subclass exists must not be
	// visible through the subclass: its table is a construction-time
	// snapshot, not a live link.
	parent.AddMethod(Method{Name: "f", Body: retVal(num(2))})

	ctx, _ := testCtx()
	got, err := NewInstance(child).Call("f", nil, ctx)
	if err != nil {
		t.Fatalf("child call: %v", err)
	}
	if got.MustGet().(*Number).Value() != 1 {
		t.Fatalf("child must resolve the snapshot method")
	}

	got, err = NewInstance(parent).Call("f", nil, ctx)
	if err != nil {
		t.Fatalf("parent call: %v", err)
	}
	if got.MustGet().(*Number).Value() != 2 {
		t.Fatalf("parent must resolve the replacement")
	}
}

func Test_Runtime_AncestorMethodsInherited(t *testing.T) {
	grand := NewClass("A", []Method{{Name: "f", Body: retVal(num(1))}}, nil)
	mid := NewClass("B", []Method{{Name: "g", Body: retVal(num(2))}}, grand)
	leaf := NewClass("C", nil, mid)

	inst := NewInstance(leaf)
	if !inst.HasMethod("f", 0) || !inst.HasMethod("g", 0) {
		t.Fatalf("ancestor methods must survive through the table seed")
	}
	if leaf.GetMethod("missing") != nil {
		t.Fatalf("GetMethod on an absent name must be nil, not an error")
	}
}

func Test_Runtime_MethodShadowing(t *testing.T) {
	parent := NewClass("P", []Method{{Name: "f", Body: retVal(num(1))}}, nil)
	child := NewClass("C", []Method{{Name: "f", Body: retVal(num(10))}}, parent)

	ctx, _ := testCtx()
	got, err := NewInstance(child).Call("f", nil, ctx)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if got.MustGet().(*Number).Value() != 10 {
		t.Fatalf("own method must shadow the inherited one")
	}
}

func Test_Runtime_HasMethod_ArityExact(t *testing.T) {
	cls := NewClass("C", []Method{
		{Name: "f", FormalParams: []string{"a"}, Body: retVal(None())},
	}, nil)
	inst := NewInstance(cls)

	if !inst.HasMethod("f", 1) {
		t.Fatalf("HasMethod(f, 1) must be true")
	}
	if inst.HasMethod("f", 0) || inst.HasMethod("f", 2) {
		t.Fatalf("arity must match exactly")
	}
	if inst.HasMethod("g", 1) {
		t.Fatalf("name must match exactly")
	}
}

func Test_Runtime_Call_BindsSelfAndParams(t *testing.T) {
	var seen Closure
	body := ExecutableFunc(func(c Closure, _ Context) (ObjectHolder, error) {
		seen = c
		return num(7), nil
	})
	cls := NewClass("Point", []Method{
		{Name: "move", FormalParams: []string{"dx", "dy"}, Body: body},
	}, nil)
	inst := NewInstance(cls)

	ctx, _ := testCtx()
	got, err := inst.Call("move", []ObjectHolder{num(3), num(4)}, ctx)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.MustGet().(*Number).Value() != 7 {
		t.Fatalf("Call must return the body's result")
	}

	if len(seen) != 3 {
		t.Fatalf("closure must hold exactly self and the formals, got %v", seen)
	}
	self, ok := seen["self"].Get().(*ClassInstance)
	if !ok || self != inst {
		t.Fatalf("self must be a view of the receiver")
	}
	if seen["dx"].MustGet().(*Number).Value() != 3 || seen["dy"].MustGet().(*Number).Value() != 4 {
		t.Fatalf("formals must bind positionally, got %v", seen)
	}
}

func Test_Runtime_Call_NotDefined(t *testing.T) {
	inst := NewInstance(NewClass("C", nil, nil))
	ctx, _ := testCtx()

	_, err := inst.Call("missing", nil, ctx)
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if !strings.Contains(rerr.Msg, "not defined method") {
		t.Fatalf("unexpected message: %q", rerr.Msg)
	}

	// Arity mismatch is the same failure.
	cls := NewClass("D", []Method{{Name: "f", FormalParams: []string{"a"}, Body: retVal(None())}}, nil)
	if _, err := NewInstance(cls).Call("f", nil, ctx); err == nil {
		t.Fatalf("arity mismatch must fail the call")
	}
}

func Test_Runtime_FieldsThroughSelf(t *testing.T) {
	body := ExecutableFunc(func(c Closure, _ Context) (ObjectHolder, error) {
		self := c["self"].MustGet().(*ClassInstance)
		return self.Fields()["x"], nil
	})
	cls := NewClass("Box", []Method{{Name: "get_x", Body: body}}, nil)
	inst := NewInstance(cls)
	inst.Fields()["x"] = str("payload")

	ctx, _ := testCtx()
	got, err := inst.Call("get_x", nil, ctx)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got.MustGet().(*String).Value() != "payload" {
		t.Fatalf("field read through self failed: %v", got)
	}
}

func Test_Runtime_InstancePrint_WithStr(t *testing.T) {
	cls := NewClass("Greeter", []Method{
		{Name: "__str__", Body: retVal(str("hi"))},
	}, nil)
	if got := printTo(t, Own(NewInstance(cls))); got != "hi" {
		t.Fatalf("__str__ print: %q", got)
	}
}

func Test_Runtime_InstancePrint_Default(t *testing.T) {
	inst := NewInstance(NewClass("Plain", nil, nil))
	got := printTo(t, Own(inst))
	if !strings.Contains(got, "Plain object at") {
		t.Fatalf("default instance print: %q", got)
	}
}

func Test_Runtime_InstancePrint_StrWrongArity(t *testing.T) {
	// A __str__ that takes arguments is not the printing hook.
	cls := NewClass("Odd", []Method{
		{Name: "__str__", FormalParams: []string{"x"}, Body: retVal(str("no"))},
	}, nil)
	got := printTo(t, Own(NewInstance(cls)))
	if got == "no" {
		t.Fatalf("one-argument __str__ must be ignored by Print")
	}
	if !strings.Contains(got, "object at") {
		t.Fatalf("expected default rendering, got %q", got)
	}
}
