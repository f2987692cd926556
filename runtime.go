package mython

import (
	"fmt"
	"io"
)

// Dunder method names recognized by the runtime.
const (
	strMethod = "__str__"
	eqMethod  = "__eq__"
	ltMethod  = "__lt__"
)

// RuntimeError is a fatal evaluation error: a call to an undefined or
// arity-mismatched method, or a comparison between incomparable operands.
// It carries no source position; the engine owning the AST attributes it.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string { return e.Msg }

// Context supplies ambient facilities to executing method bodies. The core
// requires only an output sink; engines may pass richer implementations
// through unchanged.
type Context interface {
	Output() io.Writer
}

// SimpleContext is a Context backed by a single writer.
type SimpleContext struct {
	Out io.Writer
}

func (c *SimpleContext) Output() io.Writer { return c.Out }

// Closure maps names to object holders, with no ordering requirement. The
// same type serves instance fields, call-frame parameter bindings and
// (in the engine) lexical scopes.
type Closure map[string]ObjectHolder

// Executable is an opaque method body supplied by the execution engine:
// run with a closure and a context, produce a holder.
type Executable interface {
	Execute(closure Closure, ctx Context) (ObjectHolder, error)
}

// ExecutableFunc adapts a plain function to an Executable.
type ExecutableFunc func(closure Closure, ctx Context) (ObjectHolder, error)

func (f ExecutableFunc) Execute(closure Closure, ctx Context) (ObjectHolder, error) {
	return f(closure, ctx)
}

// Object is a runtime value. The kind set is closed: Number, String,
// Bool, Class, ClassInstance.
type Object interface {
	Print(w io.Writer, ctx Context) error
}

// ObjectHolder is an optional handle to a runtime object. The empty
// holder represents the language's None.
type ObjectHolder struct {
	data Object
}

// Own returns a holder that keeps obj alive for as long as any holder
// refers to it.
func Own(obj Object) ObjectHolder { return ObjectHolder{data: obj} }

// Share returns a non-owning view onto an object rooted elsewhere. It is
// used to bind self for a method call without transferring ownership; the
// caller guarantees the object outlives the view. (The garbage collector
// keeps the object reachable either way; the constructor records intent
// at the call site.)
func Share(obj Object) ObjectHolder { return ObjectHolder{data: obj} }

// None returns the empty holder.
func None() ObjectHolder { return ObjectHolder{} }

// Get returns the held object, or nil for the empty holder.
func (h ObjectHolder) Get() Object { return h.data }

// MustGet panics on the empty holder. Dereferencing None is a
// precondition violation in the caller, not a recoverable error.
func (h ObjectHolder) MustGet() Object {
	if h.data == nil {
		panic("mython: dereference of empty ObjectHolder")
	}
	return h.data
}

// IsValid reports whether the holder refers to an object.
func (h ObjectHolder) IsValid() bool { return h.data != nil }

// IsTrue reports the truthiness of a value: None is false, Number is true
// iff nonzero, Bool is its flag, String is true iff non-empty, and every
// other kind is false. There is no delegation to user-defined methods;
// the rule is not overridable.
func IsTrue(object ObjectHolder) bool {
	switch v := object.Get().(type) {
	case *Number:
		return v.Value() != 0
	case *Bool:
		return v.Value()
	case *String:
		return v.Value() != ""
	}
	return false
}

// --- value kinds ---

// Number is a fixed-width integer value.
type Number struct {
	value int
}

func NewNumber(v int) *Number { return &Number{value: v} }

func (n *Number) Value() int { return n.value }

func (n *Number) Print(w io.Writer, _ Context) error {
	_, err := fmt.Fprintf(w, "%d", n.value)
	return err
}

// String is a text value.
type String struct {
	value string
}

func NewString(v string) *String { return &String{value: v} }

func (s *String) Value() string { return s.value }

func (s *String) Print(w io.Writer, _ Context) error {
	_, err := io.WriteString(w, s.value)
	return err
}

// Bool is a boolean value. It prints with the keyword spelling.
type Bool struct {
	value bool
}

func NewBool(v bool) *Bool { return &Bool{value: v} }

func (b *Bool) Value() bool { return b.value }

func (b *Bool) Print(w io.Writer, _ Context) error {
	s := "False"
	if b.value {
		s = "True"
	}
	_, err := io.WriteString(w, s)
	return err
}

// --- classes & instances ---

// Method is a named method: formal parameter names plus an opaque body.
type Method struct {
	Name         string
	FormalParams []string
	Body         Executable
}

// Class is a user-defined class with single inheritance. The method table
// is built once at construction: seeded from the parent's table (so
// ancestor methods survive any depth), then overwritten entry-by-entry by
// the class's own methods, later write wins. The table is a snapshot —
// mutating a parent later never propagates to already-constructed
// subclasses. The parent pointer is non-owning; the hosting program keeps
// every parent alive for as long as its subclasses and their instances.
type Class struct {
	name    string
	methods []Method
	parent  *Class
	table   map[string]*Method
}

func NewClass(name string, methods []Method, parent *Class) *Class {
	c := &Class{name: name, methods: methods, parent: parent}
	c.table = make(map[string]*Method, len(methods))
	if parent != nil {
		for mname, m := range parent.table {
			c.table[mname] = m
		}
	}
	for i := range c.methods {
		c.table[c.methods[i].Name] = &c.methods[i]
	}
	return c
}

// GetMethod returns the method of that exact name, or nil when absent.
// Absence is not an error so callers can probe safely.
func (c *Class) GetMethod(name string) *Method {
	if m, ok := c.table[name]; ok {
		return m
	}
	return nil
}

// AddMethod registers or replaces a method on this class. Subclasses
// constructed earlier keep their snapshot and do not see the change.
func (c *Class) AddMethod(m Method) {
	c.methods = append(c.methods, m)
	c.table[m.Name] = &c.methods[len(c.methods)-1]
}

func (c *Class) Name() string { return c.name }

func (c *Class) Print(w io.Writer, _ Context) error {
	_, err := fmt.Fprintf(w, "Class %s", c.name)
	return err
}

// ClassInstance is an instance of a user-defined class: a non-owning
// reference to the class plus its own field closure.
type ClassInstance struct {
	class  *Class
	fields Closure
}

func NewInstance(cls *Class) *ClassInstance {
	return &ClassInstance{class: cls, fields: Closure{}}
}

// Class returns the instance's class.
func (ci *ClassInstance) Class() *Class { return ci.class }

// Fields returns the instance's field closure. Mutations through the
// returned map are field assignments on the instance.
func (ci *ClassInstance) Fields() Closure { return ci.fields }

// HasMethod is true iff a method of that exact name exists and its formal
// parameter count exactly equals argCount. No overloading, no defaults,
// no variadics.
func (ci *ClassInstance) HasMethod(name string, argCount int) bool {
	m := ci.class.GetMethod(name)
	return m != nil && len(m.FormalParams) == argCount
}

// Call runs the named method. The body executes with a fresh closure
// containing self (a Share of the instance) and the positional parameter
// bindings — nothing from the caller's scope leaks in.
func (ci *ClassInstance) Call(name string, args []ObjectHolder, ctx Context) (ObjectHolder, error) {
	if !ci.HasMethod(name, len(args)) {
		return None(), &RuntimeError{Msg: fmt.Sprintf("call for a not defined method %q", name)}
	}
	m := ci.class.GetMethod(name)
	closure := Closure{"self": Share(ci)}
	for i, param := range m.FormalParams {
		closure[param] = args[i]
	}
	return m.Body.Execute(closure, ctx)
}

// Print renders the result of a zero-argument __str__ when the class
// defines one, and an opaque identity rendering otherwise.
func (ci *ClassInstance) Print(w io.Writer, ctx Context) error {
	if ci.HasMethod(strMethod, 0) {
		res, err := ci.Call(strMethod, nil, ctx)
		if err != nil {
			return err
		}
		return res.MustGet().Print(w, ctx)
	}
	_, err := fmt.Fprintf(w, "<%s object at %p>", ci.class.Name(), ci)
	return err
}
