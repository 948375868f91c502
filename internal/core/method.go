package core

import (
	"fmt"
	"reflect"
	"strings"
)

// Method describes one method of a stand-in's target interface.
type Method struct {
	Key      MethodKey
	Owner    string // target type name, used in messages
	Type     reflect.Type
	In       []reflect.Type
	Out      []reflect.Type
	Variadic bool
}

// Describe renders a call of this method with the given argument descriptions.
func (m *Method) Describe(args []string) string {
	return fmt.Sprintf("%s(%s)", m.QualifiedName(), strings.Join(args, ", "))
}

// QualifiedName returns Owner.Name.
func (m *Method) QualifiedName() string {
	if m.Owner == "" {
		return m.Key.Name
	}

	return m.Owner + "." + m.Key.Name
}

// HasErrorResult reports whether the method's last result is the error interface.
func (m *Method) HasErrorResult() bool {
	return len(m.Out) > 0 && m.Out[len(m.Out)-1] == errorType
}

// MethodKey identifies one method signature. Two methods with the same name and
// different signatures have different keys.
type MethodKey struct {
	Name      string
	Signature string
}

func (k MethodKey) String() string {
	return k.Name + strings.TrimPrefix(k.Signature, "func")
}

// KeyOf returns the MethodKey for a method name and its func type (receiver excluded).
func KeyOf(name string, fn reflect.Type) MethodKey {
	return MethodKey{Name: name, Signature: fn.String()}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // reflect type of the error interface
	errorType = reflect.TypeFor[error]()
)

// newMethod builds the Method for an interface method.
func newMethod(owner string, m reflect.Method) *Method {
	fn := m.Type

	method := &Method{
		Key:      KeyOf(m.Name, fn),
		Owner:    owner,
		Type:     fn,
		In:       make([]reflect.Type, fn.NumIn()),
		Out:      make([]reflect.Type, fn.NumOut()),
		Variadic: fn.IsVariadic(),
	}

	for i := range fn.NumIn() {
		method.In[i] = fn.In(i)
	}

	for i := range fn.NumOut() {
		method.Out[i] = fn.Out(i)
	}

	return method
}
