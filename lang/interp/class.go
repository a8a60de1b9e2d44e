package interp

import (
	"github.com/dolthub/swiss"
	"github.com/mna/lox/lang/loxerr"
	"github.com/mna/lox/lang/token"
	"github.com/mna/lox/lang/types"
	"golang.org/x/exp/slices"
)

// Class is a user-defined class. Calling the class constructs an instance
// of it.
type Class struct {
	name    string
	methods *swiss.Map[string, *Function]
}

var _ Callable = (*Class)(nil)

func (c *Class) String() string    { return c.name }
func (c *Class) Type() string      { return "class" }
func (c *Class) Truth() types.Bool { return types.True }
func (c *Class) Name() string      { return c.name }
func (c *Class) Arity() int        { return 0 }

// Call constructs a new instance of the class.
func (c *Class) Call(i *Interpreter, args []types.Value) (types.Value, error) {
	return &Instance{
		class:  c,
		fields: swiss.NewMap[string, types.Value](8),
	}, nil
}

// MethodNames returns the names of the class's methods, sorted.
func (c *Class) MethodNames() []string {
	names := make([]string, 0, c.methods.Count())
	c.methods.Iter(func(name string, _ *Function) bool {
		names = append(names, name)
		return false
	})
	slices.Sort(names)
	return names
}

func (c *Class) findMethod(name string) (*Function, bool) {
	return c.methods.Get(name)
}

// Instance is an instance of a class, with its own field map.
type Instance struct {
	class  *Class
	fields *swiss.Map[string, types.Value]
}

var _ types.Value = (*Instance)(nil)

func (n *Instance) String() string    { return n.class.name + " instance" }
func (n *Instance) Type() string      { return "instance" }
func (n *Instance) Truth() types.Bool { return types.True }

// Get reads a property: instance fields shadow class methods.
func (n *Instance) Get(name token.Token) (types.Value, error) {
	if v, ok := n.fields.Get(name.Lexeme); ok {
		return v, nil
	}
	if m, ok := n.class.findMethod(name.Lexeme); ok {
		return m, nil
	}
	return nil, loxerr.Runtimef(name, "Undefined property '%s'.", name.Lexeme)
}

// Set writes a field, creating it if absent.
func (n *Instance) Set(name token.Token, v types.Value) {
	n.fields.Put(name.Lexeme, v)
}
