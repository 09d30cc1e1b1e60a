package types

// Environment is a lexical scope of variable and function types. Lookups
// fall through to the parent scope.
type Environment struct {
	parent    *Environment
	variables map[string]Type
	functions map[string]Function
}

func NewEnvironment() *Environment {
	return &Environment{
		variables: make(map[string]Type),
		functions: make(map[string]Function),
	}
}

// NewChild opens a nested scope.
func (e *Environment) NewChild() *Environment {
	child := NewEnvironment()
	child.parent = e
	return child
}

func (e *Environment) Parent() *Environment { return e.parent }

func (e *Environment) Define(name string, t Type) {
	e.variables[name] = t
}

func (e *Environment) Lookup(name string) (Type, bool) {
	for env := e; env != nil; env = env.parent {
		if t, ok := env.variables[name]; ok {
			return t, true
		}
	}
	return nil, false
}

func (e *Environment) DefineFunction(name string, fn Function) {
	e.functions[name] = fn
}

func (e *Environment) LookupFunction(name string) (Function, bool) {
	for env := e; env != nil; env = env.parent {
		if fn, ok := env.functions[name]; ok {
			return fn, true
		}
	}
	return Function{}, false
}
