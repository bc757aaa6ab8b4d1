package routes

import (
	"fmt"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// routesSymbol is the exported value a route module must declare: a slice
// of routes, a function returning one, or a function returning a slice and
// an error.
const routesSymbol = "Routes"

// loadGoModule evaluates a route module with yaegi and resolves its Routes
// symbol down to a plain value for normalize.
func (r *Resolver) loadGoModule(path string) result {
	value, err := evalRoutesModule(path)
	if err != nil {
		return fallback(err)
	}
	return normalize(value)
}

func evalRoutesModule(path string) (any, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("route module interpreter: %w", err)
	}
	if _, err := i.EvalPath(path); err != nil {
		return nil, fmt.Errorf("interpret %s: %w", path, err)
	}

	v, err := i.Eval(routesSymbol)
	if err != nil {
		return nil, fmt.Errorf("route module must export %s: %w", routesSymbol, err)
	}

	if v.Kind() == reflect.Func {
		return invokeRoutesFunc(v)
	}
	if !v.CanInterface() {
		return nil, fmt.Errorf("route module %s value is not accessible", routesSymbol)
	}
	return v.Interface(), nil
}

// invokeRoutesFunc calls a no-argument Routes function. One return value
// is taken as the list; with two, the second must be a non-nil-checked
// error.
func invokeRoutesFunc(fn reflect.Value) (any, error) {
	if fn.Type().NumIn() != 0 {
		return nil, fmt.Errorf("%s function must take no arguments", routesSymbol)
	}

	results := fn.Call(nil)
	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		if err, isErr := results[1].Interface().(error); isErr && err != nil {
			return nil, fmt.Errorf("%s function: %w", routesSymbol, err)
		}
		return results[0].Interface(), nil
	default:
		return nil, fmt.Errorf("%s function must return a value or a value and an error", routesSymbol)
	}
}
