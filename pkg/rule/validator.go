// Package rule wraps go-playground/validator for struct and field validation.
package rule

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	inst *validator.Validate
	once sync.Once
)

// initValidator reuses gin's validator engine when available, otherwise a
// fresh instance; either way the tag name is "rule".
func initValidator() {
	if engine := binding.Validator.Engine(); engine != nil {
		if v, ok := engine.(*validator.Validate); ok {
			inst = v
			inst.SetTagName("rule")

			return
		}
	}

	inst = validator.New()
	inst.SetTagName("rule")
}

// lazyInit initializes the global validator (idempotent).
func lazyInit() {
	once.Do(initValidator)
}

// Engine returns the global *validator.Validate, initializing it if needed.
func Engine() *validator.Validate {
	lazyInit()

	return inst
}

// RegisterValidation proxies RegisterValidation, ensuring initialization.
func RegisterValidation(tag string, fn validator.Func, opts ...bool) error {
	lazyInit()

	return inst.RegisterValidation(tag, fn, opts...)
}

// ValidateStruct validates a full struct, returning the raw error.
func ValidateStruct(s any) error {
	lazyInit()

	return inst.Struct(s)
}

// ValidateVar validates a single value, e.g. ValidateVar("abc", "required,email").
func ValidateVar(field any, tag string) error {
	lazyInit()

	return inst.Var(field, tag)
}

// RegisterAlias wraps RegisterAlias for registering rule aliases.
func RegisterAlias(alias, rules string) {
	lazyInit()

	inst.RegisterAlias(alias, rules)
}
