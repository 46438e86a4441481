// Package parser turns @Parser-annotated classes into toObservable extension
// functions and wrap factories.
package parser

import (
	"github.com/cockroachdb/errors"

	"github.com/broady/rxhttpgen/diag"
	"github.com/broady/rxhttpgen/internal/introspect"
)

// Validate checks the structural preconditions of a parser class. Checks run
// in order and the first failure is returned as one of the diag error types.
func Validate(c *introspect.Class) error {
	loc := c.Location()
	if !c.Public() {
		return errors.WithStack(&diag.NotPublicError{Loc: loc})
	}
	if c.Abstract() {
		return errors.WithStack(&diag.AbstractClassError{Loc: loc})
	}
	if !c.IsParser() {
		return errors.WithStack(&diag.WrongSupertypeError{Loc: loc})
	}
	n := c.TypeCount()
	if n == 0 {
		return nil
	}
	for _, ctor := range c.PublicConstructors() {
		if ctor.Eligible(n) {
			return nil
		}
	}
	return errors.WithStack(&diag.MissingTypeConstructorError{
		Loc:        loc,
		SimpleName: c.Decl.SimpleName(),
		TypeCount:  n,
	})
}
