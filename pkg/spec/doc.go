// Package spec runs behavior-driven test chains.
//
// A chain reads as a sentence of steps:
//
//	func TestDivide(t *testing.T) {
//		spec.New(t).
//			Given(spec.Do2("A_calculator_dividing_0_by_1_", calc.Load, 10, 0)).
//			When(spec.Do("Dividing", calc.Divide)).
//			ThenA(spec.KindOf[*calc.DivideByZeroError]()).
//			IsThrown()
//	}
//
// Given and Then steps fail the test as soon as they return an error. When
// steps do not: their failure, or a recovered panic, is held as pending until
// the chain either declares the expected kind with ThenA/ThenAn/AndA/AndAn or
// moves on. Moving on re-raises the pending failure wrapped in an
// UnexpectedFailure, so a captured failure is never silently lost.
//
// Each handle type (Arranging, Acting, Asserting, FailureAssertion) exposes
// only the transitions legal in its phase.
//
// Every step and declaration is also written as a narrative line, e.g.
//
//	Given A calculator dividing 10 by 0
//	When Dividing
//	Then a DivideByZeroError is thrown
package spec
