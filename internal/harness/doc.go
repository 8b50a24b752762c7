// Package harness runs YAML scenarios against a fresh inventory.System and
// records a deterministic trace of every step.
//
// A scenario lists steps (add, remove, adjust, get, list, low, save, load),
// each with an optional expect clause, plus the expected final catalog:
//
//	name: widget_adjust
//	description: Adjusting below zero is rejected
//	steps:
//	  - op: add
//	    sku: WIDGET
//	    quantity: 10
//	    unit_price: 2.5
//	  - op: adjust
//	    sku: WIDGET
//	    delta: -20
//	    expect:
//	      error: VALIDATION
//	final:
//	  - sku: WIDGET
//	    quantity: 10
//	    unit_price: 2.5
//
// A step without an expect clause must succeed. Paths given to save and load
// resolve inside a temporary work directory owned by the run; the optional
// seed file resolves relative to the scenario file.
//
// Traces serialise to canonical JSON, so golden files compare byte for byte.
package harness
