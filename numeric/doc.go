// Package numeric is the operator table of the numrt runtime: one entry point
// per (operation, type) pair over i16, i32, i64, f32 and f64.
//
// Integer add, subtract, multiply and negate wrap modulo 2^w. Integer divide
// fails with a DivisionByZeroError when the divisor is zero and with an
// OverflowError for MIN / -1. Float operations follow IEEE 754 and never fail.
//
// The package holds no mutable state and performs no I/O; every function is
// safe to call from any number of goroutines.
package numeric
