// Package conformance verifies every entry point of the numeric table, as
// reached through a calling convention, against exact reference models.
//
// Integer expectations come from math/big arithmetic reduced to the kind's
// width (wrapping) or range-checked (checked). Float expectations come from
// math/big.Float, whose operations round once to the requested precision,
// so the reference is correctly rounded even where the result is subnormal.
// Vectors are the kind's edge values, all pairs of them for binary
// operations, plus seeded random operands.
package conformance
