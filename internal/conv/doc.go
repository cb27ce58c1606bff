// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow/underflow
// when converting between signed and unsigned sizes, for example byte counts
// parsed from the command line.
package conv
