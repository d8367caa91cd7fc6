// Package roman converts between integers and Roman numerals.
//
// Two notations are supported:
//
//   - Plain numerals for 1..3999, built from I, V, X, L, C, D and M.
//   - Vinculum numerals for 1..3,999,999, where a letter followed by the
//     combining overline U+0305 is worth 1000 times its plain value
//     ("I̅V̅" is 4000).
//
// Encoding is greedy over a descending symbol table. Decoding is a single
// left-to-right scan with one symbol of lookahead for subtractive pairs; it is
// deliberately lenient ("IIII" decodes to 4). IsValid is the strict check: a
// numeral is valid only when its decoded value re-encodes to exactly the same
// text.
//
// Nothing in this package returns an error or panics. Failures are reported
// through sentinels: an empty string or nil slice from the encoders, 0 from
// Decode, false from the classifiers.
//
// # Usage
//
//	roman.EncodePlain(1994)   // "MCMXCIV"
//	roman.EncodeMarked(4500)  // "I̅V̅D"
//	roman.Decode("mcmxciv")   // 1994
//	roman.IsValid("IIII")     // false
//
// All functions are safe for concurrent use; the symbol tables are never
// mutated after package initialization.
package roman
