// Package check records requirement outcomes for one milestone run and turns
// the final tally into a process exit code.
//
// A Check is created once per run and passed explicitly to whatever
// evaluates requirements. Record appends an immutable Result and prints one
// progress line; Finalize prints the summary and calls the exit function.
//
// # Output
//
// The text layout is stable and meant to be grepped:
//
//	============================================================
//	  <SECTION TITLE>
//	============================================================
//	  [PASS] <requirement name>
//	  [FAIL] <requirement name>
//	         <detail, if present>
//
//	============================================================
//	  RESULTS: <passed>/<total> passed, <failed> failed
//	============================================================
//
//	  Failed checks:
//	    - <name> (<detail>)
//
// On an all-pass run the failed-checks block is replaced by
// "  All checks passed.". The exit code is 0 without failures and 1
// otherwise.
//
// # Structured output
//
// WithJSON adds a Report, written after the text summary, carrying a UUIDv7
// run ID and a stable slug ID per result (see Slug).
package check
