// Package validation holds the fail-slow result types of a configuration
// validation run and renders them.
//
// # Core Concepts
//
//   - [Error]: one violation, addressed by a dotted document path.
//   - [Result]: errors for one (context, type) pair, grouped by path in the
//     order paths were first seen. A Result is never cut short; every
//     violation found is kept.
//   - [Sweep]: the results of a whole contexts x types run.
//   - [Reporter]: text (`<path> -> <message>` lines) or JSON output.
//
// # Basic Usage
//
//	result := validation.NewResult()
//	result.Add(validation.Mismatch("Acme.port", "invalid_type", "Invalid type", "80"))
//	if result.HasErrors() {
//		_ = validation.WriteLines(os.Stdout, result)
//	}
package validation
