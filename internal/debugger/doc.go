// Package debugger drives an external debugger in batch mode to read the value of a
// variable at the Nth hit of a source breakpoint.
//
// A Dialect describes the command language of one debugger together with the adapter
// that parses its output. The Driver writes a per-session script to a temporary file,
// runs the debugger once against the target executable and hands the captured output
// back for extraction. Every session uses a fresh debugger process.
package debugger
