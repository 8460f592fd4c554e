// Package recognizer launches the external optical music recognition
// engine as a child process and locates its structured output.
//
// The engine is a capability boundary: this package owns only the
// invocation contract (arguments, timeout, output discovery), never the
// recognition itself. The concrete implementation drives Audiveris in
// batch export mode, but everything downstream depends only on the Engine
// interface so tests and alternative engines can substitute a stub.
//
// # Prerequisites
//
// Audiveris must be installed separately, along with a Java runtime it is
// compatible with (Java 17+ for current releases). Download from
// https://github.com/Audiveris/audiveris/releases.
package recognizer
