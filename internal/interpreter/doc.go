// Package interpreter defines the contract language adapters implement and the
// pipeline that drives them.
//
// A run starts from a [DataHolder] and a [SupportLevel]. [Run] builds a fresh
// [Interpreter] from a [Descriptor] and calls, in order:
//
//   - FetchCode, which picks the bloc or the line according to the level
//   - Fallback, which may hand the entire run to another interpreter
//   - AddBoilerplate, Build and Execute, stopping at the first error
//
// Fallback targets are ordinary descriptors; [Delegate] reruns the whole
// pipeline on them with the same context and level. The package does not
// detect delegation cycles. The registry validates the declared relation.
//
// Each interpreter stages its files under <work_dir>/<name>, created on demand
// by [Workspace].
package interpreter
