// Package repl provides the interactive shell for questkeep.
//
// Each input line is split into arguments (single and double quotes
// group words) and handed to an Executor, normally the command tree.
// The shell also understands a few builtins:
//
//	exit, quit        leave the shell
//	history [N]       show the last N lines
//	complete PREFIX   list commands starting with PREFIX
package repl
