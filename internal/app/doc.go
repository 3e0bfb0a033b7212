// Package app wires the manifest loader, the factory binder, and the module
// registry into a runnable application with an isolated logger. It exists so
// cmd/cli stays a thin argument-parsing shell and so integration tests can
// run the exact production startup path against temporary manifest trees.
package app
