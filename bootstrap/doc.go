// Package bootstrap runs a finite task inside a uniform application lifecycle.
//
// NewApp applies config defaults, validates the config and initializes the
// logger. RunTask starts the registered components, runs OnStart hooks,
// executes the task with a context that SIGINT/SIGTERM cancel, and always
// shuts down: OnStop hooks first, then components in reverse order.
package bootstrap
