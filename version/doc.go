// Package version reports build version information.
package version
