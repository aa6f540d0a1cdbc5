// Package storage publishes run artifacts (transcript, subtitles,
// manifest) to a local directory or an S3 bucket.
//
// Backends register a factory from their init function; import the ones
// the binary should support:
//
//	import (
//	    _ "github.com/kbukum/diarscribe/storage/local"
//	    _ "github.com/kbukum/diarscribe/storage/s3"
//	)
//
// Publish uploads a set of artifacts all-or-nothing: when one upload
// fails, the artifacts already written by that call are deleted again.
package storage
