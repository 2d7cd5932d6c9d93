// Package storage provides the object storage used for generated reports,
// with pluggable backends registered by name.
//
// # Backends
//
//   - storage/local: files under a base directory (default)
//   - storage/s3: Amazon S3 and S3-compatible services such as MinIO
//
// Backends register themselves in init; import them for side effects:
//
//	import _ "github.com/kbukum/meetnotes/storage/local"
//
// # Configuration
//
//	storage:
//	  provider: "s3"
//	  s3:
//	    bucket: "meeting-reports"
//	    region: "eu-west-1"
package storage
