package constants

// Storage Upload Limits.
const (
	// MaxUploadConcurrency bounds UPLOAD_CONCURRENCY.
	MaxUploadConcurrency = 64

	// StorageRateBurst is the number of storage requests allowed back to back.
	StorageRateBurst = 1
)

// AWS S3 Validation Constants
//
// These limits are defined by AWS S3 bucket naming rules.
// Reference: https://docs.aws.amazon.com/AmazonS3/latest/userguide/bucketnamingrules.html
const (
	// S3BucketNameMinLength is the minimum allowed S3 bucket name length.
	S3BucketNameMinLength = 3

	// S3BucketNameMaxLength is the maximum allowed S3 bucket name length.
	S3BucketNameMaxLength = 63

	// S3RegionMinLength is the minimum allowed AWS region string length.
	// Shortest region is "us-east-1" (9 chars), but allow 2 for validation flexibility.
	S3RegionMinLength = 2

	// S3RegionMaxLength is the maximum allowed AWS region string length.
	S3RegionMaxLength = 20
)

// Configuration Redaction.
const (
	// RedactedValue is the placeholder for redacted credentials in logs/output.
	RedactedValue = "***REDACTED***"
)
