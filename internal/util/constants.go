package util

const DateFormat = "2006-01-02"

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const MimeImage = "image/"

// gin context keys
const ContextUserKey = "user"
