package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
	StorageNone  = "none"
)

const (
	ShellApp     = "app"
	ShellBrowser = "browser"
	ShellNone    = "none"
)

const (
	MimeHTML = "text/html; charset=utf-8"
)

// MaxQuestionCount 上游单次请求 amount 的上限
const MaxQuestionCount = 50

const (
	HealthPath    = "/api/health"
	RequestIDKey  = "request_id"
	RequestIDHead = "X-Request-ID"
)
