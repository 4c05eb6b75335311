package common

import (
	"net/http"
)

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// 預定義錯誤代碼
const (
	ErrCodeInvalidRequest = "INVALID_REQUEST" // 400
	ErrCodeNotFound       = "NOT_FOUND"       // 404
	ErrCodeInternalError  = "INTERNAL_ERROR"  // 500

	ErrCodeProviderUnavailable = "PROVIDER_UNAVAILABLE"
	ErrCodeModelNotReady       = "MODEL_NOT_READY"
	ErrCodeCacheMiss           = "CACHE_MISS"
	ErrCodeCacheDisabled       = "CACHE_DISABLED"
	ErrCodeCacheFull           = "CACHE_FULL"
	ErrCodeStoreError          = "STORE_ERROR"
)

// 預定義錯誤
var (
	ErrInvalidRequest = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound       = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrInternalError  = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)

	// 業務錯誤：降級路徑一律消化在內部，不穿透到 Rank/Normalize 的呼叫端
	ErrProviderUnavailable = NewError(ErrCodeProviderUnavailable, "食譜供應商不可用", http.StatusServiceUnavailable, nil)
	ErrModelNotReady       = NewError(ErrCodeModelNotReady, "模型尚未訓練完成", http.StatusServiceUnavailable, nil)
	ErrCacheMiss           = NewError(ErrCodeCacheMiss, "快取未命中", http.StatusNotFound, nil)
	ErrCacheDisabled       = NewError(ErrCodeCacheDisabled, "緩存已禁用", http.StatusServiceUnavailable, nil)
	ErrCacheFull           = NewError(ErrCodeCacheFull, "緩存已滿", http.StatusServiceUnavailable, nil)
	ErrInvalidRating       = NewValidationError("rating must be one of like, dislike, love, tried")
)
