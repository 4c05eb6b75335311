package common

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// CleanHTML 去除文字中的 HTML 標籤
func CleanHTML(text string) string {
	if text == "" {
		return ""
	}
	return htmlTagPattern.ReplaceAllString(text, "")
}

// FormatTime 將分鐘數格式化為可讀字串
func FormatTime(minutes int) string {
	if minutes <= 0 {
		return "Unknown"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	remaining := minutes % 60
	if remaining == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, remaining)
}

// TruncateText 截斷文字並加上省略號，盡量在字詞邊界斷開。
// 以 rune 為單位計長，避免把多位元組字元切成半個。
func TruncateText(text string, maxLength int) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	truncated := string(runes[:maxLength])
	lastSpace := strings.LastIndex(truncated, " ")

	if lastSpace > len(truncated)*8/10 {
		return truncated[:lastSpace] + "..."
	}
	return truncated + "..."
}

// FormatIngredientList 格式化食材列表供顯示
func FormatIngredientList(ingredients []string, maxDisplay int) string {
	if len(ingredients) == 0 {
		return "No ingredients listed"
	}
	if len(ingredients) <= maxDisplay {
		return strings.Join(ingredients, ", ")
	}
	displayed := ingredients[:maxDisplay]
	remaining := len(ingredients) - maxDisplay
	return fmt.Sprintf("%s, and %d more", strings.Join(displayed, ", "), remaining)
}
