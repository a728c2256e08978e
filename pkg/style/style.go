// Package style 提供终端输出的样式化功能
package style

import "github.com/charmbracelet/lipgloss"

// JSON 高亮颜色
const (
	ColorJSONKey    = lipgloss.Color("#55BCF4") // 键名
	ColorJSONValue  = lipgloss.Color("#E4E4E4") // 字符串值
	ColorJSONNumber = lipgloss.Color("#D4EC19") // 数字
	ColorJSONBool   = lipgloss.Color("#DFAB49") // 布尔
	ColorJSONNull   = lipgloss.Color("#6272A4") // null
	ColorJSONPunct  = lipgloss.Color("#6B7280") // 标点

	// 成功提示，例如 variants 列表中当前选中的变体
	ColorSuccess = lipgloss.Color("#22C55E")
)

// Highlight 以成功色加粗渲染文本
func Highlight(s string) string {
	return lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Render(s)
}
