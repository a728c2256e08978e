// Package greeting 定义内置的问候语变体
//
// 三个变体分别对应三个原本独立部署的实例，现在由配置项 server.variant 选择
package greeting

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultVariant 是未配置变体时使用的名称
const DefaultVariant = "node"

// ErrUnknownVariant 表示配置的变体名称不存在
var ErrUnknownVariant = errors.New("unknown greeting variant")

var variants = map[string]string{
	"node":    "Hello World from Node.js App!",
	"hrutika": "Hellooo Hrutika",
	"ratan":   "Hellooo Ratannnn",
}

// Lookup 返回变体对应的问候语，名称大小写不敏感，空名称视为默认变体
func Lookup(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultVariant
	}
	body, ok := variants[key]
	if !ok {
		return "", fmt.Errorf("%w %q, available: %s", ErrUnknownVariant, name, strings.Join(Names(), ", "))
	}
	return body, nil
}

// Names 返回排序后的所有变体名称
func Names() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve 决定最终的响应体：显式问候语优先，否则按变体查找
func Resolve(variant, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return Lookup(variant)
}
