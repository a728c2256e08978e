// Package hotload 监听配置文件变化并在防抖后触发钩子
package hotload

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/yeisme/greeter/pkg/utils/log"
)

const defaultDebounce = 300 * time.Millisecond

// Func 是配置变化时执行的钩子
type Func func()

// WatchFile 监听 path 所在目录中 path 的写入、创建与重命名事件，直到 ctx 取消
//
// 监听目录而不是文件本身：编辑器通常以“写临时文件再重命名”的方式保存，直接监听文件会丢失后续事件
func WatchFile(ctx context.Context, path string, debounce time.Duration, hook Func) error {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("解析配置文件路径失败: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建 watcher 失败: %w", err)
	}
	defer func() {
		if cerr := watcher.Close(); cerr != nil {
			log.Error().Msgf("关闭 watcher 失败: %v", cerr)
		}
	}()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("将目录 '%s' 添加到 watcher 失败: %w", filepath.Dir(abs), err)
	}
	log.Debug().Str("file", abs).Msg("watching config file")

	d := NewDebouncer(debounce, hook)
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isRelevant(event, abs) {
				log.Debug().Msgf("EVENT! Op: %s, Name: %s", event.Op, event.Name)
				d.Trigger()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Msgf("Watcher error: %s", err)
		}
	}
}

// isRelevant 判断事件是否作用于被监听的配置文件
func isRelevant(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
