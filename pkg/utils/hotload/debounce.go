package hotload

import (
	"sync"
	"time"
)

// Debouncer 将一段时间内的多次触发合并为一次钩子调用
type Debouncer struct {
	mu       sync.Mutex
	duration time.Duration
	timer    *time.Timer
	hook     Func
	stopped  bool
}

// NewDebouncer 创建防抖器
func NewDebouncer(d time.Duration, hook Func) *Debouncer {
	return &Debouncer{duration: d, hook: hook}
}

// Trigger 启动或重置防抖定时器
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Reset(d.duration)
		return
	}
	d.timer = time.AfterFunc(d.duration, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	stopped := d.stopped
	d.mu.Unlock()

	if !stopped {
		d.hook()
	}
}

// Stop 取消尚未触发的定时器，之后的 Trigger 不再生效
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
