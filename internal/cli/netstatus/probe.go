// Package netstatus отвечает на вопрос «есть ли сеть» перед отправкой запроса.
package netstatus

import (
	"context"
	"net"
	"time"
)

// Probe сообщает, доступна ли сеть.
type Probe interface {
	Connected(ctx context.Context) bool
}

// Func адаптирует функцию к Probe.
type Func func(ctx context.Context) bool

// Connected вызывает f.
func (f Func) Connected(ctx context.Context) bool { return f(ctx) }

// Static — проба с фиксированным ответом.
type Static bool

// Connected возвращает зафиксированное значение.
func (s Static) Connected(context.Context) bool { return bool(s) }

// DialProbe проверяет связность TCP-подключением к заданному адресу (PROBE_ADDR).
type DialProbe struct {
	Addr    string
	Timeout time.Duration
}

// NewDialProbe создаёт пробу для host:port.
func NewDialProbe(addr string, timeout time.Duration) *DialProbe {
	return &DialProbe{Addr: addr, Timeout: timeout}
}

// Connected пытается открыть соединение и сразу его закрывает.
func (p *DialProbe) Connected(ctx context.Context) bool {
	if p.Addr == "" {
		return false
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", p.Addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
