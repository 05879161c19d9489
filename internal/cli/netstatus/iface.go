package netstatus

import (
	"context"
	"net"
)

// iface — то, что пробе нужно знать об интерфейсе.
type iface struct {
	Up       bool
	Loopback bool
	HasAddr  bool
}

// InterfaceProbe считает сеть доступной, если поднят хотя бы один интерфейс
// с адресом. Loopback засчитывается только при AllowLoopback (бэкенд на
// localhost). Доступность самого бэкенда не проверяется.
type InterfaceProbe struct {
	AllowLoopback bool

	list func() ([]iface, error)
}

// NewInterfaceProbe создаёт пробу по локальным сетевым интерфейсам.
func NewInterfaceProbe(allowLoopback bool) *InterfaceProbe {
	return &InterfaceProbe{AllowLoopback: allowLoopback, list: systemInterfaces}
}

// Connected перебирает интерфейсы системы.
func (p *InterfaceProbe) Connected(context.Context) bool {
	list := p.list
	if list == nil {
		list = systemInterfaces
	}
	ifs, err := list()
	if err != nil {
		return false
	}
	for _, i := range ifs {
		if !i.Up || !i.HasAddr {
			continue
		}
		if i.Loopback && !p.AllowLoopback {
			continue
		}
		return true
	}
	return false
}

func systemInterfaces() ([]iface, error) {
	ifs, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	out := make([]iface, 0, len(ifs))
	for _, i := range ifs {
		addrs, err := i.Addrs()
		out = append(out, iface{
			Up:       i.Flags&net.FlagUp != 0,
			Loopback: i.Flags&net.FlagLoopback != 0,
			HasAddr:  err == nil && len(addrs) > 0,
		})
	}
	return out, nil
}

// IsLoopbackHost сообщает, указывает ли host (с портом или без) на локальную машину.
func IsLoopbackHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
