// internal/channel/trace.go
package channel

import "github.com/golang/glog"

// traced logs every register operation at verbosity 2.
type traced struct {
	name  string
	inner RegisterChannel
}

// Traced wraps ch so each write and read is logged with its address and byte.
func Traced(name string, ch RegisterChannel) RegisterChannel {
	return &traced{name: name, inner: ch}
}

func (t *traced) WriteRegister(addr Address, value byte) error {
	err := t.inner.WriteRegister(addr, value)
	if glog.V(2) {
		if err != nil {
			glog.Infof("[%s] W 0x%04X <- %02x failed: %v", t.name, uint16(addr), value, err)
		} else {
			glog.Infof("[%s] W 0x%04X <- %02x", t.name, uint16(addr), value)
		}
	}
	return err
}

func (t *traced) ReadRegister(addr Address) (byte, error) {
	b, err := t.inner.ReadRegister(addr)
	if glog.V(2) {
		if err != nil {
			glog.Infof("[%s] R 0x%04X failed: %v", t.name, uint16(addr), err)
		} else {
			glog.Infof("[%s] R 0x%04X -> %02x", t.name, uint16(addr), b)
		}
	}
	return b, err
}
