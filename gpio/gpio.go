// Package gpio is a small in-process stand in for the MCU's GPIO ports: the
// pins the button path drives, their levels and who is watching them.
package gpio

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"dscheirer.com/pblbuttons/buttons"
)

// PinsPerPort matches the STM32 port width.
const PinsPerPort = 16

// Edge is one level change on one pin.
type Edge struct {
	Line buttons.LineID
	High bool
}

func (e Edge) String() string {
	if e.High {
		return fmt.Sprintf("%v high", e.Line)
	}
	return fmt.Sprintf("%v low", e.Line)
}

// Controller owns the ports of one MCU.
type Controller struct {
	mu        sync.Mutex
	ports     []*Port
	observers []func(Edge)
}

// Port is one GPIO bank.
type Port struct {
	ctl    *Controller
	bank   buttons.Bank
	levels [PinsPerPort]bool
	audit  []Edge
}

// Pin is a single input line, usable as a buttons.LineSink.
type Pin struct {
	port *Port
	num  int
}

// NewController creates ports A up to and including last, every pin pulled
// up.
func NewController(last buttons.Bank) *Controller {
	c := &Controller{}
	for b := buttons.BankA; b <= last; b++ {
		p := &Port{ctl: c, bank: b}
		for i := range p.levels {
			p.levels[i] = true
		}
		c.ports = append(c.ports, p)
	}
	return c
}

// Port returns the bank, or nil if the MCU does not have it.
func (c *Controller) Port(b buttons.Bank) *Port {
	if b < 0 || int(b) >= len(c.ports) {
		return nil
	}
	return c.ports[b]
}

// Line implements board.LineProvider.
func (c *Controller) Line(id buttons.LineID) (buttons.LineSink, error) {
	p := c.Port(id.Bank)
	if p == nil {
		return nil, errors.Errorf("no port %v", id.Bank)
	}
	if id.Pin < 0 || id.Pin >= PinsPerPort {
		return nil, errors.Errorf("no pin %v", id)
	}
	return &Pin{port: p, num: id.Pin}, nil
}

// OnChange registers f for every level change on any port. f runs on the
// goroutine that drove the pin.
func (c *Controller) OnChange(f func(Edge)) {
	c.mu.Lock()
	c.observers = append(c.observers, f)
	c.mu.Unlock()
}

// Level reads a pin. Lines the controller does not have read low.
func (c *Controller) Level(id buttons.LineID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.Port(id.Bank)
	if p == nil || id.Pin < 0 || id.Pin >= PinsPerPort {
		return false
	}
	return p.levels[id.Pin]
}

// Audit returns every edge seen on a port, oldest first.
func (c *Controller) Audit(b buttons.Bank) []Edge {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.Port(b)
	if p == nil {
		return nil
	}
	return append([]Edge(nil), p.audit...)
}

// SetLevel drives the pin. Writing the current level again is not an edge.
func (p *Pin) SetLevel(high bool) {
	c := p.port.ctl
	c.mu.Lock()
	if p.port.levels[p.num] == high {
		c.mu.Unlock()
		return
	}
	p.port.levels[p.num] = high
	e := Edge{Line: buttons.LineID{Bank: p.port.bank, Pin: p.num}, High: high}
	p.port.audit = append(p.port.audit, e)
	observers := c.observers
	c.mu.Unlock()

	for _, f := range observers {
		f(e)
	}
}
