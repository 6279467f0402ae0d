// Package board describes the watch hardware variants and assembles the
// button path of one of them against a GPIO provider.
package board

import (
	"sort"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"dscheirer.com/pblbuttons/buttons"
)

// MCU families the boards are built on.
const (
	MCUSTM32F2 = "stm32f2xx"
	MCUSTM32F4 = "stm32f4xx"
)

// StorageFlash is the external flash part a board carries.
type StorageFlash struct {
	Part       string
	SPIBus     int            // 0 when memory mapped
	ChipSelect buttons.LineID // only for SPI parts
	Base       uint32         // only for memory mapped parts
	SizeBytes  uint32
	SectorSize uint32
}

// Display is the panel a board drives.
type Display struct {
	Part           string
	SPIBus         int
	BacklightTimer int // PWM timer number driving brightness
}

// Config is everything the machine registration hands to board assembly.
type Config struct {
	Name        string
	Description string
	MCU         string
	FlashKB     int
	RAMKB       int
	OscHz       int
	Osc2Hz      int
	Buttons     buttons.Variant
	Storage     StorageFlash
	Display     Display
	UARTs       [3]string // roles of UART1..3
}

var uartRoles = [3]string{"unused", "pebble protocol", "console"}

func stm32f2Board(name, desc string, v buttons.Variant) Config {
	return Config{
		Name:        name,
		Description: desc,
		MCU:         MCUSTM32F2,
		FlashKB:     4096,
		RAMKB:       128,
		OscHz:       8000000,
		Osc2Hz:      32768,
		Buttons:     v,
		Storage: StorageFlash{
			Part:       "n25q032a11",
			SPIBus:     1,
			ChipSelect: buttons.LineID{Bank: buttons.BankA, Pin: 4},
			SizeBytes:  4 * 1024 * 1024,
		},
		Display: Display{Part: "sm-lcd", SPIBus: 2, BacklightTimer: 3},
		UARTs:   uartRoles,
	}
}

var boards = map[string]Config{
	"pebble-bb2": stm32f2Board("pebble-bb2", "Pebble smartwatch (bb2/ev1/ev2)", buttons.VariantBB2),
	"pebble-bb":  stm32f2Board("pebble-bb", "Pebble smartwatch (bb)", buttons.VariantBigboard),
	"pebble-snowy-bb": {
		Name:        "pebble-snowy-bb",
		Description: "Pebble smartwatch (snowy)",
		MCU:         MCUSTM32F4,
		FlashKB:     4096,
		RAMKB:       256,
		OscHz:       8000000,
		Osc2Hz:      32768,
		Buttons:     buttons.VariantSnowy,
		Storage: StorageFlash{
			Part:       "mx29vs128fb",
			Base:       0x60000000,
			SizeBytes:  16 * 1024 * 1024,
			SectorSize: 32 * 1024,
		},
		Display: Display{Part: "pebble-snowy-display", SPIBus: 6, BacklightTimer: 12},
		UARTs:   uartRoles,
	},
}

// DefaultBoard is used when nothing is configured.
const DefaultBoard = "pebble-bb2"

// Lookup finds a registered board by name.
func Lookup(name string) (Config, error) {
	cfg, ok := boards[name]
	if !ok {
		return Config{}, errors.Errorf("unknown board %q", name)
	}
	return cfg, nil
}

// Names lists the registered boards, sorted.
func Names() []string {
	names := make([]string, 0, len(boards))
	for n := range boards {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Sectors is the number of erase sectors on a memory mapped storage flash.
func (s StorageFlash) Sectors() uint32 {
	if s.SectorSize == 0 {
		return 0
	}
	return s.SizeBytes / s.SectorSize
}

// LineProvider hands out the GPIO input pins owned by the MCU emulation.
type LineProvider interface {
	Line(id buttons.LineID) (buttons.LineSink, error)
}

// Machine is an assembled board.
type Machine struct {
	Config Config
	Kernel string
	Input  *buttons.Input
}

// Assemble binds the board's button lines and builds its input path.
func Assemble(cfg Config, kernel string, provider LineProvider, clock clockwork.Clock, logger buttons.Logger) (*Machine, error) {
	if kernel == "" {
		return nil, errors.Errorf("%s: no kernel image", cfg.Name)
	}
	m, ok := buttons.MapFor(cfg.Buttons)
	if !ok {
		return nil, errors.Errorf("%s: no button map for %v", cfg.Name, cfg.Buttons)
	}

	lines := make([]*buttons.ButtonLine, 0, len(m))
	for _, b := range buttons.All {
		id, ok := m.LineFor(b)
		if !ok {
			return nil, errors.Errorf("%s: button %v is not wired", cfg.Name, b)
		}
		sink, err := provider.Line(id)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: button %v", cfg.Name, b)
		}
		lines = append(lines, &buttons.ButtonLine{Button: b, ID: id, Sink: sink})
	}

	return &Machine{
		Config: cfg,
		Kernel: kernel,
		Input:  buttons.NewInput(lines, clock, logger),
	}, nil
}
