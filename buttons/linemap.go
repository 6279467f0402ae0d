package buttons

import "fmt"

// Bank is an STM32 GPIO port index.
type Bank int

const (
	BankA Bank = iota
	BankB
	BankC
	BankD
	BankE
	BankF
	BankG
	BankH
	BankI
)

func (b Bank) String() string {
	if b < BankA || b > BankI {
		return fmt.Sprintf("GPIO?%d", int(b))
	}
	return "GPIO" + string(rune('A'+int(b)))
}

// LineID names one pin on one port.
type LineID struct {
	Bank Bank
	Pin  int
}

func (l LineID) String() string {
	return fmt.Sprintf("%v%d", l.Bank, l.Pin)
}

// Variant selects a button wiring table.
type Variant int

const (
	// VariantBB2 is shared by the bb2, ev1 and ev2 boards.
	VariantBB2 Variant = iota
	VariantBigboard
	VariantSnowy
)

var variantNames = map[Variant]string{
	VariantBB2:      "bb2",
	VariantBigboard: "bigboard",
	VariantSnowy:    "snowy",
}

func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// LineMap is a variant's wiring, one entry per real button.
type LineMap map[Button]LineID

var lineMaps = map[Variant]LineMap{
	VariantBB2: {
		Back:   {BankC, 3},
		Up:     {BankA, 2},
		Select: {BankC, 6},
		Down:   {BankA, 1},
	},
	VariantBigboard: {
		Back:   {BankA, 2},
		Up:     {BankA, 1},
		Select: {BankA, 3},
		Down:   {BankC, 9},
	},
	VariantSnowy: {
		Back:   {BankG, 4},
		Up:     {BankG, 3},
		Select: {BankG, 1},
		Down:   {BankG, 2},
	},
}

// MapFor returns a copy of the wiring table for v.
func MapFor(v Variant) (LineMap, bool) {
	m, ok := lineMaps[v]
	if !ok {
		return nil, false
	}
	out := make(LineMap, len(m))
	for b, id := range m {
		out[b] = id
	}
	return out, true
}

// LineFor looks up the pin behind b.
func (m LineMap) LineFor(b Button) (LineID, bool) {
	id, ok := m[b]
	return id, ok
}

// LineFor is MapFor followed by LineMap.LineFor.
func LineFor(v Variant, b Button) (LineID, bool) {
	m, ok := lineMaps[v]
	if !ok {
		return LineID{}, false
	}
	return m.LineFor(b)
}
