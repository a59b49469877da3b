package core

import (
	"math/big"
	"strings"
	"unicode/utf8"
)

// BasePremiums is the unmodified price per insurance type.
var BasePremiums = map[InsuranceType]int64{
	InsuranceTypeAuto:    5000,
	InsuranceTypeMedical: 7000,
	InsuranceTypeHouse:   10000,
}

const (
	longNameThreshold = 10
	metroMarker       = "Metro"
)

// Modifier is a multiplicative adjustment applied to the running premium.
type Modifier struct {
	Name    string
	Factor  *big.Rat
	Applies func(ValidatedRequest) bool
}

// AppliedModifier records a modifier that matched a request.
type AppliedModifier struct {
	Name   string `json:"name"`
	Factor string `json:"factor"`
}

// Breakdown explains how a premium was reached.
type Breakdown struct {
	Base      int64             `json:"base"`
	Modifiers []AppliedModifier `json:"modifiers"`
	Premium   int64             `json:"premium"`
}

// DefaultModifiers returns the modifier chain in application order:
// the long-name discount first, then the metro surcharge.
func DefaultModifiers() []Modifier {
	return []Modifier{
		{
			Name:   "long_name_discount",
			Factor: big.NewRat(95, 100),
			Applies: func(v ValidatedRequest) bool {
				return utf8.RuneCountInString(v.CustomerName) > longNameThreshold
			},
		},
		{
			Name:   "metro_surcharge",
			Factor: big.NewRat(110, 100),
			Applies: func(v ValidatedRequest) bool {
				return strings.Contains(v.CustomerAddress, metroMarker)
			},
		},
	}
}

// PremiumCalculator is a pure function of its input; it holds no mutable state.
type PremiumCalculator struct {
	base      map[InsuranceType]int64
	modifiers []Modifier
}

func NewPremiumCalculator() *PremiumCalculator {
	return &PremiumCalculator{
		base:      BasePremiums,
		modifiers: DefaultModifiers(),
	}
}

// Calculate returns the final premium for a validated request.
func (c *PremiumCalculator) Calculate(v ValidatedRequest) int64 {
	return c.Quote(v).Premium
}

// Quote runs the base lookup and the modifier chain. The running value is
// kept exact and rounded half up to an integer only once, at the end.
func (c *PremiumCalculator) Quote(v ValidatedRequest) Breakdown {
	base := c.base[v.InsuranceType]
	running := new(big.Rat).SetInt64(base)

	applied := make([]AppliedModifier, 0, len(c.modifiers))
	for _, m := range c.modifiers {
		if !m.Applies(v) {
			continue
		}
		running.Mul(running, m.Factor)
		applied = append(applied, AppliedModifier{Name: m.Name, Factor: m.Factor.FloatString(2)})
	}

	return Breakdown{
		Base:      base,
		Modifiers: applied,
		Premium:   roundHalfUp(running),
	}
}

// roundHalfUp computes floor(x + 1/2) for non-negative x.
func roundHalfUp(x *big.Rat) int64 {
	num := new(big.Int).Mul(x.Num(), big.NewInt(2))
	num.Add(num, x.Denom())
	den := new(big.Int).Mul(x.Denom(), big.NewInt(2))
	return new(big.Int).Quo(num, den).Int64()
}
