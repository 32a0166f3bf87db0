package constants

import "github.com/lixenwraith/fruit-merge/core"

// Tier is a fruit's ordinal in the catalog; larger tiers are bigger and score more
// Ordinals are stable: merge arithmetic relies on Tier+1 being the next fruit
type Tier int

// TierNone marks a hidden guide while a drop is in flight
const TierNone Tier = -1

// Catalog ordinals
const (
	TierCherry Tier = iota
	TierStrawberry
	TierGrapes
	TierDekopon
	TierPersimmon
	TierApple
	TierPear
	TierPeach
	TierPineapple
	TierMelon
	TierWatermelon

	FruitCount = int(TierWatermelon) + 1
)

// NextTierRange bounds random next-fruit generation to tiers [0, NextTierRange)
// Fixed regardless of catalog size to keep early and mid game difficulty bounded
const NextTierRange = 5

// FruitTier is one immutable catalog row
type FruitTier struct {
	Name   string
	Score  int     // Awarded when two fruits of this tier merge
	Radius float64 // World units
	Color  core.RGB
}

// Fruits is the ordinal-indexed catalog
var Fruits = [FruitCount]FruitTier{
	TierCherry:     {Name: "cherry", Score: 1, Radius: 0.3, Color: core.RGB{R: 220, G: 0, B: 80}},
	TierStrawberry: {Name: "strawberry", Score: 3, Radius: 0.4, Color: core.RGB{R: 255, G: 57, B: 20}},
	TierGrapes:     {Name: "grapes", Score: 6, Radius: 0.5, Color: core.RGB{R: 138, G: 43, B: 226}},
	TierDekopon:    {Name: "dekopon", Score: 10, Radius: 0.8, Color: core.RGB{R: 255, G: 170, B: 0}},
	TierPersimmon:  {Name: "persimmon", Score: 15, Radius: 1.1, Color: core.RGB{R: 255, G: 120, B: 0}},
	TierApple:      {Name: "apple", Score: 21, Radius: 1.4, Color: core.RGB{R: 255, G: 0, B: 0}},
	TierPear:       {Name: "pear", Score: 28, Radius: 1.7, Color: core.RGB{R: 255, G: 255, B: 153}},
	TierPeach:      {Name: "peach", Score: 36, Radius: 2.1, Color: core.RGB{R: 255, G: 192, B: 203}},
	TierPineapple:  {Name: "pineapple", Score: 45, Radius: 2.4, Color: core.RGB{R: 255, G: 239, B: 0}},
	TierMelon:      {Name: "melon", Score: 55, Radius: 3.0, Color: core.RGB{R: 0, G: 255, B: 127}},
	TierWatermelon: {Name: "watermelon", Score: 66, Radius: 4.0, Color: core.RGB{R: 0, G: 128, B: 0}},
}

// Valid reports whether t indexes the catalog
func (t Tier) Valid() bool {
	return t >= 0 && int(t) < FruitCount
}

// Info returns the catalog row for t; callers check Valid first
func (t Tier) Info() FruitTier {
	return Fruits[t]
}

// Terminal reports whether t merges into nothing
func (t Tier) Terminal() bool {
	return int(t) == FruitCount-1
}

// Next returns the tier produced by merging two fruits of tier t
// Terminal tiers return TierNone
func (t Tier) Next() Tier {
	if !t.Valid() || t.Terminal() {
		return TierNone
	}
	return t + 1
}

func (t Tier) String() string {
	if !t.Valid() {
		return "none"
	}
	return Fruits[t].Name
}
