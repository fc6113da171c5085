// Package rebate resolves government rebate tiers whose percentage is a CEL
// expression over the policy holder's age.
package rebate

import (
	"errors"
	"time"
)

// AgeVariable is the CEL variable bound to the age in years
const AgeVariable = "age"

// ErrTierNotFound is returned for an unknown tier key
var ErrTierNotFound = errors.New("rebate tier not found")

// TierDefinition describes one income tier.
// Expression must evaluate to a number, for example
// `age < 65 ? 24.608 : (age < 70 ? 28.710 : 32.812)`.
type TierDefinition struct {
	Key        string    `json:"key" yaml:"key"`
	Name       string    `json:"name" yaml:"name"`
	Expression string    `json:"expression" yaml:"expression"`
	CreatedAt  time.Time `json:"-" yaml:"-"`
	UpdatedAt  time.Time `json:"-" yaml:"-"`
}
