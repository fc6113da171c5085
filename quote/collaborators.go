package quote

// Tier is a rebate tier whose percentage depends on age
type Tier interface {
	Percentage(age int) (float64, error)
}

// TierLookup resolves an income tier key to its rebate tier
type TierLookup interface {
	Tier(incomeTier string) (Tier, error)
}

// LifetimeLoading is the loading percentage applied for late entry into cover
type LifetimeLoading struct {
	Loading float64 `json:"Loading" yaml:"Loading"`
}
