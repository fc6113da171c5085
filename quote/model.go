// Package quote is the reactive health-insurance quote model.
//
// Attributes live in a path-addressed tree; every notifying write emits the
// written path on the model's bus. Three listeners are fixed at construction:
// the title keeps the gender consistent, and the hospital and extras
// selections are re-emitted as HospitalCode and ExtrasCode.
//
// No listener writes the path it listens on, so every cascade terminates.
// Model is not safe for concurrent use; hosts serialize access.
package quote

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/liamcoop/healthquote/attributes"
	"github.com/liamcoop/healthquote/internal/logger"
)

// Config holds the collaborators and initial state of a Model
type Config struct {
	// AGR resolves income tiers to rebate tiers
	AGR TierLookup

	// LHC is the lifetime health cover loading
	LHC LifetimeLoading

	// Attributes are applied silently; keys are paths
	Attributes map[string]any

	// PreBundledExtrasProducts maps extras codes to their structures; optional
	PreBundledExtrasProducts Catalog

	// Now is the clock used for ages; defaults to time.Now
	Now func() time.Time
}

// Model is a quote whose attribute changes are broadcast as events
type Model struct {
	id      string
	store   *attributes.Store
	agr     TierLookup
	lhc     LifetimeLoading
	catalog Catalog
	now     func() time.Time
}

// New builds a model, applies the initial attributes without events and
// wires the dependent-field and alias listeners.
func New(cfg Config) *Model {
	m := &Model{
		id:      uuid.NewString(),
		store:   attributes.NewStore(attributes.NewBus()),
		agr:     cfg.AGR,
		lhc:     cfg.LHC,
		catalog: cfg.PreBundledExtrasProducts,
		now:     cfg.Now,
	}
	if m.now == nil {
		m.now = time.Now
	}

	m.store.SetAll(cfg.Attributes, true)

	bus := m.store.Bus()
	bus.On(PathTitle, func(value any, args ...any) {
		m.DefaultPolicyHolderGender()
	})
	bus.On(PathHospitalCode, func(value any, args ...any) {
		bus.Emit(EventHospitalCode, append([]any{value}, args...)...)
	})
	bus.On(PathExtras, func(value any, args ...any) {
		bus.Emit(EventExtrasCode, append([]any{value}, args...)...)
	})

	logger.Debug("quote model created", "quote_id", m.id, "attributes", len(cfg.Attributes))

	return m
}

// ID identifies this model instance in logs
func (m *Model) ID() string {
	return m.id
}

// Bus returns the bus changes are emitted on
func (m *Model) Bus() *attributes.Bus {
	return m.store.Bus()
}

// On registers listener for event, a path or an alias event
func (m *Model) On(event string, listener attributes.Listener) *Model {
	m.store.Bus().On(event, listener)
	return m
}

// Get returns the attribute at path
func (m *Model) Get(path string) (any, bool) {
	return m.store.Get(path)
}

// Set writes value at path and emits the change
func (m *Model) Set(path string, value any) *Model {
	logger.Trace("attribute changed", "quote_id", m.id, "path", path, "price_affecting", IsPropertyPriceAffecting(path))
	m.store.Set(path, value)
	return m
}

// SetSilent writes value at path without emitting
func (m *Model) SetSilent(path string, value any) *Model {
	m.store.SetSilent(path, value)
	return m
}

// Snapshot returns a deep copy of the attribute tree
func (m *Model) Snapshot() map[string]any {
	return m.store.Snapshot()
}

func (m *Model) PolicyHolderFirstName() (string, bool) {
	return m.store.GetString(PathFirstName)
}

func (m *Model) PolicyHolderEmail() (string, bool) {
	return m.store.GetString(PathEmail)
}

// PolicyHolderAge returns the floored time elapsed since the date of birth.
// An absent or malformed date returns ErrInvalidDateOfBirth.
func (m *Model) PolicyHolderAge(unit AgeUnit) (int, error) {
	raw, ok := m.store.GetString(PathDateOfBirth)
	if !ok {
		return 0, fmt.Errorf("%w: not set", ErrInvalidDateOfBirth)
	}

	now := m.now()
	dob, err := ParseDateOfBirth(raw, now.Location())
	if err != nil {
		return 0, err
	}

	return Elapsed(now, dob, unit)
}

// DefaultPolicyHolderGender sets the gender implied by the title.
// An unrecognised title leaves the existing gender in place.
func (m *Model) DefaultPolicyHolderGender() *Model {
	title, _ := m.store.GetString(PathTitle)
	if gender, ok := GenderFromTitle(title); ok {
		m.Set(PathGender, gender)
	}
	return m
}

// GenderFromTitle maps Mr to Male and Miss, Mrs and Ms to Female
func GenderFromTitle(title string) (string, bool) {
	switch title {
	case "Mr":
		return GenderMale, true
	case "Miss", "Mrs", "Ms":
		return GenderFemale, true
	default:
		return "", false
	}
}

func (m *Model) IsHospitalProductSelected() bool {
	code := m.HospitalProductCode()
	return code != HospitalNone && isMember(HospitalCodes, code)
}

// HospitalProductCode returns the selected hospital code, empty if unset
func (m *Model) HospitalProductCode() string {
	code, _ := m.store.GetString(PathHospitalCode)
	return code
}

// SetHospitalProductCode selects a hospital product.
// A code outside HospitalCodes returns an *InvalidArgumentError.
func (m *Model) SetHospitalProductCode(code string) error {
	if !isMember(HospitalCodes, code) {
		logger.Warn("rejected hospital code", "quote_id", m.id, "code", code)
		return &InvalidArgumentError{Field: "hospital", Code: code}
	}

	m.Set(PathHospitalCode, code)
	return nil
}

// IsExtrasProductSelected reports whether the stored structure is anything but None.
// An absent or unreadable structure counts as not selected.
func (m *Model) IsExtrasProductSelected() bool {
	b, ok := m.extrasBundle()
	if !ok {
		return false
	}
	return b.Code != ExtrasNone
}

// ExtrasProductCode derives the extras code from the stored structure.
// The fixed None structure maps to None; anything else is looked up in the
// catalog by structural equality.
func (m *Model) ExtrasProductCode() (string, bool) {
	b, ok := m.extrasBundle()
	if !ok {
		return "", false
	}
	if b.Equal(NoneBundle()) {
		return ExtrasNone, true
	}
	if m.catalog == nil {
		return "", false
	}
	return m.catalog.CodeFor(b)
}

// SetExtrasProductCode stores the structure for code.
// A code outside ExtrasCodes returns an *InvalidArgumentError; a valid code
// the catalog lacks returns ErrBundleNotFound. Both leave the selection unchanged.
func (m *Model) SetExtrasProductCode(code string) error {
	if !isMember(ExtrasCodes, code) {
		logger.Warn("rejected extras code", "quote_id", m.id, "code", code)
		return &InvalidArgumentError{Field: "extras", Code: code}
	}

	if code == ExtrasNone {
		m.Set(PathExtras, NoneBundle())
		return nil
	}

	b, ok := m.catalog.Lookup(code)
	if !ok {
		logger.Warn("extras code missing from catalog", "quote_id", m.id, "code", code)
		return fmt.Errorf("%w: %s", ErrBundleNotFound, code)
	}

	m.Set(PathExtras, b)
	return nil
}

func (m *Model) extrasBundle() (Bundle, bool) {
	raw, ok := m.store.Get(PathExtras)
	if !ok {
		return Bundle{}, false
	}
	return AsBundle(raw)
}

// AGRTier looks up the rebate tier for the stored income tier
func (m *Model) AGRTier() (Tier, error) {
	if m.agr == nil {
		return nil, ErrNoTierLookup
	}
	incomeTier, _ := m.store.GetString(PathIncomeTier)
	tier, err := m.agr.Tier(incomeTier)
	if err != nil {
		return nil, fmt.Errorf("lookup income tier %q: %w", incomeTier, err)
	}
	return tier, nil
}

// IsAGRApplied reports the stored ApplyGovernmentRebate flag
func (m *Model) IsAGRApplied() bool {
	v, _ := m.store.Get(PathApplyGovernmentRebate)
	applied, _ := v.(bool)
	return applied
}

// AGRPercentage evaluates the rebate tier at the policy holder's age in years
func (m *Model) AGRPercentage() (float64, error) {
	tier, err := m.AGRTier()
	if err != nil {
		return 0, err
	}

	age, err := m.PolicyHolderAge(AgeYears)
	if err != nil {
		return 0, err
	}

	return tier.Percentage(age)
}

func (m *Model) IsLHCApplied() bool {
	return m.lhc.Loading > 0
}

func (m *Model) LHCPercentage() float64 {
	return m.lhc.Loading
}
