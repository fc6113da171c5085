package rebate

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/liamcoop/healthquote/internal/logger"
	"github.com/liamcoop/healthquote/quote"
)

// costLimit bounds the work a single tier expression may do
const costLimit = 100000

// Engine compiles tier expressions and evaluates them by age.
// Safe for concurrent use.
type Engine struct {
	env      *cel.Env
	store    TierStore
	programs map[string]cel.Program // tier key -> compiled program
	mu       sync.RWMutex
}

// NewEngine creates an engine and compiles every tier in store
func NewEngine(store TierStore) (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable(AgeVariable, cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	en := &Engine{
		env:      env,
		store:    store,
		programs: make(map[string]cel.Program),
	}

	if err := en.CompileAllTiers(); err != nil {
		return nil, fmt.Errorf("failed to compile tiers: %w", err)
	}

	return en, nil
}

// CompileTier compiles expression and caches it under key.
// The expression must type-check to a number.
func (en *Engine) CompileTier(key, expression string) error {
	prog, err := en.compile(key, expression)
	if err != nil {
		return err
	}

	en.mu.Lock()
	en.programs[key] = prog
	en.mu.Unlock()

	return nil
}

func (en *Engine) compile(key, expression string) (cel.Program, error) {
	ast, issues := en.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}

	out := ast.OutputType()
	if !out.IsExactType(cel.DoubleType) && !out.IsExactType(cel.IntType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression for tier %s yields %s, want a number", key, out)
	}

	prog, err := en.env.Program(ast, cel.CostLimit(costLimit))
	if err != nil {
		return nil, fmt.Errorf("program creation error: %w", err)
	}

	return prog, nil
}

// CompileAllTiers compiles every tier in the store
func (en *Engine) CompileAllTiers() error {
	defs, err := en.store.List()
	if err != nil {
		return err
	}

	for _, def := range defs {
		if err := en.CompileTier(def.Key, def.Expression); err != nil {
			return fmt.Errorf("failed to compile tier %s: %w", def.Key, err)
		}
	}

	return nil
}

// AddTier validates, compiles and stores def
func (en *Engine) AddTier(def *TierDefinition) error {
	if err := ValidateTierDefinition(def); err != nil {
		return err
	}

	if _, err := en.store.Get(def.Key); err == nil {
		return fmt.Errorf("tier with key %s already exists", def.Key)
	}

	if err := en.CompileTier(def.Key, def.Expression); err != nil {
		return fmt.Errorf("tier validation failed: %w", err)
	}

	if err := en.store.Add(def); err != nil {
		en.mu.Lock()
		delete(en.programs, def.Key)
		en.mu.Unlock()
		return err
	}

	return nil
}

// UpdateTier recompiles and replaces an existing tier.
// The new program is cached only once the store accepts the update.
func (en *Engine) UpdateTier(def *TierDefinition) error {
	if err := ValidateTierDefinition(def); err != nil {
		return err
	}

	if _, err := en.store.Get(def.Key); err != nil {
		return err
	}

	prog, err := en.compile(def.Key, def.Expression)
	if err != nil {
		return fmt.Errorf("tier validation failed: %w", err)
	}

	if err := en.store.Update(def); err != nil {
		return err
	}

	en.mu.Lock()
	en.programs[def.Key] = prog
	en.mu.Unlock()

	return nil
}

// DeleteTier removes a tier from the store and the compiled programs
func (en *Engine) DeleteTier(key string) error {
	if err := en.store.Delete(key); err != nil {
		return err
	}

	en.mu.Lock()
	delete(en.programs, key)
	en.mu.Unlock()

	return nil
}

// Percentage evaluates the tier at age
func (en *Engine) Percentage(key string, age int) (float64, error) {
	en.mu.RLock()
	prog, exists := en.programs[key]
	en.mu.RUnlock()

	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrTierNotFound, key)
	}

	out, _, err := prog.Eval(map[string]any{AgeVariable: int64(age)})
	if err != nil {
		logger.Error("tier evaluation failed", "tier", key, "age", age, "error", err)
		return 0, fmt.Errorf("evaluate tier %s at age %d: %w", key, age, err)
	}

	switch v := out.Value().(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	default:
		logger.Error("tier yielded a non-numeric value", "tier", key, "type", fmt.Sprintf("%T", v))
		return 0, fmt.Errorf("tier %s yielded %T, want a number", key, v)
	}
}

// Tier resolves an income tier key for a quote
func (en *Engine) Tier(key string) (quote.Tier, error) {
	def, err := en.store.Get(key)
	if err != nil {
		return nil, err
	}

	en.mu.RLock()
	_, compiled := en.programs[key]
	en.mu.RUnlock()
	if !compiled {
		return nil, fmt.Errorf("tier %s is not compiled", key)
	}

	return &Tier{Key: def.Key, Name: def.Name, engine: en}, nil
}

// Tier is a compiled income tier bound to its engine
type Tier struct {
	Key    string
	Name   string
	engine *Engine
}

// Percentage returns the rebate percentage at age
func (t *Tier) Percentage(age int) (float64, error) {
	return t.engine.Percentage(t.Key, age)
}
