// Package registry keeps the set of interpreters snipexec can dispatch to and
// checks that their fallback declarations form a sound graph.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	"github.com/alexisbeaulieu97/snipexec/internal/logger"
)

const maxSuggestions = 3

// Registry manages interpreter registration, fallback validation and lookup.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]interpreter.Descriptor
	graph       *fallbackGraph
	disabled    map[string]bool
	logger      *logger.Logger
	config      *Config
}

// New returns an empty registry.
func New(config *Config, log *logger.Logger) *Registry {
	if config == nil {
		config = DefaultConfig()
	}

	return &Registry{
		descriptors: make(map[string]interpreter.Descriptor),
		graph:       newFallbackGraph(),
		disabled:    make(map[string]bool),
		logger:      log,
		config:      config,
	}
}

// Register adds an interpreter descriptor.
func (r *Registry) Register(desc interpreter.Descriptor) error {
	if desc.New == nil {
		return fmt.Errorf("interpreter '%s' has no constructor", desc.Name)
	}
	if err := desc.Metadata.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[desc.Name]; exists {
		return fmt.Errorf("interpreter '%s' already registered", desc.Name)
	}

	r.descriptors[desc.Name] = desc
	r.graph.addNode(desc.Name)
	for _, target := range desc.FallsBackTo {
		r.graph.addEdge(desc.Name, target)
	}

	delete(r.disabled, desc.Name)
	return nil
}

// RegisterAll registers every descriptor, stopping at the first failure.
func (r *Registry) RegisterAll(descs []interpreter.Descriptor) error {
	for _, desc := range descs {
		if err := r.Register(desc); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFallbacks verifies every fallback target is registered and that no
// run can be delegated in a circle.
func (r *Registry) ValidateFallbacks() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.disabled = make(map[string]bool)

	var issues []error
	for _, name := range r.sortedNames() {
		for _, target := range r.descriptors[name].FallsBackTo {
			if _, exists := r.descriptors[target]; exists {
				continue
			}
			err := ErrMissingFallback{Interpreter: name, Target: target}
			if r.config.FallbackPolicy == PolicyStrict {
				return err
			}
			r.disabled[name] = true
			issues = append(issues, err)
		}
	}

	if cycle := r.graph.detectCycle(); len(cycle) > 0 {
		cycleErr := ErrCircularFallback{Cycle: cycle}
		if r.config.FallbackPolicy == PolicyStrict {
			return cycleErr
		}
		for _, name := range cycle {
			r.disabled[name] = true
		}
		issues = append(issues, cycleErr)
	}

	for _, issue := range issues {
		r.logWarn(issue.Error())
	}
	r.disableDependents()

	return nil
}

// disableDependents disables every interpreter that can reach a disabled one
// through its fallbacks, so an enabled interpreter never delegates to a
// disabled target.
func (r *Registry) disableDependents() {
	queue := make([]string, 0, len(r.disabled))
	for name := range r.disabled {
		queue = append(queue, name)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, source := range r.graph.sources(name) {
			if r.disabled[source] {
				continue
			}
			r.disabled[source] = true
			r.logWarn(fmt.Sprintf("interpreter '%s' disabled: its fallback '%s' is disabled", source, name))
			queue = append(queue, source)
		}
	}
}

// TopologicalOrder lists interpreter names so that every fallback target
// comes before the interpreters that delegate to it.
func (r *Registry) TopologicalOrder() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.graph.topologicalSort()
}

// Get retrieves an enabled interpreter by name.
func (r *Registry) Get(name string) (interpreter.Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, exists := r.descriptors[name]
	if exists && !r.disabled[name] {
		return desc, nil
	}

	return interpreter.Descriptor{}, ErrInterpreterNotFound{Name: name, Suggestions: r.suggest(name)}
}

// ForLanguage returns the enabled interpreters claiming language, sorted by name.
func (r *Registry) ForLanguage(language string) []interpreter.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []interpreter.Descriptor
	for _, name := range r.sortedNames() {
		if r.disabled[name] {
			continue
		}
		if desc := r.descriptors[name]; desc.Supports(language) {
			matches = append(matches, desc)
		}
	}
	return matches
}

// Resolve picks the interpreter for language. A preference keyed by the
// language tag wins when present; otherwise the first claiming interpreter
// by name order is used.
func (r *Registry) Resolve(language string, preferred map[string]string) (interpreter.Descriptor, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return interpreter.Descriptor{}, fmt.Errorf("language must not be empty")
	}

	if name, ok := lookupFold(preferred, language); ok {
		desc, err := r.Get(name)
		if err != nil {
			return interpreter.Descriptor{}, err
		}
		if !desc.Supports(language) {
			return interpreter.Descriptor{}, fmt.Errorf("preferred interpreter '%s' does not support language '%s'", name, language)
		}
		return desc, nil
	}

	matches := r.ForLanguage(language)
	if len(matches) == 0 {
		return interpreter.Descriptor{}, ErrNoInterpreterForLanguage{Language: language}
	}
	return matches[0], nil
}

// List returns metadata of enabled interpreters in name order.
func (r *Registry) List() []interpreter.Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	metas := make([]interpreter.Metadata, 0, len(r.descriptors))
	for _, name := range r.sortedNames() {
		if r.disabled[name] {
			continue
		}
		metas = append(metas, r.descriptors[name].Metadata)
	}
	return metas
}

// Disabled returns the names taken out of service by ValidateFallbacks.
func (r *Registry) Disabled() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.disabled))
	for name, off := range r.disabled {
		if off {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// suggest ranks enabled names by fuzzy closeness to name. Caller holds the lock.
func (r *Registry) suggest(name string) []string {
	candidates := make([]string, 0, len(r.descriptors))
	for _, candidate := range r.sortedNames() {
		if !r.disabled[candidate] {
			candidates = append(candidates, candidate)
		}
	}
	if name == "" || len(candidates) == 0 {
		return nil
	}

	ranks := fuzzy.RankFindFold(name, candidates)
	sort.Stable(ranks)

	suggestions := make([]string, 0, maxSuggestions)
	for _, rank := range ranks {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, rank.Target)
	}
	return suggestions
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) logWarn(msg string) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(msg)
}

func lookupFold(m map[string]string, key string) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}
