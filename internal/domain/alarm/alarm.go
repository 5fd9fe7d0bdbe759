package alarm

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Spec is the desired-state descriptor for one metric alarm. It is built
// fresh for every invocation and discarded afterwards; the authoritative
// copy of the alarm lives at the provider.
type Spec struct {
	// Name uniquely identifies the alarm within the account and region.
	// It is the sole identity key for lookup, update and deletion.
	Name string `yaml:"name"`
	// Metric is the name of the watched metric.
	Metric string `yaml:"metric"`
	// Namespace is the provider metric source the metric belongs to.
	Namespace Namespace `yaml:"namespace"`
	// Statistic is the aggregation applied to the metric before comparison.
	Statistic Statistic `yaml:"statistic"`
	// Comparison relates the aggregated value to the threshold.
	Comparison ComparisonOperator `yaml:"comparison"`
	// Threshold is the trigger value the statistic is compared against.
	Threshold float64 `yaml:"threshold"`
	// Period is the evaluation window in seconds.
	Period int `yaml:"period"`
	// EvaluationPeriods is the number of consecutive periods required to trigger.
	EvaluationPeriods int `yaml:"evaluation_periods"`
	// Unit optionally names the physical unit of the metric.
	Unit Unit `yaml:"unit"`
	// Description is optional free text attached to the alarm.
	Description string `yaml:"description"`
	// Dimensions scope the metric to specific resource instances.
	Dimensions Dimensions `yaml:"dimensions"`
	// AlarmActions are invoked when the alarm transitions into ALARM.
	AlarmActions []string `yaml:"alarm_actions"`
	// InsufficientDataActions are invoked on transitions into INSUFFICIENT_DATA.
	InsufficientDataActions []string `yaml:"insufficient_data_actions"`
	// OKActions are invoked on transitions into OK.
	OKActions []string `yaml:"ok_actions"`
	// State selects whether the alarm should exist. Defaults to present.
	State State `yaml:"state"`
}

// State selects the desired presence of the alarm at the provider.
type State string

const (
	// StatePresent means the alarm must exist with the described definition.
	StatePresent State = "present"
	// StateAbsent means no alarm of this name may remain.
	StateAbsent State = "absent"
)

// Valid reports whether the state is a member of the closed set.
func (s State) Valid() bool {
	return s == StatePresent || s == StateAbsent
}

// Dimensions maps a dimension name to one or more values scoping the metric.
// YAML accepts a scalar or a list per key; a scalar becomes a one-element list.
type Dimensions map[string][]string

// Pair is one flattened name/value dimension entry in provider form.
type Pair struct {
	// Name is the dimension name.
	Name string
	// Value is one measurement the dimension takes.
	Value string
}

var (
	// errNameRequired is returned when the descriptor has no alarm name.
	errNameRequired = errors.New("alarm name must be provided")
	// errMetricRequired is returned when a present alarm names no metric.
	errMetricRequired = errors.New("metric must be provided when state is present")
	// errNamespaceRequired is returned when a present alarm names no namespace.
	errNamespaceRequired = errors.New("namespace must be provided when state is present")
	// errStatisticRequired is returned when a present alarm names no statistic.
	errStatisticRequired = errors.New("statistic must be provided when state is present")
	// errComparisonRequired is returned when a present alarm names no comparison.
	errComparisonRequired = errors.New("comparison must be provided when state is present")
	// errPeriodPositive is returned when the evaluation window is not positive.
	errPeriodPositive = errors.New("period must be a positive number of seconds")
	// errPeriodTooLarge is returned when the evaluation window overflows the provider's 32-bit field.
	errPeriodTooLarge = errors.New("period is too large for the provider")
	// errEvaluationPeriodsPositive is returned when the period count is not positive.
	errEvaluationPeriodsPositive = errors.New("evaluation_periods must be positive")
	// errEvaluationPeriodsTooLarge is returned when the period count overflows the provider's 32-bit field.
	errEvaluationPeriodsTooLarge = errors.New("evaluation_periods is too large for the provider")
)

// LoadFile reads a Spec descriptor from a YAML file.
// The result is not validated; callers run Validate before use.
func LoadFile(path string) (*Spec, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read descriptor: %w", err)
	}

	var spec Spec
	if err := yaml.Unmarshal(contents, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal descriptor: %w", err)
	}

	return &spec, nil
}

// Validate checks the descriptor against the closed enumerations and the
// per-state required fields. An empty state defaults to present. A deletion
// needs nothing beyond the name; a present alarm needs the full definition.
func (s *Spec) Validate() error {
	if s.State == "" {
		s.State = StatePresent
	}

	if !s.State.Valid() {
		return fmt.Errorf("unknown state %q: must be %q or %q", s.State, StatePresent, StateAbsent)
	}

	if s.Name == "" {
		return errNameRequired
	}

	if s.State == StateAbsent {
		return nil
	}

	if s.Metric == "" {
		return errMetricRequired
	}

	switch {
	case s.Namespace == "":
		return errNamespaceRequired
	case !s.Namespace.Valid():
		return fmt.Errorf("unknown namespace %q", s.Namespace)
	}

	switch {
	case s.Statistic == "":
		return errStatisticRequired
	case !s.Statistic.Valid():
		return fmt.Errorf("unknown statistic %q", s.Statistic)
	}

	switch {
	case s.Comparison == "":
		return errComparisonRequired
	case !s.Comparison.Valid():
		return fmt.Errorf("unknown comparison %q: must be one of >=, >, <, <=", s.Comparison)
	}

	// The provider's write request carries both period fields as 32-bit
	// integers; anything larger cannot be transmitted faithfully.
	switch {
	case s.Period <= 0:
		return errPeriodPositive
	case s.Period > math.MaxInt32:
		return errPeriodTooLarge
	}

	switch {
	case s.EvaluationPeriods <= 0:
		return errEvaluationPeriodsPositive
	case s.EvaluationPeriods > math.MaxInt32:
		return errEvaluationPeriodsTooLarge
	}

	if s.Unit != "" && !s.Unit.Valid() {
		return fmt.Errorf("unknown unit %q", s.Unit)
	}

	return nil
}

// UnmarshalYAML decodes a dimensions mapping whose values may be a single
// scalar or a list of scalars. Non-string scalars are rendered to strings,
// matching how the provider serializes dimension values.
func (d *Dimensions) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("dimensions must be a mapping, got %s at line %d", nodeKind(node), node.Line)
	}

	out := make(Dimensions, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return fmt.Errorf("dimension name: %w", err)
		}

		values, err := decodeScalars(valueNode)
		if err != nil {
			return fmt.Errorf("dimension %q: %w", key, err)
		}

		out[key] = values
	}

	*d = out

	return nil
}

// Flatten expands the mapping into provider-form pairs. Names are sorted so
// the expansion is deterministic; values keep their declared order.
func (d Dimensions) Flatten() []Pair {
	if len(d) == 0 {
		return nil
	}

	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}

	sort.Strings(names)

	pairs := make([]Pair, 0, len(d))
	for _, name := range names {
		for _, value := range d[name] {
			pairs = append(pairs, Pair{Name: name, Value: value})
		}
	}

	return pairs
}

// decodeScalars turns a scalar node into a one-element list and a sequence
// node into a list of rendered scalars.
func decodeScalars(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		var raw []any
		if err := node.Decode(&raw); err != nil {
			return nil, err
		}

		values := make([]string, 0, len(raw))
		for _, v := range raw {
			values = append(values, fmt.Sprint(v))
		}

		return values, nil
	case yaml.ScalarNode:
		var raw any
		if err := node.Decode(&raw); err != nil {
			return nil, err
		}

		return []string{fmt.Sprint(raw)}, nil
	default:
		return nil, fmt.Errorf("value must be a scalar or a list, got %s at line %d", nodeKind(node), node.Line)
	}
}

// nodeKind renders a YAML node kind for error messages.
func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
