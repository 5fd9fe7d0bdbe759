package alarm

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// cpuSpec returns a fully populated present-state descriptor for tests to
// mutate one field at a time.
func cpuSpec() *Spec {
	return &Spec{
		Name:              "cpu-low",
		Metric:            "CPUUtilization",
		Namespace:         NamespaceEC2,
		Statistic:         StatisticAverage,
		Comparison:        ComparisonLessOrEqual,
		Threshold:         5,
		Period:            300,
		EvaluationPeriods: 3,
		Unit:              UnitPercent,
		Description:       "This will alarm when a instance's cpu usage average is lower than 5% for 15 minutes",
		Dimensions:        Dimensions{"InstanceId": {"i-XXX"}},
		AlarmActions:      []string{"arn:aws:sns:us-west-1:123456789012:shutdown"},
		State:             StatePresent,
	}
}

// TestValidate_FullDescriptor verifies a complete present descriptor passes.
func TestValidate_FullDescriptor(t *testing.T) {
	t.Parallel()

	spec := cpuSpec()
	require.NoError(t, spec.Validate())
}

// TestValidate_DefaultsStateToPresent verifies an empty state becomes present.
func TestValidate_DefaultsStateToPresent(t *testing.T) {
	t.Parallel()

	spec := cpuSpec()
	spec.State = ""

	require.NoError(t, spec.Validate())
	require.Equal(t, StatePresent, spec.State)
}

// TestValidate_UnknownState verifies states outside the closed set are rejected.
func TestValidate_UnknownState(t *testing.T) {
	t.Parallel()

	spec := cpuSpec()
	spec.State = "deleted"

	err := spec.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "deleted")
}

// TestValidate_PresentRequirements walks the required fields of a present
// descriptor, blanking or corrupting one at a time.
func TestValidate_PresentRequirements(t *testing.T) {
	t.Parallel()

	cases := map[string]func(*Spec){
		"missing name":       func(s *Spec) { s.Name = "" },
		"missing metric":     func(s *Spec) { s.Metric = "" },
		"missing namespace":  func(s *Spec) { s.Namespace = "" },
		"unknown namespace":  func(s *Spec) { s.Namespace = "AWS/Nope" },
		"missing statistic":  func(s *Spec) { s.Statistic = "" },
		"unknown statistic":  func(s *Spec) { s.Statistic = "Median" },
		"missing comparison": func(s *Spec) { s.Comparison = "" },
		"unknown comparison": func(s *Spec) { s.Comparison = "==" },
		"zero period":        func(s *Spec) { s.Period = 0 },
		"negative period":    func(s *Spec) { s.Period = -300 },
		"zero eval periods":  func(s *Spec) { s.EvaluationPeriods = 0 },
		"unknown unit":       func(s *Spec) { s.Unit = "Fortnights" },
	}

	for name, corrupt := range cases {
		spec := cpuSpec()
		corrupt(spec)
		require.Error(t, spec.Validate(), name)
	}
}

// TestValidate_PeriodsBoundedToProviderField verifies values that do not fit
// the provider's 32-bit request fields are rejected instead of silently
// wrapping at the write boundary, and that the exact maximum still passes.
func TestValidate_PeriodsBoundedToProviderField(t *testing.T) {
	t.Parallel()

	spec := cpuSpec()
	spec.Period = math.MaxInt32
	spec.EvaluationPeriods = math.MaxInt32

	require.NoError(t, spec.Validate())

	spec = cpuSpec()
	spec.Period = 1<<32 + 300

	require.ErrorIs(t, spec.Validate(), errPeriodTooLarge)

	spec = cpuSpec()
	spec.EvaluationPeriods = 1<<32 + 3

	require.ErrorIs(t, spec.Validate(), errEvaluationPeriodsTooLarge)
}

// TestValidate_ZeroThresholdAllowed verifies 0 is accepted as a threshold:
// it is a legitimate trigger value, not an omission.
func TestValidate_ZeroThresholdAllowed(t *testing.T) {
	t.Parallel()

	spec := cpuSpec()
	spec.Threshold = 0

	require.NoError(t, spec.Validate())
}

// TestValidate_OptionalFieldsMayBeEmpty verifies unit, description, dimensions
// and actions are not required for a present descriptor.
func TestValidate_OptionalFieldsMayBeEmpty(t *testing.T) {
	t.Parallel()

	spec := cpuSpec()
	spec.Unit = ""
	spec.Description = ""
	spec.Dimensions = nil
	spec.AlarmActions = nil

	require.NoError(t, spec.Validate())
}

// TestValidate_AbsentNeedsOnlyName verifies a deletion descriptor passes with
// nothing but a name, and still fails without one.
func TestValidate_AbsentNeedsOnlyName(t *testing.T) {
	t.Parallel()

	spec := &Spec{Name: "cpu-low", State: StateAbsent}
	require.NoError(t, spec.Validate())

	spec = &Spec{State: StateAbsent}
	require.ErrorIs(t, spec.Validate(), errNameRequired)
}

// TestLoadFile reads a descriptor back from disk, including scalar and list
// dimension values.
func TestLoadFile(t *testing.T) {
	t.Parallel()

	contents := `name: cpu-low
metric: CPUUtilization
namespace: AWS/EC2
statistic: Average
comparison: "<="
threshold: 5.0
period: 300
evaluation_periods: 3
unit: Percent
description: instance cpu is idle
dimensions:
  InstanceId: i-XXX
  AutoScalingGroupName:
    - group-a
    - group-b
alarm_actions:
  - arn:aws:sns:us-west-1:123456789012:shutdown
`

	path := filepath.Join(t.TempDir(), "alarm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	spec, err := LoadFile(path)
	require.NoError(t, err)
	require.NoError(t, spec.Validate())

	require.Equal(t, "cpu-low", spec.Name)
	require.Equal(t, NamespaceEC2, spec.Namespace)
	require.Equal(t, ComparisonLessOrEqual, spec.Comparison)
	require.InEpsilon(t, 5.0, spec.Threshold, 1e-9)
	require.Equal(t, []string{"i-XXX"}, spec.Dimensions["InstanceId"])
	require.Equal(t, []string{"group-a", "group-b"}, spec.Dimensions["AutoScalingGroupName"])
	require.Equal(t, []string{"arn:aws:sns:us-west-1:123456789012:shutdown"}, spec.AlarmActions)
}

// TestLoadFile_MissingFile verifies a readable error for an absent descriptor.
func TestLoadFile_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "read descriptor")
}

// TestDimensionsUnmarshalYAML_RendersScalars verifies numeric and boolean
// dimension values come out as their string renderings.
func TestDimensionsUnmarshalYAML_RendersScalars(t *testing.T) {
	t.Parallel()

	var dims Dimensions

	err := yaml.Unmarshal([]byte("Port: 8080\nSpot: true\n"), &dims)
	require.NoError(t, err)
	require.Equal(t, []string{"8080"}, dims["Port"])
	require.Equal(t, []string{"true"}, dims["Spot"])
}

// TestDimensionsUnmarshalYAML_RejectsNonMapping verifies a sequence where a
// mapping is expected produces a positioned error.
func TestDimensionsUnmarshalYAML_RejectsNonMapping(t *testing.T) {
	t.Parallel()

	var dims Dimensions

	err := yaml.Unmarshal([]byte("- InstanceId\n- i-XXX\n"), &dims)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mapping")
}

// TestDimensionsUnmarshalYAML_RejectsNestedMapping verifies a mapping used as
// a dimension value is rejected.
func TestDimensionsUnmarshalYAML_RejectsNestedMapping(t *testing.T) {
	t.Parallel()

	var dims Dimensions

	err := yaml.Unmarshal([]byte("InstanceId:\n  nested: true\n"), &dims)
	require.Error(t, err)
	require.Contains(t, err.Error(), `dimension "InstanceId"`)
}

// TestDimensionsFlatten verifies deterministic expansion: names sorted,
// values in declared order, empty mapping flattens to nil.
func TestDimensionsFlatten(t *testing.T) {
	t.Parallel()

	dims := Dimensions{
		"InstanceId":           {"i-XXX"},
		"AutoScalingGroupName": {"group-b", "group-a"},
	}

	require.Equal(t, []Pair{
		{Name: "AutoScalingGroupName", Value: "group-b"},
		{Name: "AutoScalingGroupName", Value: "group-a"},
		{Name: "InstanceId", Value: "i-XXX"},
	}, dims.Flatten())

	require.Nil(t, Dimensions{}.Flatten())
	require.Nil(t, Dimensions(nil).Flatten())
}
