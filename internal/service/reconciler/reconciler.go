package reconciler

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	domain "github.com/oshokin/alarm-reconciler/internal/domain/alarm"
	"github.com/oshokin/alarm-reconciler/internal/logger"
)

// API is the subset of the CloudWatch client the reconciler calls.
// Declared here so tests can substitute a fake without a network.
type API interface {
	DescribeAlarms(
		ctx context.Context,
		params *cloudwatch.DescribeAlarmsInput,
		optFns ...func(*cloudwatch.Options),
	) (*cloudwatch.DescribeAlarmsOutput, error)
	PutMetricAlarm(
		ctx context.Context,
		params *cloudwatch.PutMetricAlarmInput,
		optFns ...func(*cloudwatch.Options),
	) (*cloudwatch.PutMetricAlarmOutput, error)
	DeleteAlarms(
		ctx context.Context,
		params *cloudwatch.DeleteAlarmsInput,
		optFns ...func(*cloudwatch.Options),
	) (*cloudwatch.DeleteAlarmsOutput, error)
}

// Result reports what a reconciliation run did.
type Result struct {
	// Changed is true when a write call was issued, false for a no-op.
	Changed bool
}

// Reconciler drives a single alarm toward its declared state.
type Reconciler struct {
	api API
}

// New returns a Reconciler issuing calls through the given API.
func New(api API) *Reconciler {
	return &Reconciler{api: api}
}

// The provider's non-error responses are the only success signal; a nil
// response without an error means the operation cannot be confirmed.
var (
	errLookupUnacknowledged = errors.New("provider returned no response to the alarm lookup")
	errPutUnacknowledged    = errors.New("provider returned no acknowledgment for the alarm definition")
	errDeleteUnacknowledged = errors.New("provider returned no acknowledgment for the alarm deletion")
)

// Reconcile looks up the alarm by name and converges it on the descriptor:
// a present descriptor is written wholesale whether or not the alarm exists,
// an absent descriptor deletes the alarm if there is one.
//
// The lookup and the write are two independent calls. A concurrent change to
// the same alarm name between them is neither detected nor merged; the last
// writer wins. Errors are terminal: there is no retry, and the caller owns
// reporting them.
func (r *Reconciler) Reconcile(ctx context.Context, spec *domain.Spec) (*Result, error) {
	ctx = logger.WithKV(ctx, "alarm_name", spec.Name)

	exists, err := r.exists(ctx, spec.Name)
	if err != nil {
		return nil, err
	}

	if spec.State == domain.StateAbsent {
		return r.remove(ctx, spec.Name, exists)
	}

	return r.apply(ctx, spec, exists)
}

// exists reports whether an alarm with exactly this name is defined.
func (r *Reconciler) exists(ctx context.Context, name string) (bool, error) {
	output, err := r.api.DescribeAlarms(ctx, &cloudwatch.DescribeAlarmsInput{
		AlarmNames: []string{name},
	})
	if err != nil {
		return false, fmt.Errorf("describe alarm %q: %w", name, err)
	}

	if output == nil {
		return false, errLookupUnacknowledged
	}

	for i := range output.MetricAlarms {
		if aws.ToString(output.MetricAlarms[i].AlarmName) == name {
			return true, nil
		}
	}

	return false, nil
}

// apply writes the full definition. The provider treats the write as a
// wholesale replacement, so create and update are the same call and the run
// always counts as a change.
func (r *Reconciler) apply(ctx context.Context, spec *domain.Spec, exists bool) (*Result, error) {
	if exists {
		logger.Info(ctx, "Alarm exists, replacing its definition")
	} else {
		logger.Info(ctx, "Alarm not found, creating it")
	}

	output, err := r.api.PutMetricAlarm(ctx, putInput(spec))
	if err != nil {
		return nil, fmt.Errorf("put alarm %q: %w", spec.Name, err)
	}

	if output == nil {
		return nil, errPutUnacknowledged
	}

	return &Result{Changed: true}, nil
}

// remove deletes the alarm when it exists and no-ops otherwise.
func (r *Reconciler) remove(ctx context.Context, name string, exists bool) (*Result, error) {
	if !exists {
		logger.Info(ctx, "Alarm already absent")

		return &Result{Changed: false}, nil
	}

	logger.Info(ctx, "Deleting alarm")

	output, err := r.api.DeleteAlarms(ctx, &cloudwatch.DeleteAlarmsInput{
		AlarmNames: []string{name},
	})
	if err != nil {
		return nil, fmt.Errorf("delete alarm %q: %w", name, err)
	}

	if output == nil {
		return nil, errDeleteUnacknowledged
	}

	return &Result{Changed: true}, nil
}

// putInput translates a validated descriptor into the provider's write
// request. Every descriptor field is carried over; optional fields are set
// only when non-empty, which the replacement semantics make equivalent to
// clearing. Validate has already bounded both period fields to the request's
// 32-bit integers, so the conversions are exact.
func putInput(spec *domain.Spec) *cloudwatch.PutMetricAlarmInput {
	input := &cloudwatch.PutMetricAlarmInput{
		AlarmName:               aws.String(spec.Name),
		MetricName:              aws.String(spec.Metric),
		Namespace:               aws.String(string(spec.Namespace)),
		Statistic:               types.Statistic(spec.Statistic),
		ComparisonOperator:      types.ComparisonOperator(spec.Comparison.ProviderName()),
		Threshold:               aws.Float64(spec.Threshold),
		Period:                  aws.Int32(int32(spec.Period)),
		EvaluationPeriods:       aws.Int32(int32(spec.EvaluationPeriods)),
		Dimensions:              dimensionList(spec.Dimensions),
		AlarmActions:            spec.AlarmActions,
		InsufficientDataActions: spec.InsufficientDataActions,
		OKActions:               spec.OKActions,
	}

	if spec.Unit != "" {
		input.Unit = types.StandardUnit(spec.Unit)
	}

	if spec.Description != "" {
		input.AlarmDescription = aws.String(spec.Description)
	}

	return input
}

// dimensionList expands the descriptor's dimension mapping into provider form.
func dimensionList(dims domain.Dimensions) []types.Dimension {
	pairs := dims.Flatten()
	if len(pairs) == 0 {
		return nil
	}

	out := make([]types.Dimension, 0, len(pairs))
	for _, pair := range pairs {
		out = append(out, types.Dimension{
			Name:  aws.String(pair.Name),
			Value: aws.String(pair.Value),
		})
	}

	return out
}
