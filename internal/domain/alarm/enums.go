package alarm

// Statistic is the aggregation applied to the metric over each period.
type Statistic string

// The provider's closed set of alarm statistics.
const (
	StatisticSampleCount Statistic = "SampleCount"
	StatisticAverage     Statistic = "Average"
	StatisticSum         Statistic = "Sum"
	StatisticMinimum     Statistic = "Minimum"
	StatisticMaximum     Statistic = "Maximum"
)

// Valid reports whether the statistic is a member of the closed set.
func (s Statistic) Valid() bool {
	switch s {
	case StatisticSampleCount, StatisticAverage, StatisticSum, StatisticMinimum, StatisticMaximum:
		return true
	default:
		return false
	}
}

// ComparisonOperator relates the aggregated statistic to the threshold.
// Descriptors write the conventional symbol; ProviderName translates it to
// the operator name the provider API expects.
type ComparisonOperator string

const (
	ComparisonGreaterOrEqual ComparisonOperator = ">="
	ComparisonGreater        ComparisonOperator = ">"
	ComparisonLess           ComparisonOperator = "<"
	ComparisonLessOrEqual    ComparisonOperator = "<="
)

// Valid reports whether the operator is a member of the closed set.
func (c ComparisonOperator) Valid() bool {
	return c.ProviderName() != ""
}

// ProviderName returns the provider-side operator name, or "" for unknown symbols.
func (c ComparisonOperator) ProviderName() string {
	switch c {
	case ComparisonGreaterOrEqual:
		return "GreaterThanOrEqualToThreshold"
	case ComparisonGreater:
		return "GreaterThanThreshold"
	case ComparisonLess:
		return "LessThanThreshold"
	case ComparisonLessOrEqual:
		return "LessThanOrEqualToThreshold"
	default:
		return ""
	}
}

// Namespace identifies the provider metric source an alarm watches.
type Namespace string

// The provider's metric source namespaces accepted by the descriptor.
const (
	NamespaceAutoScaling      Namespace = "AWS/AutoScaling"
	NamespaceBilling          Namespace = "AWS/Billing"
	NamespaceDynamoDB         Namespace = "AWS/DynamoDB"
	NamespaceElastiCache      Namespace = "AWS/ElastiCache"
	NamespaceEBS              Namespace = "AWS/EBS"
	NamespaceEC2              Namespace = "AWS/EC2"
	NamespaceELB              Namespace = "AWS/ELB"
	NamespaceElasticMapReduce Namespace = "AWS/ElasticMapReduce"
	NamespaceKinesis          Namespace = "AWS/Kinesis"
	NamespaceOpsWorks         Namespace = "AWS/OpsWorks"
	NamespaceRDS              Namespace = "AWS/RDS"
	NamespaceRedshift         Namespace = "AWS/Redshift"
	NamespaceRoute53          Namespace = "AWS/Route53"
	NamespaceSNS              Namespace = "AWS/SNS"
	NamespaceSQS              Namespace = "AWS/SQS"
	NamespaceStorageGateway   Namespace = "AWS/StorageGateway"
)

//nolint:gochecknoglobals // Fixed membership set for the closed enumeration.
var validNamespaces = map[Namespace]struct{}{
	NamespaceAutoScaling:      {},
	NamespaceBilling:          {},
	NamespaceDynamoDB:         {},
	NamespaceElastiCache:      {},
	NamespaceEBS:              {},
	NamespaceEC2:              {},
	NamespaceELB:              {},
	NamespaceElasticMapReduce: {},
	NamespaceKinesis:          {},
	NamespaceOpsWorks:         {},
	NamespaceRDS:              {},
	NamespaceRedshift:         {},
	NamespaceRoute53:          {},
	NamespaceSNS:              {},
	NamespaceSQS:              {},
	NamespaceStorageGateway:   {},
}

// Valid reports whether the namespace is a member of the closed set.
func (n Namespace) Valid() bool {
	_, ok := validNamespaces[n]

	return ok
}

// Unit names the physical unit of the watched metric.
type Unit string

// The provider's standard units.
const (
	UnitSeconds            Unit = "Seconds"
	UnitMicroseconds       Unit = "Microseconds"
	UnitMilliseconds       Unit = "Milliseconds"
	UnitBytes              Unit = "Bytes"
	UnitKilobytes          Unit = "Kilobytes"
	UnitMegabytes          Unit = "Megabytes"
	UnitGigabytes          Unit = "Gigabytes"
	UnitTerabytes          Unit = "Terabytes"
	UnitBits               Unit = "Bits"
	UnitKilobits           Unit = "Kilobits"
	UnitMegabits           Unit = "Megabits"
	UnitGigabits           Unit = "Gigabits"
	UnitTerabits           Unit = "Terabits"
	UnitPercent            Unit = "Percent"
	UnitCount              Unit = "Count"
	UnitBytesPerSecond     Unit = "Bytes/Second"
	UnitKilobytesPerSecond Unit = "Kilobytes/Second"
	UnitMegabytesPerSecond Unit = "Megabytes/Second"
	UnitGigabytesPerSecond Unit = "Gigabytes/Second"
	UnitTerabytesPerSecond Unit = "Terabytes/Second"
	UnitBitsPerSecond      Unit = "Bits/Second"
	UnitKilobitsPerSecond  Unit = "Kilobits/Second"
	UnitMegabitsPerSecond  Unit = "Megabits/Second"
	UnitGigabitsPerSecond  Unit = "Gigabits/Second"
	UnitTerabitsPerSecond  Unit = "Terabits/Second"
	UnitCountPerSecond     Unit = "Count/Second"
	UnitNone               Unit = "None"
)

//nolint:gochecknoglobals // Fixed membership set for the closed enumeration.
var validUnits = map[Unit]struct{}{
	UnitSeconds:            {},
	UnitMicroseconds:       {},
	UnitMilliseconds:       {},
	UnitBytes:              {},
	UnitKilobytes:          {},
	UnitMegabytes:          {},
	UnitGigabytes:          {},
	UnitTerabytes:          {},
	UnitBits:               {},
	UnitKilobits:           {},
	UnitMegabits:           {},
	UnitGigabits:           {},
	UnitTerabits:           {},
	UnitPercent:            {},
	UnitCount:              {},
	UnitBytesPerSecond:     {},
	UnitKilobytesPerSecond: {},
	UnitMegabytesPerSecond: {},
	UnitGigabytesPerSecond: {},
	UnitTerabytesPerSecond: {},
	UnitBitsPerSecond:      {},
	UnitKilobitsPerSecond:  {},
	UnitMegabitsPerSecond:  {},
	UnitGigabitsPerSecond:  {},
	UnitTerabitsPerSecond:  {},
	UnitCountPerSecond:     {},
	UnitNone:               {},
}

// Valid reports whether the unit is a member of the closed set.
func (u Unit) Valid() bool {
	_, ok := validUnits[u]

	return ok
}
