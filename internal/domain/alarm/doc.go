// Package alarm contains the core domain types for metric alarm reconciliation.
//
// It defines Spec (the desired state of one alarm, as declared in a YAML
// descriptor) together with the closed enumerations the descriptor accepts:
// Statistic, ComparisonOperator, Namespace, Unit and State. Validate checks a
// descriptor against those sets before any provider call is made, so
// configuration mistakes surface without touching the network.
//
// The package is deliberately provider-agnostic: it never imports the cloud
// SDK. Translation to provider types happens in the reconciler service.
package alarm
