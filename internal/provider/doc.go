// Package provider connects to the CloudWatch API.
//
// Connect translates resolved connection settings into a configured client:
// region, optional static credentials or shared-config profile, optional
// endpoint override for local stacks, and optional TLS verification skip.
// Missing settings fall through to the provider's default resolution chain.
package provider
