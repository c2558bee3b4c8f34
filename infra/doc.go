// Package infra contains technical adapters such as the price feed client,
// the SQLite store and the webhook actuator. These packages should depend
// only on the interfaces defined in the core packages.
package infra
