// Package infra contains technical adapters around the planner core: the
// MQTT plan publisher, metrics exporters and the zerolog logger. These
// packages depend only on the interfaces defined in the core packages; the
// planner itself never imports infra.
package infra
