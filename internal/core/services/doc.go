// Package services implements the core business logic behind the
// driving ports: index lifecycle, retrieval, grounded answering,
// nutrition targets, meal planning and diet tracking.
//
// Services depend only on domain types and driven ports. Infrastructure
// is injected through constructors.
package services
