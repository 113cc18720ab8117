// Package domain contains the core business entities for docsense.
// These types have no dependencies on infrastructure or frameworks.
package domain
