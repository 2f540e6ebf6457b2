// Package models provides the result types shared by the pricing engine
// and its command-line host.
package models

// GreeksMethod names how delta and gamma were estimated.
type GreeksMethod string

const (
	GreeksPathwise GreeksMethod = "pathwise"
	GreeksBump     GreeksMethod = "bump"
)
