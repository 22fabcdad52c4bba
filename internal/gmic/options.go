// Package gmic builds G'MIC filter invocations and runs the external gmic
// binary on single frames.
package gmic

import "fmt"

// Options are the per-run upscale filter parameters. They are built once
// from configuration and CLI input and passed by value; nothing mutates
// them during a run.
type Options struct {
	WidthScale  int     // percentage, e.g. 178 for 720*1.78
	HeightScale int     // percentage, e.g. 150 for 480*1.5
	Smoothness  int
	Anisotropy  float64
	Sharpness   int
}

// DefaultOptions returns the stock fx_upscale_smart parameters.
func DefaultOptions() Options {
	return Options{
		WidthScale:  178,
		HeightScale: 150,
		Smoothness:  0,
		Anisotropy:  0.4,
		Sharpness:   21,
	}
}

// Command renders the full filter invocation string. Anisotropy keeps two
// fractional digits; the remaining parameters are integral.
func (o Options) Command() string {
	return fmt.Sprintf("fx_upscale_smart %d,%d,%d,%.2f,%d",
		o.WidthScale, o.HeightScale, o.Smoothness, o.Anisotropy, o.Sharpness)
}
