package figref

import (
	"time"

	"github.com/goliatone/go-figref/pkg/interfaces"
)

// NoOpMetrics returns a metrics recorder that drops every observation.
func NoOpMetrics() interfaces.FigureMetrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) ObserveRenderDuration(string, time.Duration) {}

func (noopMetrics) IncrementRenderError(string) {}
