// Package extract provides the ordered-fallback extraction primitive used
// wherever the engine parses a page whose structure drifts over time.
// Strategies are tried from most to least structure-dependent; the first one
// that yields at least one record wins.
package extract

import (
	"igaudit/pkg/logger"
)

// PageData is the uniform page snapshot every strategy operates on. URL is
// the final location after navigation, HTML the rendered document, Text the
// visible body text.
type PageData struct {
	URL  string
	HTML string
	Text string
}

// Strategy is one named extraction attempt over a page snapshot. Returning
// an error or zero records means "this strategy yielded nothing" and the
// next one is tried.
type Strategy[T any] struct {
	Name string
	Run  func(page PageData) ([]T, error)
}

// Run applies strategies in order and returns the records from the first
// one that yields any. Errors and panics inside a strategy are absorbed,
// never propagated: a failed strategy is indistinguishable from an empty
// one.
func Run[T any](log logger.Logger, page PageData, strategies []Strategy[T]) []T {
	for _, s := range strategies {
		records := runOne(log, page, s)
		if len(records) > 0 {
			log.DebugWithFields("extraction strategy yielded records", map[string]interface{}{
				"strategy": s.Name,
				"records":  len(records),
			})
			return records
		}
	}
	return nil
}

func runOne[T any](log logger.Logger, page PageData, s Strategy[T]) (records []T) {
	defer func() {
		if r := recover(); r != nil {
			log.WarnWithFields("extraction strategy panicked", map[string]interface{}{
				"strategy": s.Name,
				"panic":    r,
			})
			records = nil
		}
	}()

	records, err := s.Run(page)
	if err != nil {
		log.DebugWithFields("extraction strategy failed", map[string]interface{}{
			"strategy": s.Name,
			"error":    err.Error(),
		})
		return nil
	}
	return records
}
