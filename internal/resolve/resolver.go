// Package resolve removes duplicate builder methods by erased signature.
package resolve

import (
	"log/slog"
	"sort"

	"github.com/cmmoran/buildergen/internal/model"
)

// Drop records a candidate that lost its signature to another method. Tie
// is set when both had the same priority and the first one was kept.
type Drop struct {
	Signature string
	Kept      *model.Method
	Dropped   *model.Method
	Tie       bool
}

type Resolver struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{log: log}
}

// Resolve keeps one method per signature: the higher priority wins, and on
// a tie the first candidate wins. The result is ordered by descending
// priority, then signature, independent of candidate order except for
// which tied candidate survives.
func (r *Resolver) Resolve(owner string, candidates []*model.Method) ([]*model.Method, []Drop) {
	l := r.log.With("type", owner)
	index := make(map[string]int, len(candidates))
	kept := make([]*model.Method, 0, len(candidates))
	var drops []Drop

	for _, m := range candidates {
		sig := m.Signature()
		i, ok := index[sig]
		if !ok {
			index[sig] = len(kept)
			kept = append(kept, m)
			continue
		}
		prev := kept[i]
		switch {
		case m.Priority > prev.Priority:
			kept[i] = m
			drops = append(drops, Drop{Signature: sig, Kept: m, Dropped: prev})
			l.Debug("method overridden by higher priority generator", "signature", sig,
				"kept", m.Generator, "keptPriority", m.Priority,
				"dropped", prev.Generator, "droppedPriority", prev.Priority)
		case m.Priority == prev.Priority:
			drops = append(drops, Drop{Signature: sig, Kept: prev, Dropped: m, Tie: true})
			l.Warn("method signature conflict", "signature", sig,
				"kept", prev.Generator, "keptField", prev.Field, "keptPriority", prev.Priority,
				"dropped", m.Generator, "droppedField", m.Field, "droppedPriority", m.Priority)
		default:
			drops = append(drops, Drop{Signature: sig, Kept: prev, Dropped: m})
			l.Debug("method overridden by higher priority generator", "signature", sig,
				"kept", prev.Generator, "keptPriority", prev.Priority,
				"dropped", m.Generator, "droppedPriority", m.Priority)
		}
	}

	Sort(kept)
	return kept, drops
}

// Sort orders methods by descending priority, then signature.
func Sort(ms []*model.Method) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Priority != ms[j].Priority {
			return ms[i].Priority > ms[j].Priority
		}
		return ms[i].Signature() < ms[j].Signature()
	})
}
