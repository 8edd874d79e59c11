package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	SourceType string     `json:"source_type"`
	Loads      int        `json:"loads"`
	LastCount  int        `json:"last_count"`
	LastLoad   *time.Time `json:"last_load,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	srcType := "unknown"
	if s.src != nil {
		srcType = "source"
		if comp, ok := s.src.(introspection.Component); ok {
			srcType = comp.ComponentType()
		}
	}

	return ServiceState{
		SourceType: srcType,
		Loads:      s.loads,
		LastCount:  s.lastCount,
		LastLoad:   s.lastLoad,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
