package modals

import (
	"context"
	"fmt"
	"strings"

	"github.com/sm8ta/hospital_frontend/internal/core/domain"
	"github.com/sm8ta/hospital_frontend/internal/core/ports"
)

// EntityEvent is the payload of deleted and blacklisted events.
type EntityEvent struct {
	Kind   domain.EntityKind
	Entity domain.Entity
	Reason string
}

type DeleteConfirmationModal struct {
	*dialog
	api    ports.EntityAPI
	kind   domain.EntityKind
	entity domain.Entity
}

func NewDeleteConfirmationModal(kind domain.EntityKind, entity domain.Entity, api ports.EntityAPI, logger ports.LoggerPort) *DeleteConfirmationModal {
	return &DeleteConfirmationModal{
		dialog: newDialog("delete-"+string(kind), logger),
		api:    api,
		kind:   kind,
		entity: entity,
	}
}

func (m *DeleteConfirmationModal) Prompt() string {
	return fmt.Sprintf("Are you sure you want to delete %s?", m.entity.Name)
}

func (m *DeleteConfirmationModal) Confirm(ctx context.Context) error {
	reqCtx, done, err := m.begin(ctx)
	if err != nil {
		return err
	}
	defer done()

	if !m.kind.Valid() {
		return m.invalid(fmt.Sprintf("Unknown entity kind %q", m.kind))
	}

	err = m.api.DeleteEntity(reqCtx, m.kind, m.entity.ID)
	return m.finish(err,
		fmt.Sprintf("Failed to delete %s", m.kind),
		fmt.Sprintf("%s deleted successfully", title(m.kind)),
		domain.EventDeleted,
		EntityEvent{Kind: m.kind, Entity: m.entity},
	)
}

type BlacklistModal struct {
	*dialog
	api    ports.EntityAPI
	kind   domain.EntityKind
	entity domain.Entity

	reason string
}

func NewBlacklistModal(kind domain.EntityKind, entity domain.Entity, api ports.EntityAPI, logger ports.LoggerPort) *BlacklistModal {
	return &BlacklistModal{
		dialog: newDialog("blacklist-"+string(kind), logger),
		api:    api,
		kind:   kind,
		entity: entity,
	}
}

func (m *BlacklistModal) Prompt() string {
	return fmt.Sprintf("You are blacklisting %s. Blacklisted users cannot log in.", m.entity.Name)
}

func (m *BlacklistModal) Reason() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reason
}

func (m *BlacklistModal) SetReason(v string) {
	m.mu.Lock()
	m.reason = v
	m.mu.Unlock()
	m.clearError()
}

func (m *BlacklistModal) Submit(ctx context.Context) error {
	reason := trim(m.Reason())

	reqCtx, done, err := m.begin(ctx)
	if err != nil {
		return err
	}
	defer done()

	if reason == "" {
		return m.invalid("Reason is required")
	}
	if !m.kind.Valid() {
		return m.invalid(fmt.Sprintf("Unknown entity kind %q", m.kind))
	}

	err = m.api.BlacklistEntity(reqCtx, m.kind, m.entity.ID, domain.BlacklistRequest{Reason: reason})
	return m.finish(err,
		fmt.Sprintf("Failed to blacklist %s", m.kind),
		fmt.Sprintf("%s has been blacklisted", m.entity.Name),
		domain.EventBlacklisted,
		EntityEvent{Kind: m.kind, Entity: m.entity, Reason: reason},
	)
}

func title(kind domain.EntityKind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
