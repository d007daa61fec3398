// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of aic

package ui

import (
	"context"

	"github.com/aic/aic/internal/dao"
	"github.com/derailed/tcell/v2"
)

// ResourceAction represents a single-resource action bound to a key.
type ResourceAction struct {
	Key         tcell.Key                                                   // Key binding
	Name        string                                                      // Display name
	Description string                                                      // Confirmation question
	Dangerous   bool                                                        // Styled as destructive
	Check       func(dao.Object) (bool, string)                             // Eligibility, nil allows all
	Handler     func(ctx context.Context, f dao.Factory, path string) error // Performs the action
}

// Allowed runs the eligibility check against o.
func (a ResourceAction) Allowed(o dao.Object) (bool, string) {
	if a.Check == nil {
		return true, ""
	}
	return a.Check(o)
}

// ActionRegistry maps resource types to their available actions.
var ActionRegistry = map[string][]ResourceAction{}

// RegisterActions registers actions for a resource type.
func RegisterActions(resourceType string, actions []ResourceAction) {
	ActionRegistry[resourceType] = actions
}

// GetActions returns available actions for a resource type.
func GetActions(rid *dao.ResourceID) []ResourceAction {
	if rid == nil {
		return nil
	}
	return ActionRegistry[rid.String()]
}

// GetAction returns a specific action by key for a resource type.
func GetAction(rid *dao.ResourceID, key tcell.Key) *ResourceAction {
	actions := GetActions(rid)
	for i := range actions {
		if actions[i].Key == key {
			return &actions[i]
		}
	}
	return nil
}
