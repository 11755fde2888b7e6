// Package lifecycle declares the role-gated state transitions on stored
// entities. Every transition is a total function on an existing document:
// repeating one is a no-op, and the only failure beyond authorization is
// "entity not found".
package lifecycle

import (
	"context"
	"fmt"

	"github.com/pawhaven/pawhaven/app/models"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/auth"
)

// Action names a lifecycle transition. The string values double as the
// /admin/{action}/{id} path segment.
type Action string

const (
	ActionAdopted    Action = "adopted"
	ActionNotAdopted Action = "notadopted"
	ActionPause      Action = "pause"
	ActionResume     Action = "resume"
	ActionAccept     Action = "accept"
	ActionReject     Action = "reject"
	ActionPromote    Action = "promote"
)

// Rule describes one transition: which collection it touches, the single
// field it sets, and who may invoke it.
type Rule struct {
	Collection string
	Field      string
	Value      interface{}
	OwnerMay   bool // owner of the entity may invoke in addition to Admin
}

var rules = map[Action]Rule{
	ActionAdopted:    {Collection: models.ColPets, Field: "adopted", Value: true, OwnerMay: true},
	ActionNotAdopted: {Collection: models.ColPets, Field: "adopted", Value: false},
	ActionPause:      {Collection: models.ColCampaigns, Field: "pause", Value: true},
	ActionResume:     {Collection: models.ColCampaigns, Field: "pause", Value: false},
	ActionAccept:     {Collection: models.ColAdoptions, Field: "adopt_Req", Value: true},
	ActionReject:     {Collection: models.ColAdoptions, Field: "adopt_Req", Value: false},
	ActionPromote:    {Collection: models.ColUsers, Field: "role", Value: string(auth.RoleAdmin)},
}

// Resolve looks up the rule for an action.
func Resolve(action Action) (Rule, bool) {
	r, ok := rules[action]
	return r, ok
}

// Allowed reports whether the caller may invoke the rule. Admins always
// may; owners may when the rule says so and ownerEmail matches.
func (r Rule) Allowed(id auth.Identity, ownerEmail string) bool {
	if id.Role == auth.RoleAdmin {
		return true
	}
	return r.OwnerMay && ownerEmail != "" && id.Email == ownerEmail
}

// Apply performs the transition as a single-field merge through the store
// adapter and decodes the updated document into dest (nil to discard).
func Apply(ctx context.Context, s store.Store, action Action, id string, dest interface{}) error {
	rule, ok := Resolve(action)
	if !ok {
		return fmt.Errorf("lifecycle: unknown action %q", action)
	}
	return s.Update(ctx, rule.Collection, id, store.Fields{rule.Field: rule.Value}, dest)
}
