package authz

import "advocate_desk_go/models"

// Action is an operation an actor requests on an entity.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entity identifies an entity class for class-level authorization.
type Entity string

const (
	EntityProfile       Entity = "profile"
	EntityCase          Entity = "case"
	EntityCaseAssociate Entity = "case_associate"
	EntityCaseUpdate    Entity = "case_update"
	EntityPayment       Entity = "payment"
	EntityCaseDocument  Entity = "case_document"
)

// Can is the class-level decision table: whether the actor's role may ever
// perform action on the entity class. Row-level visibility is enforced
// separately by the scopes in this package; both checks must pass.
//
// Any combination not explicitly allowed is denied.
func Can(actor *Actor, action Action, entity Entity) bool {
	if actor == nil {
		return false
	}

	switch actor.Role {
	case models.RoleAdvocate:
		switch entity {
		case EntityProfile:
			// Member accounts under this advocate, plus self.
			return true
		case EntityCase:
			return true
		case EntityCaseAssociate:
			return action == ActionCreate || action == ActionDelete || action == ActionRead
		case EntityCaseUpdate, EntityCaseDocument:
			return action == ActionCreate || action == ActionRead
		case EntityPayment:
			// Update is limited to status; never case_id or advocate_id.
			// Enforced at the service layer.
			return true
		}

	case models.RoleAssociate:
		switch entity {
		case EntityProfile:
			// Self only; ownership checked per instance.
			return action == ActionRead || action == ActionUpdate
		case EntityCase:
			// Update restricted to status / hearing-date side effects
			// through the case-update flow.
			return action == ActionRead || action == ActionUpdate
		case EntityCaseUpdate, EntityCaseDocument:
			return action == ActionCreate || action == ActionRead
		case EntityCaseAssociate, EntityPayment:
			return false
		}

	case models.RoleClient:
		switch entity {
		case EntityProfile:
			return action == ActionRead || action == ActionUpdate
		case EntityCase, EntityCaseUpdate, EntityPayment:
			return action == ActionRead
		case EntityCaseAssociate, EntityCaseDocument:
			return false
		}
	}

	return false
}

// CanAccessProfile checks whether the actor may read the target profile:
// themselves, or (for advocates) a member they own.
func CanAccessProfile(actor *Actor, target *models.Profile) bool {
	if actor == nil || target == nil {
		return false
	}
	if actor.ID == target.ID {
		return true
	}
	return actor.Role == models.RoleAdvocate &&
		target.AdvocateID != nil && *target.AdvocateID == actor.ID
}

// CanModifyProfile checks whether the actor may update the target profile.
// Everyone may edit their own contact fields; advocates may edit members
// they own. Role and ownership fields are never writable through this path.
func CanModifyProfile(actor *Actor, target *models.Profile) bool {
	return CanAccessProfile(actor, target)
}
