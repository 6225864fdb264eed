package permissions

import (
	"kb-cms/models"
)

// Operation identifies a gated mutation on articles and their surroundings.
type Operation string

const (
	opEditNonPublicArticle Operation = "edit_non_public_article"
	opEditPublicArticle    Operation = "edit_public_article"

	OpTogglePublic       Operation = "toggle_public_flag"
	OpDeleteArticle      Operation = "delete_article"
	OpManageVersions     Operation = "manage_versions"
	OpManageTranslations Operation = "manage_translations"
	OpManageTags         Operation = "manage_tags"
)

// OpEditArticle resolves the edit operation for an article with the given
// visibility. Editing a public article is gated separately from editing a
// non-public one.
func OpEditArticle(isPublic bool) Operation {
	if isPublic {
		return opEditPublicArticle
	}
	return opEditNonPublicArticle
}

// policy lists what each role may do. Roles and operations absent from the
// map are denied, so unknown roles have no permissions at all.
var policy = map[models.UserRole]map[Operation]bool{
	models.RoleAdmin: {
		opEditNonPublicArticle: true,
		opEditPublicArticle:    true,
		OpTogglePublic:         true,
		OpDeleteArticle:        true,
		OpManageVersions:       true,
		OpManageTranslations:   true,
		OpManageTags:           true,
	},
	models.RoleModerator: {
		opEditNonPublicArticle: true,
	},
}

var opDescriptions = map[Operation]string{
	opEditNonPublicArticle: "edit non-public articles",
	opEditPublicArticle:    "edit public articles",
	OpTogglePublic:         "change article visibility",
	OpDeleteArticle:        "delete articles",
	OpManageVersions:       "manage article versions",
	OpManageTranslations:   "manage translations",
	OpManageTags:           "manage tags",
}

// Allowed reports whether the role may perform the operation.
func Allowed(role models.UserRole, op Operation) bool {
	return policy[role][op]
}

// Check returns a permission error naming the denied operation, or nil when
// the role is allowed.
func Check(role models.UserRole, op Operation) error {
	if Allowed(role, op) {
		return nil
	}
	desc := opDescriptions[op]
	if desc == "" {
		desc = string(op)
	}
	return models.NewErrorPermission("role %q is not allowed to %s", role, desc)
}
