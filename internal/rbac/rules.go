package rbac

import "github.com/examgate/examgate/internal/model"

// Default policy, one entry per screen action. Admins deliberately get only
// the user-management permissions: every other screen treats an admin the
// same as a missing role and bounces to login.
var RolePermissions = map[model.Role][]string{
	model.RoleStudent: {
		"paper:list",
		"paper:select",
		"paper:questions",
		"attempt:take",
		"scores:view-own",
	},
	model.RoleTeacher: {
		"paper:list",
		"paper:select",
		"paper:questions",
		"paper:create",
		"scores:view-all",
		"scores:grade",
	},
	model.RoleAdmin: {
		"users:*",
	},
}
