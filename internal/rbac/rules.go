package rbac

// Students (any signed-in non-admin, guests included) may browse and solve;
// every authoring or deleting action belongs to the administrator alone.
var RolePermissions = map[string][]string{
	"student": {
		"catalog:view",
		"picker:use",
		"solve:start",
		"solve:answer",
		"asset:view",
	},
	"admin": {
		"*", // everything
	},
}
