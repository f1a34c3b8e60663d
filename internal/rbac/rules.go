package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"exercise:view",
		"session:create",
		"session:submit",
		"session:view-own",
		"session:delete-own",
		"compare:run",
		"note:manage",
		"lexicon:manage",
		"archive:export",
		"archive:import",
		"user:change_password",
	},
	"teacher": {
		"exercise:create",
		"exercise:view",
		"exercise:delete",
		"session:view-all",
		"activity:view",
		"compare:run",
		"note:manage",
		"lexicon:manage",
		"archive:export",
		"archive:import",
		"users:bulk_upsert",
		"users:list",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
