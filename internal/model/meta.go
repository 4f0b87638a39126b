package model

// Hook ids exported by the built-in "meta" repository.
const (
	MetaCheckHooksApply     = "check-hooks-apply"
	MetaCheckUselessExclude = "check-useless-excludes"
	MetaIdentity            = "identity"
)

// MetaHookIDs lists every hook the "meta" repository exports.
var MetaHookIDs = []string{
	MetaCheckHooksApply,
	MetaCheckUselessExclude,
	MetaIdentity,
}

// IsMetaHookID reports whether id names a built-in meta hook.
func IsMetaHookID(id string) bool {
	for _, m := range MetaHookIDs {
		if m == id {
			return true
		}
	}

	return false
}
