package model

// Git hook types Hooksmith can install and run. Stage names in hook
// configuration use the same identifiers.
const (
	StagePreCommit        = "pre-commit"
	StagePreMergeCommit   = "pre-merge-commit"
	StagePrePush          = "pre-push"
	StagePrepareCommitMsg = "prepare-commit-msg"
	StageCommitMsg        = "commit-msg"
	StagePostCheckout     = "post-checkout"
	StagePostCommit       = "post-commit"
	StagePostMerge        = "post-merge"
	StagePostRewrite      = "post-rewrite"
	StageManual           = "manual"
)

// Stages lists every stage name accepted in "stages" and "default_stages".
var Stages = []string{
	StagePreCommit,
	StagePreMergeCommit,
	StagePrePush,
	StagePrepareCommitMsg,
	StageCommitMsg,
	StagePostCheckout,
	StagePostCommit,
	StagePostMerge,
	StagePostRewrite,
	StageManual,
}

// InstallableHookTypes lists the hook types "install" may write scripts for.
// "manual" is a stage, not a git hook, so it is excluded.
var InstallableHookTypes = Stages[: len(Stages)-1 : len(Stages)-1]

// IsValidStage reports whether name is a known stage identifier.
func IsValidStage(name string) bool {
	for _, s := range Stages {
		if s == name {
			return true
		}
	}

	return false
}
