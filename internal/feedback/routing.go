package feedback

import "github.com/vampirenirmal/narrative/internal/beat"

// Role is a named remediation target. Downstream role handling is a
// collaborator concern; only the mapping is produced here.
type Role string

const (
	RoleStoryteller  Role = "storyteller"
	RoleStructurist  Role = "structurist"
	RoleArchitect    Role = "architect"
	RoleEditor       Role = "editor"
	RoleReader       Role = "reader"
	RoleCollaborator Role = "collaborator"
	RoleWitness      Role = "witness"
)

// roleFor maps one gap type to its remediation role. The switch is
// exhaustive over the declared gap types; anything unknown lands on the
// architect.
func roleFor(t beat.GapType) Role {
	switch t {
	case beat.GapEmotionalWeak, beat.GapEmotionalFlatness, beat.GapEmotionalWhiplash:
		return RoleStoryteller
	case beat.GapCharacterStatic, beat.GapCharacterMissing:
		return RoleStructurist
	case beat.GapThemeMissing:
		return RoleEditor
	case beat.GapPacingIssue:
		return RoleArchitect
	default:
		return RoleArchitect
	}
}

// RouteGaps assigns every gap to a role. Pure data routing, no side
// effects; the returned map contains only roles with at least one gap.
func RouteGaps(gaps []beat.Gap) map[Role][]beat.Gap {
	routed := make(map[Role][]beat.Gap)
	for _, g := range gaps {
		role := roleFor(g.Type)
		routed[role] = append(routed[role], g)
	}
	return routed
}
