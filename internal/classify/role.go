// Package classify finds the pages of a scanned filing that carry a wanted
// document, one model call per page with rate-limit aware retries.
package classify

// Role names a document sought inside a filing.
type Role string

const (
	// RoleMemorial is the Memorial Descritivo issued by INCRA.
	RoleMemorial Role = "memorial"
	// RolePlan is the Planta/Projeto de Georreferenciamento.
	RolePlan Role = "plan"
)

// PromptKey returns the classify.json key holding the role's instruction.
func (r Role) PromptKey() string {
	if r == RolePlan {
		return "plan_page"
	}
	return "memorial_page"
}
