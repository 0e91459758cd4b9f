package domain

// Capability is a named permission to reach a specific view or perform a
// specific action.
type Capability string

const (
	CapCreatePaymentLink Capability = "payment_link:create"
	CapViewOwnLinks      Capability = "payment_link:view_own"
	CapViewTeamReports   Capability = "report:view_team"
	CapViewAllReports    Capability = "report:view_all"
	CapManageUsers       Capability = "user:manage"
	CapViewAuditLog      Capability = "audit_log:view"
	CapViewPortfolio     Capability = "portfolio:view"
)

// ViewID identifies a landing view presented after authentication.
type ViewID string

const (
	ViewOperationalDashboard ViewID = "operational-dashboard"
	ViewTeamDashboard        ViewID = "team-dashboard"
	ViewAdminDashboard       ViewID = "admin-dashboard"
	ViewPortfolioDashboard   ViewID = "portfolio-dashboard"
	ViewAuditLog             ViewID = "audit-log"
)

// roleCapabilities defines the complete capability set per role. Every member
// of the Role enum has an explicit, non-empty entry; there is deliberately no
// default branch anywhere in resolution.
var roleCapabilities = map[Role][]Capability{
	RoleAdmin: {
		CapCreatePaymentLink,
		CapViewOwnLinks,
		CapViewTeamReports,
		CapViewAllReports,
		CapManageUsers,
		CapViewAuditLog,
		CapViewPortfolio,
	},
	RoleManager: {
		CapCreatePaymentLink,
		CapViewOwnLinks,
		CapViewTeamReports,
	},
	RoleSales: {
		CapCreatePaymentLink,
		CapViewOwnLinks,
	},
	RoleAttendant: {
		CapCreatePaymentLink,
		CapViewOwnLinks,
	},
	RoleInvestor: {
		CapViewPortfolio,
	},
}

// roleDefaultView selects the landing view per role.
var roleDefaultView = map[Role]ViewID{
	RoleAdmin:     ViewAdminDashboard,
	RoleManager:   ViewTeamDashboard,
	RoleSales:     ViewOperationalDashboard,
	RoleAttendant: ViewOperationalDashboard,
	RoleInvestor:  ViewPortfolioDashboard,
}

// viewCapability maps each view to the capability required to reach it.
var viewCapability = map[ViewID]Capability{
	ViewOperationalDashboard: CapViewOwnLinks,
	ViewTeamDashboard:        CapViewTeamReports,
	ViewAdminDashboard:       CapManageUsers,
	ViewPortfolioDashboard:   CapViewPortfolio,
	ViewAuditLog:             CapViewAuditLog,
}

// CapabilitiesFor returns the capability set for role. The mapping is total
// over the Role enum; an unknown role yields nil, which denies everything.
func CapabilitiesFor(role Role) []Capability {
	return roleCapabilities[role]
}

// DefaultViewFor returns the landing view for role, and false for a role
// outside the enum.
func DefaultViewFor(role Role) (ViewID, bool) {
	v, ok := roleDefaultView[role]
	return v, ok
}

// CapabilityForView returns the capability required to reach view, and false
// for an unknown view.
func CapabilityForView(view ViewID) (Capability, bool) {
	c, ok := viewCapability[view]
	return c, ok
}

// Authorize is the single chokepoint for capability decisions: it reports
// whether role may exercise c, returning false exactly when c is outside
// CapabilitiesFor(role). No view-layer code may decide reachability on its own.
func Authorize(role Role, c Capability) bool {
	for _, granted := range roleCapabilities[role] {
		if granted == c {
			return true
		}
	}
	return false
}
