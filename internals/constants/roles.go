package constants

import "fmt"

const (
	RoleAdmin       = "admin"
	RoleResearcher  = "researcher"
	RoleDataEncoder = "data_encoder"
	RoleViewer      = "viewer"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess   = "Only admin accounts may access %s."
	ErrOnlyEncodersCanAccess = "Only admin, researcher, or data encoder accounts may access %s."
	ErrOnlyResearchCanAccess = "Only admin or researcher accounts may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorEncoder(feature string) string {
	return fmt.Sprintf(ErrOnlyEncodersCanAccess, feature)
}

func RoleErrorResearch(feature string) string {
	return fmt.Sprintf(ErrOnlyResearchCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
// Single source of truth for route allow-lists; routes reference these
// instead of redeclaring role strings inline.
var (
	AllRoles = []string{
		RoleAdmin,
		RoleResearcher,
		RoleDataEncoder,
		RoleViewer,
	}

	// Roles allowed to enter and edit field records.
	EncoderAndAbove = []string{
		RoleAdmin,
		RoleResearcher,
		RoleDataEncoder,
	}

	// Roles allowed to manage research projects and surveys.
	ResearcherAndAbove = []string{
		RoleAdmin,
		RoleResearcher,
	}

	// Roles allowed to register reference territories.
	BarangayEditors = []string{
		RoleAdmin,
		RoleDataEncoder,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
