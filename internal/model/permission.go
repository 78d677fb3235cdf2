package model

// PermissionKey identifies a single capability flag inside a role's
// permission map. Keys missing from a map always resolve to false.
type PermissionKey = string

// Permission keys for easy reference
const (
	PermCreateSimulations  PermissionKey = "can_create_simulations"
	PermViewAllSimulations PermissionKey = "can_view_all_simulations"
	PermEditDailyRates     PermissionKey = "can_edit_daily_rates"
	PermEditClientTypes    PermissionKey = "can_edit_client_types"
	PermEditMargins        PermissionKey = "can_edit_margins"
	PermEditProjectTypes   PermissionKey = "can_edit_project_types"
	PermManageUsers        PermissionKey = "can_manage_users"
	PermManageRoles        PermissionKey = "can_manage_roles"
	PermViewAnalytics      PermissionKey = "can_view_analytics"
	PermViewUsageHistory   PermissionKey = "can_view_usage_history"
)

// PermissionInfo describes one capability for role-editor screens.
type PermissionInfo struct {
	Key         PermissionKey `json:"key"`
	Label       string        `json:"label"`
	Description string        `json:"description"`
}

// AvailablePermissions is the closed catalog of capability keys. Role
// permission maps may only contain these keys.
var AvailablePermissions = []PermissionInfo{
	{Key: PermCreateSimulations, Label: "Créer des simulations", Description: "Permet de créer de nouvelles simulations de tarification"},
	{Key: PermViewAllSimulations, Label: "Voir toutes les simulations", Description: "Accès à l'historique complet des simulations"},
	{Key: PermEditDailyRates, Label: "Modifier les TJM", Description: "Gérer les taux journaliers par rôle"},
	{Key: PermEditClientTypes, Label: "Modifier les types de clients", Description: "Gérer les coefficients clients"},
	{Key: PermEditMargins, Label: "Modifier les marges", Description: "Configurer les options de marge"},
	{Key: PermEditProjectTypes, Label: "Modifier les types de projets", Description: "Gérer les catégories de projets"},
	{Key: PermManageUsers, Label: "Gérer les utilisateurs", Description: "Créer et modifier les utilisateurs"},
	{Key: PermManageRoles, Label: "Gérer les rôles", Description: "Créer et modifier les rôles personnalisés"},
	{Key: PermViewAnalytics, Label: "Voir les statistiques", Description: "Accès au tableau de bord analytique"},
	{Key: PermViewUsageHistory, Label: "Voir l'historique d'utilisation", Description: "Consulter les logs d'activité"},
}

// IsKnownPermission reports whether key belongs to the closed catalog.
func IsKnownPermission(key PermissionKey) bool {
	for _, p := range AvailablePermissions {
		if p.Key == key {
			return true
		}
	}
	return false
}
