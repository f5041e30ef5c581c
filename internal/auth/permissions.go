package auth

// Permission constants define the available permissions in the system.
// These are used for role-based access control (RBAC) to restrict access
// to specific resources and actions.
const (
	// PermDashboardView allows viewing the dashboard statistics.
	PermDashboardView = "dashboard.view"

	// PermCampaignCreate allows creating new campaigns.
	PermCampaignCreate = "campaign.create"
	// PermCampaignRead allows viewing campaign details.
	PermCampaignRead = "campaign.read"
	// PermCampaignUpdate allows editing campaigns and their status.
	PermCampaignUpdate = "campaign.update"
	// PermCampaignList allows listing all campaigns.
	PermCampaignList = "campaign.list"

	// PermDonationRead allows viewing donation records.
	PermDonationRead = "donation.read"
	// PermDonationManage allows recording and settling donations.
	PermDonationManage = "donation.manage"

	// PermNoticeManage allows creating, editing and deleting notices.
	PermNoticeManage = "notice.manage"

	// PermSettingsManage allows managing platform-wide settings.
	PermSettingsManage = "admin.settings"
	// PermShareManage allows creating share links and editing their design.
	PermShareManage = "admin.share"
	// PermAdminUsers allows managing user accounts.
	PermAdminUsers = "admin.users"
	// PermAdminRoles allows managing roles and their permissions.
	PermAdminRoles = "admin.roles"
)

// AllPermissions lists every permission for seeding the admin role.
var AllPermissions = []string{
	PermDashboardView,
	PermCampaignCreate,
	PermCampaignRead,
	PermCampaignUpdate,
	PermCampaignList,
	PermDonationRead,
	PermDonationManage,
	PermNoticeManage,
	PermSettingsManage,
	PermShareManage,
	PermAdminUsers,
	PermAdminRoles,
}
