package models

// RolePermission is the junction table assigning permissions to roles.
// Deleting a role or a permission cascades into this table.
type RolePermission struct {
	// RoleID is the role side of the mapping.
	RoleID uint `gorm:"primaryKey;column:role_id"`
	// PermissionID is the permission side of the mapping.
	PermissionID uint `gorm:"primaryKey;column:permission_id"`
	// Role is the associated role.
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	// Permission is the associated permission.
	Permission Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default table naming.
func (RolePermission) TableName() string {
	return "role_permissions"
}
