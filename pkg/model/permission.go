package model

// Permission is an allowed (service, action) pair. A nil ServiceID marks a
// global permission. Virtual permissions exist for menu/UI visibility only
// and never gate backend authorization.
//
// There is deliberately no uniqueness constraint on (service, action);
// duplicate rows are legal unless the registry is configured to reject them
// at write time.
type Permission struct {
	ID        uint     `gorm:"column:id;primaryKey" json:"id"`
	ServiceID *uint    `gorm:"column:service_id" json:"service_id,omitempty"`
	Service   *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Action    Action   `gorm:"column:action;type:varchar(20)" json:"action"`
	IsVirtual bool     `gorm:"column:is_virtual;not null;default:false" json:"is_virtual"`
	Lifecycle
}

func (Permission) TableName() string {
	return "permission_master"
}

// UserPermission links one user directly to one permission.
// Unique per (user, permission).
type UserPermission struct {
	ID           uint        `gorm:"column:id;primaryKey" json:"id"`
	UserID       uint        `gorm:"column:user_id;uniqueIndex:idx_custom_permissions_user_perm" json:"user_id"`
	PermissionID uint        `gorm:"column:permission_name_id;uniqueIndex:idx_custom_permissions_user_perm" json:"permission_id"`
	User         *User       `gorm:"foreignKey:UserID" json:"-"`
	Permission   *Permission `gorm:"foreignKey:PermissionID" json:"-"`
	Lifecycle
}

func (UserPermission) TableName() string {
	return "custom_permissions"
}

// GroupPermission links one group to a mutable set of permissions.
type GroupPermission struct {
	ID          uint         `gorm:"column:id;primaryKey" json:"id"`
	GroupID     uint         `gorm:"column:group_id" json:"group_id"`
	Group       *Group       `gorm:"foreignKey:GroupID" json:"-"`
	Permissions []Permission `gorm:"many2many:custom_group_permissions_permissions;joinForeignKey:group_permission_id;joinReferences:permission_id" json:"-"`
	Lifecycle
}

func (GroupPermission) TableName() string {
	return "custom_group_permissions"
}

// GroupServiceAccess is a coarse grant: the group may use every action on
// the service, independent of action-level permissions. Unique per
// (group, service).
type GroupServiceAccess struct {
	ID        uint     `gorm:"column:id;primaryKey" json:"id"`
	GroupID   uint     `gorm:"column:group_id;uniqueIndex:idx_group_service_access_pair" json:"group_id"`
	ServiceID uint     `gorm:"column:service_id;uniqueIndex:idx_group_service_access_pair" json:"service_id"`
	Group     *Group   `gorm:"foreignKey:GroupID" json:"-"`
	Service   *Service `gorm:"foreignKey:ServiceID" json:"-"`
	Lifecycle
}

func (GroupServiceAccess) TableName() string {
	return "group_service_access"
}
