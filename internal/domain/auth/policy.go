package auth

// Operation identifies an application capability gated by role.
type Operation string

const (
	// OpTicketCreate files a new ticket (also covers viewing one's own tickets).
	OpTicketCreate Operation = "ticket:create"
	// OpTicketViewOwn lists the caller's own tickets.
	OpTicketViewOwn Operation = "ticket:view-own"
	// OpTicketViewAll lists every ticket in the system.
	OpTicketViewAll Operation = "ticket:view-all"
	// OpTicketManage changes ticket status, priority, resolution, or assignee.
	OpTicketManage Operation = "ticket:manage"
	// OpAssetView lists assets read-only.
	OpAssetView Operation = "asset:view"
	// OpAssetWrite creates or updates an asset.
	OpAssetWrite Operation = "asset:write"
	// OpAssetDelete removes an asset and its dependent records.
	OpAssetDelete Operation = "asset:delete"
	// OpMaintenanceRead lists maintenance logs.
	OpMaintenanceRead Operation = "maintenance:read"
	// OpMaintenanceWrite records a maintenance log.
	OpMaintenanceWrite Operation = "maintenance:write"
)

// permissions is the single authorization table. Role checks are data-driven
// so adding a role or operation extends this map rather than each call site.
// Anything absent from the table is denied.
var permissions = map[Operation]map[Role]bool{
	OpTicketCreate:     {RoleStaff: true, RoleITOfficer: true, RoleAdmin: true},
	OpTicketViewOwn:    {RoleStaff: true, RoleITOfficer: true, RoleAdmin: true},
	OpTicketViewAll:    {RoleITOfficer: true, RoleAdmin: true},
	OpTicketManage:     {RoleITOfficer: true, RoleAdmin: true},
	OpAssetView:        {RoleStaff: true, RoleITOfficer: true, RoleAdmin: true},
	OpAssetWrite:       {RoleITOfficer: true, RoleAdmin: true},
	OpAssetDelete:      {RoleAdmin: true},
	OpMaintenanceRead:  {RoleITOfficer: true, RoleAdmin: true},
	OpMaintenanceWrite: {RoleITOfficer: true, RoleAdmin: true},
}

// Permits reports whether the given role may perform the operation.
// Unknown roles and unknown operations are always denied.
func Permits(role Role, op Operation) bool {
	return permissions[op][role]
}
