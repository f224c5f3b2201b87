package model

// DashboardStats aggregates ticket, asset, and maintenance counts for the
// dashboard. Officers and admins see system-wide figures; staff counts are
// scoped to their own tickets and PendingRepairs stays zero for them.
type DashboardStats struct {
	ActiveTickets     int `json:"active_tickets"`
	OpenTickets       int `json:"open_tickets"`
	InProgressTickets int `json:"in_progress_tickets"`
	ResolvedTickets   int `json:"resolved_tickets"`
	PendingRepairs    int `json:"pending_repairs"`
	TotalAssets       int `json:"total_assets"`
}

// Dashboard is the full dashboard payload. The recent slices differ by
// audience: officers and admins get system-wide recency, staff get their
// own tickets plus assets from their department.
type Dashboard struct {
	Stats             DashboardStats   `json:"stats"`
	RecentTickets     []Ticket         `json:"recent_tickets,omitempty"`
	RecentMaintenance []MaintenanceLog `json:"recent_maintenance,omitempty"`
	MyTickets         []Ticket         `json:"my_tickets,omitempty"`
	DepartmentAssets  []Asset          `json:"department_assets,omitempty"`
}
