// AngelaMos | 2026
// values.go

package catalog

type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleUser       Role = "USER"
)

var Roles = newEnum[Role]("user_role",
	Option{Value: string(RoleSuperAdmin), DisplayName: "Super Administrator", Color: "#B71C1C"},
	Option{Value: string(RoleAdmin), DisplayName: "Administrator", Color: "#E65100"},
	Option{Value: string(RoleUser), DisplayName: "User", Color: "#1565C0"},
)

func (r Role) Valid() bool          { return Roles.Valid(r) }
func (r Role) DisplayName() string  { return displayName(Roles, r) }
func (r Role) Color() string        { return color(Roles, r) }
func (r Role) IsSuperAdmin() bool   { return r == RoleSuperAdmin }
func (r Role) CanAdminister() bool  { return r == RoleSuperAdmin || r == RoleAdmin }
func (r Role) NeedsWorkspace() bool { return r == RoleAdmin || r == RoleUser }

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

var Priorities = newEnum[Priority]("priority",
	Option{Value: string(PriorityLow), DisplayName: "Low", Color: "#4CAF50"},
	Option{Value: string(PriorityMedium), DisplayName: "Medium", Color: "#FFC107"},
	Option{Value: string(PriorityHigh), DisplayName: "High", Color: "#FF9800"},
	Option{Value: string(PriorityCritical), DisplayName: "Critical", Color: "#F44336"},
)

func (p Priority) Valid() bool         { return Priorities.Valid(p) }
func (p Priority) DisplayName() string { return displayName(Priorities, p) }
func (p Priority) Color() string       { return color(Priorities, p) }

type ActivityType string

const (
	ActivityMeeting   ActivityType = "MEETING"
	ActivityMilestone ActivityType = "MILESTONE"
	ActivityDeadline  ActivityType = "DEADLINE"
	ActivityReview    ActivityType = "REVIEW"
	ActivityEvent     ActivityType = "EVENT"
)

var ActivityTypes = newEnum[ActivityType]("activity_type",
	Option{Value: string(ActivityMeeting), DisplayName: "Meeting", Color: "#3F51B5"},
	Option{Value: string(ActivityMilestone), DisplayName: "Milestone", Color: "#9C27B0"},
	Option{Value: string(ActivityDeadline), DisplayName: "Deadline", Color: "#F44336"},
	Option{Value: string(ActivityReview), DisplayName: "Review", Color: "#009688"},
	Option{Value: string(ActivityEvent), DisplayName: "Event", Color: "#795548"},
)

func (a ActivityType) Valid() bool         { return ActivityTypes.Valid(a) }
func (a ActivityType) DisplayName() string { return displayName(ActivityTypes, a) }
func (a ActivityType) Color() string       { return color(ActivityTypes, a) }

type TargetDateStatus string

const (
	TargetPending    TargetDateStatus = "PENDING"
	TargetInProgress TargetDateStatus = "IN_PROGRESS"
	TargetCompleted  TargetDateStatus = "COMPLETED"
	TargetCancelled  TargetDateStatus = "CANCELLED"
	TargetOverdue    TargetDateStatus = "OVERDUE"
)

var TargetDateStatuses = newEnum[TargetDateStatus]("target_date_status",
	Option{Value: string(TargetPending), DisplayName: "Pending", Color: "#9E9E9E"},
	Option{Value: string(TargetInProgress), DisplayName: "In Progress", Color: "#2196F3"},
	Option{Value: string(TargetCompleted), DisplayName: "Completed", Color: "#4CAF50"},
	Option{Value: string(TargetCancelled), DisplayName: "Cancelled", Color: "#607D8B"},
	Option{Value: string(TargetOverdue), DisplayName: "Overdue", Color: "#F44336"},
)

func (s TargetDateStatus) Valid() bool         { return TargetDateStatuses.Valid(s) }
func (s TargetDateStatus) DisplayName() string { return displayName(TargetDateStatuses, s) }
func (s TargetDateStatus) Color() string       { return color(TargetDateStatuses, s) }

type Environment string

const (
	EnvironmentDev        Environment = "DEV"
	EnvironmentTest       Environment = "TEST"
	EnvironmentStaging    Environment = "STAGING"
	EnvironmentProduction Environment = "PRODUCTION"
)

var Environments = newEnum[Environment]("environment",
	Option{Value: string(EnvironmentDev), DisplayName: "Development", Color: "#8BC34A"},
	Option{Value: string(EnvironmentTest), DisplayName: "Test", Color: "#03A9F4"},
	Option{Value: string(EnvironmentStaging), DisplayName: "Staging", Color: "#FF9800"},
	Option{Value: string(EnvironmentProduction), DisplayName: "Production", Color: "#F44336"},
)

func (e Environment) Valid() bool         { return Environments.Valid(e) }
func (e Environment) DisplayName() string { return displayName(Environments, e) }
func (e Environment) Color() string       { return color(Environments, e) }

type DeploymentStatus string

const (
	DeploymentPlanned    DeploymentStatus = "PLANNED"
	DeploymentInProgress DeploymentStatus = "IN_PROGRESS"
	DeploymentCompleted  DeploymentStatus = "COMPLETED"
	DeploymentFailed     DeploymentStatus = "FAILED"
	DeploymentRolledBack DeploymentStatus = "ROLLED_BACK"
)

var DeploymentStatuses = newEnum[DeploymentStatus]("deployment_status",
	Option{Value: string(DeploymentPlanned), DisplayName: "Planned", Color: "#9E9E9E"},
	Option{Value: string(DeploymentInProgress), DisplayName: "In Progress", Color: "#2196F3"},
	Option{Value: string(DeploymentCompleted), DisplayName: "Completed", Color: "#4CAF50"},
	Option{Value: string(DeploymentFailed), DisplayName: "Failed", Color: "#F44336"},
	Option{Value: string(DeploymentRolledBack), DisplayName: "Rolled Back", Color: "#FF5722"},
)

func (s DeploymentStatus) Valid() bool         { return DeploymentStatuses.Valid(s) }
func (s DeploymentStatus) DisplayName() string { return displayName(DeploymentStatuses, s) }
func (s DeploymentStatus) Color() string       { return color(DeploymentStatuses, s) }

type Descriptor struct {
	Name    string   `json:"name"`
	Options []Option `json:"options"`
}

// All lists every value set for clients that render pickers and badges.
func All() []Descriptor {
	return []Descriptor{
		{Name: Roles.Name(), Options: Roles.Options()},
		{Name: Priorities.Name(), Options: Priorities.Options()},
		{Name: ActivityTypes.Name(), Options: ActivityTypes.Options()},
		{Name: TargetDateStatuses.Name(), Options: TargetDateStatuses.Options()},
		{Name: Environments.Name(), Options: Environments.Options()},
		{Name: DeploymentStatuses.Name(), Options: DeploymentStatuses.Options()},
	}
}
