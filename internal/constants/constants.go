package constants

// 预约状态常量
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusPickedUp  = "picked_up"
	ReservationStatusDelivered = "delivered"
	ReservationStatusCancelled = "cancelled"
)

// 角色常量
const (
	RoleAdmin     = "admin"
	RoleManager   = "station_manager"
	RoleVolunteer = "volunteer"
	RoleVictim    = "victim"
)

// 物资分类常量
const (
	SupplyCategoryWater    = "water"
	SupplyCategoryFood     = "food"
	SupplyCategoryMedical  = "medical"
	SupplyCategoryShelter  = "shelter"
	SupplyCategoryClothing = "clothing"
)

// 授权动作常量
const (
	ActionStationCreate     = "station:create"
	ActionStationUpdate     = "station:update"
	ActionStationDelete     = "station:delete"
	ActionInventoryManage   = "inventory:manage"
	ActionReservationCreate = "reservation:create"
	ActionReservationView   = "reservation:view"
)

// 通知事件常量
const (
	NotifyEventReservationCreated = "reservation_created"
	NotifyEventReservationStatus  = "reservation_status"
)

// 队列与任务常量
const (
	QueueDefault                = "default"
	TaskReservationNotification = "reservation:notification"
)

// 请求上下文键
const (
	CtxKeyActorID   = "actor_id"
	CtxKeyActorRole = "actor_role"
	CtxKeyRequestID = "request_id"
)
