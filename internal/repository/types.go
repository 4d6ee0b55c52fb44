package repository

// GeoFilter 地理半径过滤参数
type GeoFilter struct {
	Latitude  float64
	Longitude float64
	RadiusKM  float64
}

// StationSearchFilter 站点搜索过滤参数
type StationSearchFilter struct {
	Name          string
	IsActive      *bool
	ManagerID     uint
	HasSupplyType string // 仅匹配当前可用的库存
	Geo           *GeoFilter

	// 可见性：OnlyActive 为 true 时仅返回启用站点；
	// InactiveOwnerID 非零时额外放行该管理员自己的停用站点。
	OnlyActive      bool
	InactiveOwnerID uint

	Page     int
	PageSize int
}

// ReservationListFilter 预约列表过滤参数
type ReservationListFilter struct {
	StationID   uint
	RequesterID uint
	Status      string
	TaskID      uint
	NeedID      uint

	// 可见性：ManagerScopeID 非零时返回该管理员名下站点的预约与其本人发起的预约。
	ManagerScopeID uint

	Page     int
	PageSize int
}
