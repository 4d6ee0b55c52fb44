package service

import "errors"

// 资源不存在
var (
	ErrStationNotFound       = errors.New("station not found")
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrSupplyTypeNotFound    = errors.New("supply type not found")
	ErrTaskNotFound          = errors.New("relief task not found")
	ErrNeedNotFound          = errors.New("victim need not found")
)

// 授权失败
var (
	ErrNotAuthorized = errors.New("not authorized")
)

// 校验失败
var (
	ErrIllegalTransition  = errors.New("illegal status transition")
	ErrSupplyUnavailable  = errors.New("supply type unavailable at station")
	ErrInvalidQuantity    = errors.New("requested quantity must be at least 1")
	ErrInvalidReservation = errors.New("invalid reservation request")
	ErrInvalidStation     = errors.New("invalid station input")
	ErrInvalidInventory   = errors.New("invalid inventory input")
)

// 冲突
var (
	ErrStationHasActiveReservations = errors.New("station has reservations in progress")
	ErrInventoryInUse               = errors.New("inventory item referenced by reservations in progress")
	ErrDuplicateInventoryItem       = errors.New("inventory item already exists for supply type")
	ErrDuplicateSupplyType          = errors.New("supply type already exists")
	ErrReservationTerminal          = errors.New("reservation already in terminal status")
)

// 内部失败
var (
	ErrStationFetchFailed     = errors.New("station fetch failed")
	ErrStationSaveFailed      = errors.New("station save failed")
	ErrInventoryFetchFailed   = errors.New("inventory fetch failed")
	ErrInventorySaveFailed    = errors.New("inventory save failed")
	ErrReservationFetchFailed = errors.New("reservation fetch failed")
	ErrReservationSaveFailed  = errors.New("reservation save failed")
	ErrStatsFetchFailed       = errors.New("stats fetch failed")
	ErrUserFetchFailed        = errors.New("user fetch failed")
)
