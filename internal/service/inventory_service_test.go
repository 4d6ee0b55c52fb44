package service

import (
	"errors"
	"testing"

	"github.com/relief-next/internal/constants"
	"github.com/relief-next/internal/models"
)

func TestCreateInventoryItemRules(t *testing.T) {
	env := newTestEnv(t)
	manager := createTestUser(t, "manager", constants.RoleManager)
	otherManager := createTestUser(t, "other manager", constants.RoleManager)
	station := createTestStation(t, manager.ID, "东区站")

	item, err := env.Inventory.CreateInventoryItem(manager.ID, manager.Role, station.ID, CreateInventoryInput{
		SupplyType: "water",
	})
	if err != nil {
		t.Fatalf("create inventory: %v", err)
	}
	if !item.IsAvailable {
		t.Fatal("availability should default to true")
	}

	// 同站点同类型只允许一条
	_, err = env.Inventory.CreateInventoryItem(manager.ID, manager.Role, station.ID, CreateInventoryInput{
		SupplyType: "water",
	})
	if !errors.Is(err, ErrDuplicateInventoryItem) {
		t.Fatalf("duplicate: want ErrDuplicateInventoryItem, got %v", err)
	}

	// 目录外的类型被拒
	_, err = env.Inventory.CreateInventoryItem(manager.ID, manager.Role, station.ID, CreateInventoryInput{
		SupplyType: "helicopter",
	})
	if !errors.Is(err, ErrSupplyTypeNotFound) {
		t.Fatalf("unknown type: want ErrSupplyTypeNotFound, got %v", err)
	}

	// 非归属管理员不可操作
	_, err = env.Inventory.CreateInventoryItem(otherManager.ID, otherManager.Role, station.ID, CreateInventoryInput{
		SupplyType: "rice",
	})
	if !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("other manager: want ErrNotAuthorized, got %v", err)
	}
}

func TestDeleteInventoryItemBlockedByActiveReservation(t *testing.T) {
	env := newTestEnv(t)
	manager := createTestUser(t, "manager", constants.RoleManager)
	volunteer := createTestUser(t, "volunteer", constants.RoleVolunteer)
	station := createTestStation(t, manager.ID, "东区站")
	item := addTestInventory(t, station.ID, "water", true)

	view := mustCreateReservation(t, env, volunteer, station.ID, []ReservationItemInput{
		{SupplyType: "water", Quantity: 1},
	})

	err := env.Inventory.DeleteInventoryItem(manager.ID, manager.Role, item.ID)
	if !errors.Is(err, ErrInventoryInUse) {
		t.Fatalf("want ErrInventoryInUse while reservation pending, got %v", err)
	}

	// 预约进入终态后允许删除
	if _, err := env.Reservations.CancelReservation(volunteer.ID, volunteer.Role, view.ID, "test"); err != nil {
		t.Fatalf("cancel reservation: %v", err)
	}
	if err := env.Inventory.DeleteInventoryItem(manager.ID, manager.Role, item.ID); err != nil {
		t.Fatalf("delete after cancel: %v", err)
	}
}

func TestBulkUpdateInventoryReplace(t *testing.T) {
	env := newTestEnv(t)
	manager := createTestUser(t, "manager", constants.RoleManager)
	station := createTestStation(t, manager.ID, "东区站")
	addTestInventory(t, station.ID, "water", true)
	addTestInventory(t, station.ID, "rice", false)

	result, err := env.Inventory.BulkUpdateInventory(manager.ID, manager.Role, station.ID, BulkUpdateInput{
		ReplaceExisting: true,
		Items: []BulkInventoryEntry{
			{SupplyType: "tent"},
			{SupplyType: "blanket"},
			{SupplyType: "medicine"},
		},
	})
	if err != nil {
		t.Fatalf("bulk replace: %v", err)
	}
	if !result.Success {
		t.Fatalf("want success, got message %q", result.Message)
	}
	if result.DeletedCount != 2 || result.CreatedCount != 3 || result.UpdatedCount != 0 {
		t.Fatalf("counts: want deleted=2 created=3 updated=0, got deleted=%d created=%d updated=%d",
			result.DeletedCount, result.CreatedCount, result.UpdatedCount)
	}

	items, err := env.Inventory.ListStationInventory(manager.ID, manager.Role, station.ID)
	if err != nil {
		t.Fatalf("list inventory: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("want 3 items after replace, got %d", len(items))
	}
}

func TestBulkUpdateInventoryMerge(t *testing.T) {
	env := newTestEnv(t)
	manager := createTestUser(t, "manager", constants.RoleManager)
	station := createTestStation(t, manager.ID, "东区站")
	addTestInventory(t, station.ID, "water", false)

	available := true
	result, err := env.Inventory.BulkUpdateInventory(manager.ID, manager.Role, station.ID, BulkUpdateInput{
		Items: []BulkInventoryEntry{
			{SupplyType: "water", IsAvailable: &available, Description: "restocked"},
			{SupplyType: "tent"},
			{SupplyType: "helicopter"},
		},
	})
	if err != nil {
		t.Fatalf("bulk merge: %v", err)
	}
	if !result.Success {
		t.Fatalf("want success, got message %q", result.Message)
	}
	if result.UpdatedCount != 1 || result.CreatedCount != 1 || result.DeletedCount != 0 {
		t.Fatalf("counts: want updated=1 created=1 deleted=0, got updated=%d created=%d deleted=%d",
			result.UpdatedCount, result.CreatedCount, result.DeletedCount)
	}
	// 坏条目只记错误，不拖垮整批
	if len(result.Errors) != 1 {
		t.Fatalf("want 1 entry error, got %d: %v", len(result.Errors), result.Errors)
	}

	var water models.InventoryItem
	if err := models.DB.Where("station_id = ? AND supply_type = ?", station.ID, "water").First(&water).Error; err != nil {
		t.Fatalf("reload water: %v", err)
	}
	if !water.IsAvailable || water.Description != "restocked" {
		t.Fatalf("merge should update fields, got available=%v description=%q", water.IsAvailable, water.Description)
	}
}
