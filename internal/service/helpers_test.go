package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/relief-next/internal/config"
	"github.com/relief-next/internal/models"
	"github.com/relief-next/internal/queue"
	"github.com/relief-next/internal/repository"
)

type testEnv struct {
	Stations     *StationService
	Inventory    *InventoryService
	Reservations *ReservationService
	SupplyTypes  *SupplyTypeService
	Stats        *StatsService
}

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	if err := models.InitDB("sqlite", dsn, models.DBPoolConfig{MaxOpenConns: 1, MaxIdleConns: 1}); err != nil {
		t.Fatalf("init test db: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	if err := models.SeedSupplyTypes(); err != nil {
		t.Fatalf("seed supply types: %v", err)
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	setupTestDB(t)

	stationRepo := repository.NewStationRepository(models.DB)
	inventoryRepo := repository.NewInventoryRepository(models.DB)
	reservationRepo := repository.NewReservationRepository(models.DB)
	supplyTypeRepo := repository.NewSupplyTypeRepository(models.DB)
	refRepo := repository.NewRefLookupRepository(models.DB)
	statsRepo := repository.NewStatsRepository(models.DB)

	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("init queue client: %v", err)
	}
	notifications := NewNotificationService(queueClient)

	cfg := &config.ReservationConfig{
		MaxPageSize:          100,
		DefaultPageSize:      20,
		MaxSearchRadiusKM:    500,
		StatsCacheTTLSeconds: 60,
	}

	return &testEnv{
		Stations:     NewStationService(stationRepo, inventoryRepo, reservationRepo, cfg),
		Inventory:    NewInventoryService(inventoryRepo, stationRepo, reservationRepo, supplyTypeRepo),
		Reservations: NewReservationService(reservationRepo, stationRepo, inventoryRepo, refRepo, notifications),
		SupplyTypes:  NewSupplyTypeService(supplyTypeRepo),
		Stats:        NewStatsService(statsRepo, cfg),
	}
}

func createTestUser(t *testing.T, name, role string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@test.local", strings.ReplaceAll(name, " ", "")),
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	if err := models.DB.Create(user).Error; err != nil {
		t.Fatalf("create test user %s: %v", name, err)
	}
	return user
}

func createTestStation(t *testing.T, managerID uint, name string) *models.SupplyStation {
	t.Helper()
	station := &models.SupplyStation{
		ManagerID: managerID,
		Name:      name,
		Address:   "test address",
		Latitude:  30.0,
		Longitude: 104.0,
		IsActive:  true,
	}
	if err := models.DB.Create(station).Error; err != nil {
		t.Fatalf("create test station %s: %v", name, err)
	}
	return station
}

func addTestInventory(t *testing.T, stationID uint, supplyType string, available bool) *models.InventoryItem {
	t.Helper()
	item := &models.InventoryItem{
		StationID:   stationID,
		SupplyType:  supplyType,
		IsAvailable: available,
	}
	if err := models.DB.Create(item).Error; err != nil {
		t.Fatalf("create test inventory %s: %v", supplyType, err)
	}
	return item
}

func mustCreateReservation(t *testing.T, env *testEnv, actor *models.User, stationID uint, items []ReservationItemInput) *ReservationView {
	t.Helper()
	view, err := env.Reservations.CreateReservation(actor.ID, actor.Role, CreateReservationInput{
		StationID: stationID,
		Items:     items,
	})
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	return view
}
