package repository

import (
	"math"
	"testing"
)

func TestHaversineKM(t *testing.T) {
	// 成都 → 重庆，约 266 公里
	got := haversineKM(30.5728, 104.0668, 29.5630, 106.5516)
	if math.Abs(got-266) > 10 {
		t.Fatalf("chengdu-chongqing distance: want ~266km, got %.1f", got)
	}

	if d := haversineKM(30.0, 104.0, 30.0, 104.0); d != 0 {
		t.Fatalf("identical points: want 0, got %f", d)
	}
}

func TestGeoBoundingBoxContainsRadius(t *testing.T) {
	lat, lng, radius := 30.0, 104.0, 25.0
	minLat, maxLat, minLng, maxLng := geoBoundingBox(lat, lng, radius)

	if minLat >= lat || maxLat <= lat || minLng >= lng || maxLng <= lng {
		t.Fatal("bounding box must contain the center")
	}

	// 盒子必须覆盖半径圆：正北 25km 的点仍在盒内
	northLat := lat + radius/111.045
	if northLat > maxLat {
		t.Fatalf("point at radius edge escapes the box: %f > %f", northLat, maxLat)
	}
}

func TestGeoBoundingBoxNearPoles(t *testing.T) {
	// 高纬度下经度扩张受 cosLat 下限保护，不产生无穷盒
	minLat, maxLat, minLng, maxLng := geoBoundingBox(89.9, 0, 10)
	if math.IsInf(minLng, 0) || math.IsInf(maxLng, 0) {
		t.Fatal("longitude bounds must stay finite near the poles")
	}
	if minLat >= maxLat {
		t.Fatal("latitude bounds must be ordered")
	}
}

func TestLikeOperatorByDialect(t *testing.T) {
	if op := likeOperatorByDialect("postgres"); op != "ILIKE" {
		t.Fatalf("postgres: want ILIKE, got %s", op)
	}
	if op := likeOperatorByDialect("sqlite"); op != "LIKE" {
		t.Fatalf("sqlite: want LIKE, got %s", op)
	}
}
