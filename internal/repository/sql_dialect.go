package repository

import (
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
)

const earthRadiusKM = 6371.0

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// likeOperatorByDialect 返回大小写不敏感匹配操作符。
func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// dialectSupportsTrig 判断方言是否内置三角函数。
// sqlite 默认编译不带 math 扩展，走边界盒预筛 + 进程内精确复核。
func dialectSupportsTrig(dialect string) bool {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return true
	default:
		return false
	}
}

// geoDistanceCondition 生成球面余弦定理距离过滤条件（单位 km）。
// 参数顺序：centerLat, centerLng, centerLat, radiusKM。
func geoDistanceCondition(latColumn, lngColumn string) string {
	return fmt.Sprintf(
		"(%.1f * acos(LEAST(1.0, cos(radians(?)) * cos(radians(%s)) * cos(radians(%s) - radians(?)) + sin(radians(?)) * sin(radians(%s))))) <= ?",
		earthRadiusKM, latColumn, lngColumn, latColumn,
	)
}

// geoBoundingBox 计算半径对应的经纬度边界盒。
// 纬度越高经度跨度越大；纬度 1 度约 111.045km。
func geoBoundingBox(lat, lng, radiusKM float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusKM / 111.045
	minLat = lat - latDelta
	maxLat = lat + latDelta

	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngDelta := radiusKM / (111.045 * cosLat)
	minLng = lng - lngDelta
	maxLng = lng + lngDelta
	return minLat, maxLat, minLng, maxLng
}

// haversineKM 计算两点间大圆距离（km）。
func haversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}
