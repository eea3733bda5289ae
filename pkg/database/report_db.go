package database

import (
	"fmt"
	"log"
	"time"

	"redemption_report/internal/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// InitReportDB 初始化报表专用的只读连接
// 报表 SQL（多表 JOIN、游标式导出）走独立的 sqlx 连接池，
// 避免一次最多 5000 行的导出扫描占用 GORM 业务连接池
func InitReportDB() *sqlx.DB {
	cfg := config.GlobalConfig.Database
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Failed to connect report database: %v", err)
	}

	// 报表连接池刻意保持小：导出是低频的管理端操作
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	log.Println("Report database connection established")
	return db
}
