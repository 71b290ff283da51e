package provider

import (
	"fmt"
	"time"

	"github.com/gzydong/go-lottery/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMySQLClient 初始化 MySQL 连接
// TranslateError 必须开启，结算层依赖 gorm.ErrDuplicatedKey 识别幂等冲突
func NewMySQLClient(conf *config.Config) *gorm.DB {
	logLevel := logger.Silent
	if conf.Debug() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(conf.MySQL.Dsn()), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		panic(fmt.Sprintf("MySQL 连接失败: %s", err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(fmt.Sprintf("MySQL 连接池初始化失败: %s", err))
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
