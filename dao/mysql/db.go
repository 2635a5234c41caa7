package mysql

import (
	"fmt"
	"novelhub/models"

	gosqlmysql "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func InitMySQL() {
	dbHost := viper.Get("mysql.host")
	dbPort := viper.GetInt("mysql.port")
	userName := viper.Get("mysql.username")
	password := viper.Get("mysql.password")
	database := viper.Get("mysql.database")
	charset := viper.Get("mysql.charset")
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local", userName, password, dbHost, dbPort, database, charset)
	debug := viper.GetBool("mysql.debug")

	config := &gorm.Config{TranslateError: true}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	}

	var err error
	db, err = gorm.Open(mysql.Open(dsn), config)
	if err != nil {
		panic(fmt.Sprintf("mysql: %s", err.Error()))
	}
	InitTables(db)
}

func InitTables(d *gorm.DB) {
	d.AutoMigrate(&models.Interaction{})
	d.AutoMigrate(&models.Comment{})
	d.AutoMigrate(&models.CommentUserLikeMapping{})
}

func GetDB() *gorm.DB {
	return db
}

// SetDB 注入已有连接，测试使用 sqlite 内存库时走这里
func SetDB(d *gorm.DB) {
	db = d
}

func getUseDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}

// IsDuplicateKeyError 唯一索引冲突判断，兼容驱动原生错误与 gorm 的翻译
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *gosqlmysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
