// 手动预创建自动操作系统用户
//
// The rule engine provisions the automated-action user lazily on the first
// triggered rule. Run this once after a fresh deployment to create the row up
// front instead.
//
// 用法: go run scripts/provision_system_user.go

package main

import (
	"log"
	"os"

	"screener_backend/internal/config"
	"screener_backend/internal/repository"
	"screener_backend/internal/service"
	"screener_backend/pkg/database"
	"screener_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	systemUsers := service.NewSystemUserService(repository.NewUserRepository(db))
	id, err := systemUsers.AutomatedActionUserID()
	if err != nil {
		log.Fatalf("创建系统用户失败: %v", err)
	}

	log.Printf("Automated-action user ready: %s", id)
}
