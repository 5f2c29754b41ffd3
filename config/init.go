package config

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

var RedisClient *redis.Client

// InitApp dựng gin engine với CORS, melody cho websocket và cron cho
// các job cuối ngày
func InitApp() (*gin.Engine, *melody.Melody, *cron.Cron, error) {
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	if err := initComponents(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize components: %v", err)
	}

	m := melody.New()

	c := cron.New()

	return router, m, c, nil
}

func initComponents() error {
	if err := LoadEnv(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	// STORAGE=memory chạy không cần database (store tạm trên bộ nhớ)
	if os.Getenv("STORAGE") != "memory" {
		if err := ConnectDB(); err != nil {
			return err
		}
	}

	var err error
	RedisClient, err = ConnectRedis()
	if err != nil {
		log.Printf("Warning: không kết nối được Redis, chạy không cache: %v", err)
		RedisClient = nil
	}

	log.Println("All components initialized successfully")
	return nil
}

// InitWebSocket mở endpoint /ws cho các terminal lễ tân nhận thông báo
func InitWebSocket(router *gin.Engine, m *melody.Melody) {
	router.GET("/ws", func(c *gin.Context) {
		m.HandleRequest(c.Writer, c.Request)
	})
	log.Println("WebSocket initialized successfully")
}
