package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tarneeb/config"
	"tarneeb/internal/auth"
	"tarneeb/internal/game/engine"
	"tarneeb/internal/game/manager"
	"tarneeb/internal/matchmaker"
	"tarneeb/internal/storage"
	"tarneeb/internal/utils"
	ws "tarneeb/internal/websocket"
)

func main() {
	config.Load()
	utils.Init()

	// Matchmaking queues live in redis when it is reachable, otherwise in
	// process memory. A single-node deployment works either way.
	var repo matchmaker.Repo
	if rdb, err := storage.InitRedis(config.C.Redis.Addr, config.C.Redis.Password, config.C.Redis.DB); err != nil {
		utils.Print.Warn("redis unavailable, using in-memory matchmaking", "err", err)
		repo = matchmaker.NewMemoryRepo()
	} else {
		utils.Print.Info("connected to redis", "addr", config.C.Redis.Addr)
		repo = matchmaker.NewRedisRepo(rdb)
	}

	var recorder manager.Recorder
	if dsn := config.C.Database.DSN; dsn != "" {
		store, err := storage.NewMatchStore(dsn)
		if err != nil {
			utils.Print.Warn("postgres unavailable, match history disabled", "err", err)
		} else {
			defer store.Close()
			recorder = store
		}
	}

	hub := ws.NewHub()
	go hub.Run()
	defer hub.Close()

	gm := manager.NewGameManager(hub, recorder, manager.Options{
		ThinkDelay: time.Duration(config.C.Game.ThinkDelayMs) * time.Millisecond,
		Engine: engine.Options{
			WinningScore: config.C.Game.WinningScore,
			StrictWin:    config.C.Game.StrictWin,
			MaxRounds:    config.C.Game.MaxRounds,
		},
	})

	svc := matchmaker.NewService(repo, 300, hub)
	svc.OnRoomReady = func(room *matchmaker.Room) {
		if err := gm.StartRoom(room); err != nil {
			utils.Print.Error("failed to start room", "room", room.ID, "err", err)
		}
	}
	gm.OnGameOver = func(room *matchmaker.Room) {
		svc.Release(context.Background(), room)
	}

	hub.OnIncoming = gm.HandlePlayerMessage
	hub.OnDisconnect = func(playerID string) {
		_ = svc.Cancel(context.Background(), playerID)
		gm.HandleDisconnect(playerID)
	}

	authHandler := auth.NewHandler([]byte(config.C.JWT.Secret))
	mmHandler := matchmaker.NewHandler(svc)
	jwtRequired := auth.JWTMiddleware([]byte(config.C.JWT.Secret))

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.POST("/auth/guest", authHandler.Guest)

	api := r.Group("/", jwtRequired)
	{
		api.GET("/ws", ws.ServeWS(hub))
		api.POST("/match/join", mmHandler.Join)
		api.POST("/match/solo", mmHandler.Solo)
		api.POST("/match/cancel", mmHandler.Cancel)
	}

	utils.Print.Info("server listening", "port", config.C.Server.Port)
	if err := r.Run(config.C.Server.Port); err != nil {
		utils.Print.Fatal("server stopped", "err", err)
	}
}
