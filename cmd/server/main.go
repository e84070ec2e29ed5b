package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rhyrak/go-pick/internal/config"
	"github.com/rhyrak/go-pick/internal/csvio"
	"github.com/rhyrak/go-pick/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "config file (default ~/.config/gopick/config.toml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.New("error", os.Stderr).Error("loading config", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.Log.Level, os.Stderr)

	table, err := csvio.LoadSessions(cfg.Data.SessionsFile, cfg.DelimiterRune())
	if err != nil {
		log.Error("loading sessions", "error", err)
		os.Exit(1)
	}
	for _, rej := range table.Rejected {
		log.Warn("row rejected", "line", rej.Line, "reason", rej.Reason)
	}
	log.Info("sessions loaded", "file", cfg.Data.SessionsFile, "rows", len(table.Sessions))

	idle, err := cfg.IdleTimeout()
	if err != nil {
		log.Error("loading config", "error", err)
		os.Exit(1)
	}

	srv := newServer(table.Sessions, idle, log)
	if idle > 0 {
		go srv.sweep(context.Background(), min(idle, time.Minute))
	}
	r := newRouter(srv)
	log.Info("listening", "addr", cfg.Server.Addr)
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newRouter(srv *server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.GET("/courses", srv.handleGetCourses)
	r.POST("/schedules", srv.handlePostSchedules)
	r.GET("/schedules/:id", srv.handleGetSchedule)
	r.GET("/schedules/:id/csv", srv.handleGetScheduleCSV)
	r.POST("/schedules/:id/next", srv.handleNavigate(1))
	r.POST("/schedules/:id/prev", srv.handleNavigate(-1))
	r.DELETE("/schedules/:id", srv.handleDeleteSchedule)
	return r
}
