package bootstrap

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gopherblog/internal/config"
	"gopherblog/internal/model"
	sqliteClient "gopherblog/internal/platform/sqlite"
	"gopherblog/internal/upload"
)

type App struct {
	Config  *config.Config
	DB      *gorm.DB
	Uploads *upload.Store

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	db, err := sqliteClient.New(ctx, cfg.SQLite.Path)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	return &App{
		Config:    cfg,
		DB:        db,
		Uploads:   upload.NewStore(cfg.Upload.Dir),
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		return nil
	}
	return sqlDB.Close()
}
