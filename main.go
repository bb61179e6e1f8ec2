package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/glaze2d/config"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (defaults when empty)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	prefabDir := flag.String("prefabs", "", "prefab directory to read and watch, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Sandbox.Level = *levelName
	}
	if *prefabDir != "" {
		cfg.Sandbox.PrefabDir = *prefabDir
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	game, err := NewGame(cfg, logger)
	if err != nil {
		logger.Fatal("sandbox setup failed", zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Sandbox.Width*2, cfg.Sandbox.Height*2)
	ebiten.SetWindowTitle("glaze2d sandbox")

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("sandbox exited", zap.Error(err))
	}
}
