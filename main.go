package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ratchet/common"
	"github.com/sirupsen/logrus"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and keys")
	mute := flag.Bool("mute", false, "start with audio muted")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", false, "hot reload prefabs, scripts and levels from disk")
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true, FullTimestamp: true})
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("Ratchet & Clank: Computer coming")

	game, err := NewGame(Config{
		Level: *levelName,
		Debug: *debug,
		Mute:  *mute,
		Watch: *watch || *debug,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("start game")
	}
	defer func() {
		if err := game.Close(); err != nil {
			log.WithError(err).Warn("close watcher")
		}
	}()

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Error("game exited")
	}
}
