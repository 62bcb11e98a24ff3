package main

import (
	"errors"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"powergrid/internal/config"
	"powergrid/internal/game"
)

func main() {
	cfg := config.Default()
	if len(os.Args) > 1 {
		c, err := config.Load(os.Args[1])
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	g.EnableAudio()

	ebiten.SetWindowSize(g.WindowSize())
	ebiten.SetWindowTitle("Power Grid - hover to charge, Esc/Q: quit")

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		panic(err)
	}
}
