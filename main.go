package main

import (
	"github.com/faiface/pixel/pixelgl"

	"github.com/MedCy1/chip8-go/cmd"
)

func main() {
	// pixelgl needs access to the main thread, so cobra's command tree
	// runs inside pixelgl.Run rather than directly from main.
	pixelgl.Run(cmd.Execute)
}
