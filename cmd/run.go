package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/MedCy1/chip8-go/internal/beeper"
	"github.com/MedCy1/chip8-go/internal/hostwindow"
	"github.com/MedCy1/chip8-go/internal/vm"
)

const (
	defaultSpeed = 500 // instructions per second
	defaultScale = 16  // pixels per CHIP-8 pixel
	frameRateHz  = 60
	beepAsset    = "assets/beep.mp3"
)

var (
	clockSpeed int
	pixelScale int
)

// runCmd runs the chip8-go virtual machine against a ROM file and waits
// for the host window to close.
var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run the chip8-go emulator against a ROM file",
	Args:  cobra.ExactArgs(1),
	Run:   runChip8,
}

func init() {
	runCmd.Flags().IntVar(&clockSpeed, "speed", defaultSpeed, "instructions executed per second")
	runCmd.Flags().IntVar(&pixelScale, "scale", defaultScale, "display scale factor, in pixels per CHIP-8 pixel")
}

func runChip8(cmd *cobra.Command, args []string) {
	pathToROM := args[0]

	romBytes, err := os.ReadFile(pathToROM)
	if err != nil {
		fmt.Println(errors.Wrap(err, "reading rom"))
		os.Exit(1)
	}

	machine := vm.New()
	if err := machine.LoadROM(romBytes); err != nil {
		fmt.Println(errors.Wrap(err, "loading rom"))
		os.Exit(1)
	}

	win, err := hostwindow.New(pixelScale)
	if err != nil {
		fmt.Println(errors.Wrap(err, "creating host window"))
		os.Exit(1)
	}

	beep, err := beeper.New(beepAsset)
	if err != nil {
		fmt.Printf("warning: audio disabled: %v\n", err)
		beep = nil
	} else {
		defer beep.Close()
	}

	cyclesPerFrame := vm.CyclesForHz(clockSpeed)
	ticker := time.NewTicker(time.Second / frameRateHz)
	defer ticker.Stop()

	machine.Start()
	paused := false

	fmt.Printf("running %s at %d Hz (scale %dx)\n", pathToROM, clockSpeed, pixelScale)
	fmt.Println("keys: 1234/QWER/ASDF/ZXCV; P pauses, R resets, Esc quits")

	for range ticker.C {
		if win.Closed() {
			break
		}

		pressed, released := win.PolledKeys()
		for _, k := range pressed {
			machine.KeyDown(k)
		}
		for _, k := range released {
			machine.KeyUp(k)
		}
		if win.JustPressed(hostwindow.KeyEscape) {
			break
		}
		if win.JustPressed(hostwindow.KeyPause) {
			paused = !paused
		}
		if win.JustPressed(hostwindow.KeyReset) {
			machine.Reset()
			if err := machine.LoadROM(romBytes); err != nil {
				fmt.Println(errors.Wrap(err, "reloading rom"))
			}
			machine.Start()
		}

		if paused {
			win.UpdateInput()
			continue
		}

		for i := 0; i < cyclesPerFrame; i++ {
			machine.Cycle()
		}
		machine.TickTimers()

		if machine.Overloaded() {
			fmt.Println(machine.DebugInfo())
			fmt.Println("too many recoverable errors, stopping")
			break
		}

		win.Render(machine.DisplayBuffer())

		if beep != nil {
			beep.Update(machine.BeeperActive())
		}
	}
}
