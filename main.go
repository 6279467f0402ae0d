package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jonboulle/clockwork"

	"dscheirer.com/pblbuttons/board"
)

// pblbuttons -config={config file} -board={name} -kernel={image}

// build features, filled in by init()s
var features []string

func setupRuntime(settings configSettings) (runtimeConfig, error) {
	wall := clockwork.NewRealClock()
	rt := initRuntime(settings, wall)

	if settings.GetBool(sVirtualClock) {
		rt.vclock = newVirtualClock(settings.GetDuration(sClockTick))
		rt.clock = rt.vclock
	}

	if err := assembleMachine(&rt); err != nil {
		return rt, err
	}

	var ok bool
	rt.keys, ok = newKeySource(settings.GetString(sKeySource))
	if !ok {
		log.Printf("unknown key source %q, no keyboard input", settings.GetString(sKeySource))
		rt.keys = &noKeys{}
	}

	if settings.GetBool(sMirror) {
		rt.mirror = &rpioLines{}
	} else {
		rt.mirror = &logLines{disableLog: !settings.GetBool(sDebug)}
	}

	if settings.GetBool(sClicks) {
		rt.clicker = newClicker(rt)
	} else {
		rt.clicker = &noClicks{}
	}

	rt.control = &httpControlService{}
	return rt, nil
}

func main() {
	configFile := flag.String("config", "/etc/default/pblbuttons/pblbuttons.conf", "config file path")
	boardName := flag.String("board", "", "board to emulate: "+strings.Join(board.Names(), ", "))
	kernel := flag.String("kernel", "", "kernel image")
	flag.Parse()

	// read config information
	settings := initSettings(*configFile)
	if *boardName != "" {
		settings.Set(sBoard, *boardName)
	}
	if *kernel != "" {
		settings.Set(sKernel, *kernel)
	}

	// the termbox key source owns the terminal
	stdout := settings.GetBool(sLogStdout) && settings.GetString(sKeySource) != "termbox"
	logCloser, err := setupLogging(settings, stdout)
	if err != nil {
		log.Fatalf("could not set up logging: %v", err)
	}
	defer logCloser.Close()

	log.Printf("features: %v", features)
	settings.Dump()

	rt, err := setupRuntime(settings)
	if err != nil {
		log.Fatal(err.Error())
	}
	cfg := rt.machine.Config
	log.Printf("%s: %s, %s %dKB flash %dKB RAM, buttons %v", cfg.Name, cfg.Description, cfg.MCU, cfg.FlashKB, cfg.RAMKB, cfg.Buttons)

	if err := watchLines(rt); err != nil {
		log.Fatal(err.Error())
	}
	defer rt.mirror.close()

	// stop on a signal too
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case s := <-sigs:
			log.Printf("got %v, shutting down", s)
			signalQuit(rt.comms)
		case <-rt.comms.quit:
		}
	}()

	if rt.vclock != nil {
		startVirtualClock(rt)
	}
	startKeyInput(rt)
	startKeySource(rt)
	startControlService(rt)

	wg.Wait()
}
