package main

func startKeySource(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "KeySource"}
	wg.Add(1)
	go runKeySource(rt)
}

// runKeySource pumps keycodes from the configured source into runKeyInput
func runKeySource(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runKeySource")
	}()

	comms := rt.comms
	err := rt.keys.initKeys(rt)
	if err != nil {
		rt.logger.Println(err.Error())
		signalQuit(comms)
		return
	}
	// close the source when this function exits
	defer rt.keys.closeKeys()

	for {
		if quitting(comms) {
			rt.logger.Println("quit from runKeySource")
			return
		}

		codes, err := rt.keys.readKeys(rt)
		if err != nil {
			// we're done
			rt.logger.Println(err.Error())
			signalQuit(comms)
			return
		}

		for _, c := range codes {
			select {
			case comms.keys <- c:
			case <-comms.quit:
				return
			}
		}
	}
}

// newKeySource picks the key source backend by name
func newKeySource(name string) (keySource, bool) {
	switch name {
	case "termbox":
		return &termboxKeys{}, true
	case "evdev":
		return newEvdevKeys(), true
	case "rpio":
		return &physicalKeys{pins: &rpioPins{}}, true
	case "none", "":
		return &noKeys{}, true
	default:
		return nil, false
	}
}
